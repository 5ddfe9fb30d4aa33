package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/timebill/backend/internal/application/invoicing"
	partnerapp "github.com/timebill/backend/internal/application/partner"
	timesheetapp "github.com/timebill/backend/internal/application/timesheet"
	"github.com/timebill/backend/internal/infrastructure/logger"
	"github.com/timebill/backend/internal/interfaces/http/handler"
	"github.com/timebill/backend/internal/interfaces/http/middleware"
)

// Dependencies holds everything the router needs
type Dependencies struct {
	DB               *gorm.DB
	Logger           *zap.Logger
	ClockingService  *timesheetapp.ClockingService
	CustomerService  *partnerapp.CustomerService
	SelectionService *invoicing.SelectionService
	InvoicingService *invoicing.Service
}

// New builds the gin engine with all routes and middleware
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
	)

	system := handler.NewSystemHandler(deps.DB)
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)

	clockings := handler.NewClockingHandler(deps.ClockingService)
	customers := handler.NewCustomerHandler(deps.CustomerService)
	billing := handler.NewBillingHandler(deps.SelectionService, deps.InvoicingService)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/clockings", clockings.Commit)
		v1.GET("/clockings", clockings.List)
		v1.GET("/clockings/:id", clockings.Get)
		v1.PUT("/clockings/:id", clockings.Update)
		v1.DELETE("/clockings/:id", clockings.Delete)

		v1.POST("/customers", customers.Create)
		v1.GET("/customers", customers.List)
		v1.GET("/customers/:code", customers.Get)
		v1.PUT("/customers/:code", customers.Update)

		v1.GET("/billing/selection", billing.Select)
		v1.POST("/billing/invoices/preview", billing.PreviewInvoice)
		v1.POST("/billing/invoices", billing.ProduceInvoice)
		v1.POST("/billing/credit-notes/preview", billing.PreviewCreditNote)
		v1.POST("/billing/credit-notes", billing.ProduceCreditNote)
		v1.GET("/billing/documents", billing.ListDocuments)
		v1.GET("/billing/documents/:number", billing.GetDocument)
		v1.GET("/billing/documents/:number/reprint", billing.Reprint)
		v1.GET("/billing/documents/:number/export", billing.Export)
	}

	return engine
}
