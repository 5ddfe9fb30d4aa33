package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/timebill/backend/internal/application/invoicing"
	partnerapp "github.com/timebill/backend/internal/application/partner"
	timesheetapp "github.com/timebill/backend/internal/application/timesheet"
	"github.com/timebill/backend/internal/infrastructure/config"
	"github.com/timebill/backend/internal/infrastructure/logger"
	"github.com/timebill/backend/internal/infrastructure/persistence"
	"github.com/timebill/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = persistence.CloseDatabase(db) }()

	clockingRepo := persistence.NewGormClockingRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	documentRepo := persistence.NewGormDocumentRepository(db)
	allocator := persistence.NewGormNumberAllocator(db)
	writer := persistence.NewGormInvoiceWriter(db, allocator)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = allocator.EnsureSeeds(ctx, cfg.Billing.InvoiceCounterSeed, cfg.Billing.CreditCounterSeed)
	cancel()
	if err != nil {
		log.Fatal("Failed to seed document counters", zap.Error(err))
	}

	engine := router.New(router.Dependencies{
		DB:               db,
		Logger:           log,
		ClockingService:  timesheetapp.NewClockingService(clockingRepo, log),
		CustomerService:  partnerapp.NewCustomerService(customerRepo, log),
		SelectionService: invoicing.NewSelectionService(clockingRepo, log),
		InvoicingService: invoicing.NewService(clockingRepo, customerRepo, documentRepo, allocator, writer, log),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server starting",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", cfg.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
