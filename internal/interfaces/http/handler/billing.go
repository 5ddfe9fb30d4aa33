package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/application/invoicing"
	"github.com/timebill/backend/internal/domain/billing"
)

// BillingHandler handles invoicing API endpoints: selections, previews,
// document production, reprint and print-file export
type BillingHandler struct {
	BaseHandler
	selectionService *invoicing.SelectionService
	invoicingService *invoicing.Service
	exporter         invoicing.Exporter
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(selectionService *invoicing.SelectionService, invoicingService *invoicing.Service) *BillingHandler {
	return &BillingHandler{
		selectionService: selectionService,
		invoicingService: invoicingService,
	}
}

// SundryRequest represents a manually entered adjustment
type SundryRequest struct {
	Description   string    `json:"description" binding:"required,max=200"`
	Price         string    `json:"price" binding:"required"`
	Date          time.Time `json:"date"`
	ResourceCode  string    `json:"resource_code" binding:"max=30"`
	ProjectCode   string    `json:"project_code" binding:"max=30"`
	PurchaseOrder string    `json:"purchase_order" binding:"max=50"`
}

// ProduceDocumentRequest represents a request to preview or produce a
// billing document
type ProduceDocumentRequest struct {
	CustomerCode  string         `json:"customer_code" binding:"max=30"`
	ClockingIDs   []string       `json:"clocking_ids"`
	Granularity   string         `json:"granularity" binding:"omitempty,oneof=BY_CLOCKING BY_DAY NONE"`
	DocumentDate  time.Time      `json:"document_date"`
	HeaderText    string         `json:"header_text" binding:"max=1000"`
	PurchaseOrder string         `json:"purchase_order" binding:"max=50"`
	Sundry        *SundryRequest `json:"sundry"`
}

// DraftLineResponse represents one priced document line
type DraftLineResponse struct {
	Quantity      string    `json:"quantity"`
	Unit          string    `json:"unit"`
	Description   string    `json:"description"`
	UnitPrice     string    `json:"unit_price"`
	Per           string    `json:"per,omitempty"`
	LinePrice     string    `json:"line_price"`
	DeliveryDate  time.Time `json:"delivery_date"`
	PurchaseOrder string    `json:"purchase_order,omitempty"`
	Sundry        bool      `json:"sundry,omitempty"`
	SourceCount   int       `json:"source_count"`
}

// DocumentPreviewResponse represents a fully priced document
type DocumentPreviewResponse struct {
	DocumentType          string              `json:"document_type"`
	DocumentNumber        string              `json:"document_number"`
	CustomerCode          string              `json:"customer_code"`
	CustomerName          string              `json:"customer_name"`
	AccountNumber         string              `json:"account_number,omitempty"`
	AddressLines          []string            `json:"address_lines,omitempty"`
	DocumentDate          time.Time           `json:"document_date"`
	DueDate               time.Time           `json:"due_date"`
	HeaderText            string              `json:"header_text,omitempty"`
	OriginalInvoiceNumber string              `json:"original_invoice_number,omitempty"`
	Lines                 []DraftLineResponse `json:"lines"`
	Total                 string              `json:"total"`
}

// DocumentResponse represents a persisted document header
type DocumentResponse struct {
	ID                    string    `json:"id"`
	CustomerCode          string    `json:"customer_code"`
	DocumentType          string    `json:"document_type"`
	DocumentNumber        string    `json:"document_number"`
	DocumentDate          time.Time `json:"document_date"`
	GeneratedAt           time.Time `json:"generated_at"`
	OriginalInvoiceNumber string    `json:"original_invoice_number,omitempty"`
	HeaderText            string    `json:"header_text,omitempty"`
	TotalValue            string    `json:"total_value"`
}

func toDocumentResponse(d *billing.Document) DocumentResponse {
	return DocumentResponse{
		ID:                    d.ID.String(),
		CustomerCode:          d.CustomerCode,
		DocumentType:          string(d.DocumentType),
		DocumentNumber:        d.DocumentNumber,
		DocumentDate:          d.DocumentDate,
		GeneratedAt:           d.GeneratedAt,
		OriginalInvoiceNumber: d.OriginalInvoiceNumber,
		HeaderText:            d.HeaderText,
		TotalValue:            d.TotalValue.StringFixed(2),
	}
}

func toPreviewResponse(p *invoicing.DocumentPreview) DocumentPreviewResponse {
	lines := make([]DraftLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = DraftLineResponse{
			Quantity:      l.Quantity.String(),
			Unit:          l.Unit.Code(),
			Description:   l.Description,
			UnitPrice:     l.UnitPrice.StringFixed(2),
			Per:           l.PerLabel,
			LinePrice:     l.LinePrice.StringFixed(2),
			DeliveryDate:  l.DeliveryDate,
			PurchaseOrder: l.PurchaseOrder,
			Sundry:        l.Sundry,
			SourceCount:   len(l.SourceClockingIDs),
		}
	}
	return DocumentPreviewResponse{
		DocumentType:          string(p.DocumentType),
		DocumentNumber:        p.DocumentNumber,
		CustomerCode:          p.CustomerCode,
		CustomerName:          p.CustomerName,
		AccountNumber:         p.AccountNumber,
		AddressLines:          p.AddressLines,
		DocumentDate:          p.DocumentDate,
		DueDate:               p.DueDate,
		HeaderText:            p.HeaderText,
		OriginalInvoiceNumber: p.OriginalInvoiceNumber,
		Lines:                 lines,
		Total:                 p.Total.StringFixed(2),
	}
}

func (h *BillingHandler) bindProduceRequest(c *gin.Context) (invoicing.ProduceRequest, bool) {
	var req ProduceDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return invoicing.ProduceRequest{}, false
	}

	ids := make([]uuid.UUID, 0, len(req.ClockingIDs))
	for _, raw := range req.ClockingIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid clocking ID: "+raw)
			return invoicing.ProduceRequest{}, false
		}
		ids = append(ids, id)
	}

	result := invoicing.ProduceRequest{
		CustomerCode:  req.CustomerCode,
		ClockingIDs:   ids,
		Granularity:   billing.GranularityPolicy(req.Granularity),
		DocumentDate:  req.DocumentDate,
		HeaderText:    req.HeaderText,
		PurchaseOrder: req.PurchaseOrder,
	}

	if req.Sundry != nil {
		price, err := decimal.NewFromString(req.Sundry.Price)
		if err != nil {
			h.BadRequest(c, "Invalid sundry price: "+req.Sundry.Price)
			return invoicing.ProduceRequest{}, false
		}
		result.Sundry = &invoicing.SundryInput{
			Description:   req.Sundry.Description,
			Price:         price,
			Date:          req.Sundry.Date,
			ResourceCode:  req.Sundry.ResourceCode,
			ProjectCode:   req.Sundry.ProjectCode,
			PurchaseOrder: req.Sundry.PurchaseOrder,
		}
	}
	return result, true
}

// Select handles GET /billing/selection
func (h *BillingHandler) Select(c *gin.Context) {
	query, err := bindSelectionQuery(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.selectionService.Select(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	clockings := make([]ClockingResponse, len(result.Clockings))
	for i := range result.Clockings {
		clockings[i] = toClockingResponse(&result.Clockings[i])
	}
	h.Success(c, gin.H{
		"clockings":     clockings,
		"total_minutes": result.TotalMinutes,
		"total_amount":  result.TotalAmount.StringFixed(2),
	})
}

// PreviewInvoice handles POST /billing/invoices/preview
func (h *BillingHandler) PreviewInvoice(c *gin.Context) {
	req, ok := h.bindProduceRequest(c)
	if !ok {
		return
	}

	preview, err := h.invoicingService.PreviewInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPreviewResponse(preview))
}

// ProduceInvoice handles POST /billing/invoices
func (h *BillingHandler) ProduceInvoice(c *gin.Context) {
	req, ok := h.bindProduceRequest(c)
	if !ok {
		return
	}

	doc, err := h.invoicingService.ProduceInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toDocumentResponse(doc))
}

// PreviewCreditNote handles POST /billing/credit-notes/preview
func (h *BillingHandler) PreviewCreditNote(c *gin.Context) {
	req, ok := h.bindProduceRequest(c)
	if !ok {
		return
	}

	preview, err := h.invoicingService.PreviewCreditNote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPreviewResponse(preview))
}

// ProduceCreditNote handles POST /billing/credit-notes
func (h *BillingHandler) ProduceCreditNote(c *gin.Context) {
	req, ok := h.bindProduceRequest(c)
	if !ok {
		return
	}

	doc, err := h.invoicingService.ProduceCreditNote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toDocumentResponse(doc))
}

// ListDocuments handles GET /billing/documents
func (h *BillingHandler) ListDocuments(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	docs, err := h.invoicingService.ListDocuments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := make([]DocumentResponse, len(docs))
	for i := range docs {
		result[i] = toDocumentResponse(&docs[i])
	}
	h.Success(c, result)
}

// GetDocument handles GET /billing/documents/:number
func (h *BillingHandler) GetDocument(c *gin.Context) {
	doc, err := h.invoicingService.GetDocument(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDocumentResponse(doc))
}

// Reprint handles GET /billing/documents/:number/reprint
func (h *BillingHandler) Reprint(c *gin.Context) {
	granularity := billing.GranularityPolicy(c.DefaultQuery("granularity", string(billing.GranularityByDay)))

	preview, err := h.invoicingService.Reprint(c.Request.Context(), c.Param("number"), granularity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPreviewResponse(preview))
}

// Export handles GET /billing/documents/:number/export and streams the
// tab-separated print file
func (h *BillingHandler) Export(c *gin.Context) {
	granularity := billing.GranularityPolicy(c.DefaultQuery("granularity", string(billing.GranularityByDay)))

	preview, err := h.invoicingService.Reprint(c.Request.Context(), c.Param("number"), granularity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+preview.DocumentNumber+".txt")
	c.Header("Content-Type", "text/tab-separated-values; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.exporter.Export(c.Writer, preview); err != nil {
		_ = c.Error(err)
	}
}
