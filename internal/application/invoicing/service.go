package invoicing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/partner"
	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/shared/valueobject"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// Service drives document production: previewing and producing invoices and
// credit notes, and reprinting persisted documents. Production runs under a
// process-wide lock so two concurrent productions can never interleave
// number allocation with persistence.
type Service struct {
	clockings timesheet.ClockingRepository
	customers partner.CustomerRepository
	documents billing.DocumentRepository
	allocator billing.NumberAllocator
	writer    billing.DocumentWriter
	validator billing.CreditValidator
	logger    *zap.Logger

	mu sync.Mutex
}

// NewService creates a new invoicing service
func NewService(
	clockings timesheet.ClockingRepository,
	customers partner.CustomerRepository,
	documents billing.DocumentRepository,
	allocator billing.NumberAllocator,
	writer billing.DocumentWriter,
	logger *zap.Logger,
) *Service {
	return &Service{
		clockings: clockings,
		customers: customers,
		documents: documents,
		allocator: allocator,
		writer:    writer,
		logger:    logger,
	}
}

// SundryInput is a manually entered adjustment billed alongside the
// selected clockings
type SundryInput struct {
	Description   string
	Price         decimal.Decimal
	Date          time.Time
	ResourceCode  string
	ProjectCode   string
	PurchaseOrder string
}

// ProduceRequest holds the inputs for previewing or producing a document
type ProduceRequest struct {
	CustomerCode  string
	ClockingIDs   []uuid.UUID
	Granularity   billing.GranularityPolicy
	DocumentDate  time.Time
	HeaderText    string
	PurchaseOrder string
	// Sundry applies to invoices only
	Sundry *SundryInput
}

// DocumentPreview is the fully priced document as it would print, built
// for preview, production response and reprint alike
type DocumentPreview struct {
	DocumentType          billing.DocumentType
	DocumentNumber        string
	CustomerCode          string
	CustomerName          string
	AccountNumber         string
	AddressLines          []string
	DocumentDate          time.Time
	DueDate               time.Time
	HeaderText            string
	OriginalInvoiceNumber string
	Lines                 []billing.DraftLine
	Total                 decimal.Decimal
}

// PreviewInvoice prices the selection without touching any state. The
// document number shown is the counter's current value and is only
// reserved at production time.
func (s *Service) PreviewInvoice(ctx context.Context, req ProduceRequest) (*DocumentPreview, error) {
	_, preview, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, err
	}

	number, err := s.allocator.Peek(ctx, billing.DocumentTypeInvoice)
	if err != nil {
		return nil, err
	}
	preview.DocumentNumber = number
	return preview, nil
}

// ProduceInvoice prices the selection and persists it atomically
func (s *Service) ProduceInvoice(ctx context.Context, req ProduceRequest) (*billing.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, _, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := s.writer.Persist(ctx, *draft)
	if err != nil {
		s.logger.Error("Invoice production failed",
			zap.String("customer_code", req.CustomerCode),
			zap.Int("clockings", len(req.ClockingIDs)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Invoice produced",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("customer_code", doc.CustomerCode),
		zap.String("total", doc.TotalValue.StringFixed(2)),
		zap.Int("clockings", len(draft.ClockingIDs)),
	)
	return doc, nil
}

// PreviewCreditNote validates and prices the credit selection without
// touching any state
func (s *Service) PreviewCreditNote(ctx context.Context, req ProduceRequest) (*DocumentPreview, error) {
	_, preview, err := s.buildCreditNote(ctx, req)
	if err != nil {
		return nil, err
	}

	number, err := s.allocator.Peek(ctx, billing.DocumentTypeCreditNote)
	if err != nil {
		return nil, err
	}
	preview.DocumentNumber = number
	return preview, nil
}

// ProduceCreditNote reverses previously invoiced clockings in one new
// credit note. Every selected clocking must trace to the same single
// invoice; repeat credits are rejected because the clocking's latest
// document is then no longer an invoice.
func (s *Service) ProduceCreditNote(ctx context.Context, req ProduceRequest) (*billing.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, _, err := s.buildCreditNote(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := s.writer.Persist(ctx, *draft)
	if err != nil {
		s.logger.Error("Credit note production failed",
			zap.String("original_invoice", draft.OriginalInvoiceNumber),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Credit note produced",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("original_invoice", doc.OriginalInvoiceNumber),
		zap.String("total", doc.TotalValue.StringFixed(2)),
	)
	return doc, nil
}

// Reprint rebuilds a persisted document for printing. Stored values are
// authoritative: the number, dates and total come from the document row,
// only the lines are re-derived from the linked clockings.
func (s *Service) Reprint(ctx context.Context, documentNumber string, granularity billing.GranularityPolicy) (*DocumentPreview, error) {
	doc, err := s.documents.FindByNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Document not found: "+documentNumber)
	}

	customer, err := s.loadCustomer(ctx, doc.CustomerCode)
	if err != nil {
		return nil, err
	}

	clockings, err := s.clockings.FindForSelection(ctx, timesheet.SelectionQuery{
		Mode:           timesheet.ModeReprint,
		DocumentNumber: documentNumber,
	})
	if err != nil {
		return nil, err
	}

	builder, err := builderFor(customer)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.DraftLine, 0, len(clockings))
	for i := range clockings {
		c := &clockings[i]
		var line billing.DraftLine
		if c.DurationMinutes() == 0 {
			line = builder.Sundry(c.Notes, c.AmountMoney(), "", c.StartTime)
		} else {
			line = builder.FromClocking(c, "")
		}
		if doc.IsCreditNote() {
			line = negate(line)
		}
		lines = append(lines, line)
	}
	lines = billing.Consolidate(lines, defaultGranularity(granularity))

	preview := s.newPreview(doc.DocumentType, customer, doc.DocumentDate, doc.HeaderText, lines)
	preview.DocumentNumber = doc.DocumentNumber
	preview.OriginalInvoiceNumber = doc.OriginalInvoiceNumber
	preview.Total = doc.TotalValue
	return preview, nil
}

// ListDocuments returns produced documents with pagination
func (s *Service) ListDocuments(ctx context.Context, filter shared.Filter) ([]billing.Document, error) {
	return s.documents.FindAll(ctx, filter)
}

// GetDocument loads one document by its number
func (s *Service) GetDocument(ctx context.Context, documentNumber string) (*billing.Document, error) {
	doc, err := s.documents.FindByNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Document not found: "+documentNumber)
	}
	return doc, nil
}

// buildInvoice assembles the draft and preview for an invoice production
func (s *Service) buildInvoice(ctx context.Context, req ProduceRequest) (*billing.DocumentDraft, *DocumentPreview, error) {
	if len(req.ClockingIDs) == 0 && req.Sundry == nil {
		return nil, nil, billing.ErrEmptySelection
	}

	clockings, err := s.loadBillable(ctx, req.ClockingIDs)
	if err != nil {
		return nil, nil, err
	}

	customerCode := req.CustomerCode
	if customerCode == "" && len(clockings) > 0 {
		customerCode = clockings[0].CustomerCode
	}
	for i := range clockings {
		if clockings[i].CustomerCode != customerCode {
			return nil, nil, billing.ErrMixedCustomer
		}
	}

	customer, err := s.loadCustomer(ctx, customerCode)
	if err != nil {
		return nil, nil, err
	}

	builder, err := builderFor(customer)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]billing.DraftLine, 0, len(clockings)+1)
	for i := range clockings {
		lines = append(lines, builder.FromClocking(&clockings[i], req.PurchaseOrder))
	}

	var sundryClocking *timesheet.Clocking
	if req.Sundry != nil {
		in := req.Sundry
		sundryClocking, err = timesheet.NewSundryAdjustment(in.ResourceCode, customerCode,
			in.ProjectCode, in.Description, sundryDate(in.Date), valueobject.NewMoneyUSD(in.Price))
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, builder.Sundry(in.Description,
			valueobject.NewMoneyUSD(in.Price), in.PurchaseOrder, sundryClocking.StartTime))
	}

	lines = billing.Consolidate(lines, defaultGranularity(req.Granularity))

	documentDate := req.DocumentDate
	if documentDate.IsZero() {
		documentDate = time.Now()
	}

	draft := &billing.DocumentDraft{
		CustomerCode:   customerCode,
		Type:           billing.DocumentTypeInvoice,
		DocumentDate:   documentDate,
		HeaderText:     req.HeaderText,
		Lines:          lines,
		ClockingIDs:    req.ClockingIDs,
		SundryClocking: sundryClocking,
	}
	return draft, s.newPreview(billing.DocumentTypeInvoice, customer, documentDate, req.HeaderText, lines), nil
}

// buildCreditNote assembles the draft and preview for a credit-note
// production. Lines carry the originally billed prices, negated.
func (s *Service) buildCreditNote(ctx context.Context, req ProduceRequest) (*billing.DocumentDraft, *DocumentPreview, error) {
	if len(req.ClockingIDs) == 0 {
		return nil, nil, billing.ErrEmptySelection
	}

	effective, err := s.documents.LatestDetailsFor(ctx, req.ClockingIDs)
	if err != nil {
		return nil, nil, err
	}
	origin, err := s.validator.Validate(req.ClockingIDs, effective)
	if err != nil {
		return nil, nil, err
	}

	clockings, err := s.clockings.FindByIDs(ctx, req.ClockingIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(clockings) != len(req.ClockingIDs) {
		return nil, nil, shared.ErrNotFound
	}

	customer, err := s.loadCustomer(ctx, origin.CustomerCode)
	if err != nil {
		return nil, nil, err
	}

	builder, err := builderFor(customer)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]billing.DraftLine, 0, len(clockings))
	for i := range clockings {
		c := &clockings[i]
		var line billing.DraftLine
		if c.DurationMinutes() == 0 {
			line = builder.Sundry(c.Notes, c.AmountMoney(), req.PurchaseOrder, c.StartTime)
		} else {
			line = builder.FromClocking(c, req.PurchaseOrder)
		}
		lines = append(lines, negate(line))
	}
	lines = billing.Consolidate(lines, defaultGranularity(req.Granularity))

	documentDate := req.DocumentDate
	if documentDate.IsZero() {
		documentDate = time.Now()
	}

	draft := &billing.DocumentDraft{
		CustomerCode:          origin.CustomerCode,
		Type:                  billing.DocumentTypeCreditNote,
		DocumentDate:          documentDate,
		HeaderText:            req.HeaderText,
		OriginalInvoiceNumber: origin.InvoiceNumber,
		Lines:                 lines,
		ClockingIDs:           req.ClockingIDs,
	}
	preview := s.newPreview(billing.DocumentTypeCreditNote, customer, documentDate, req.HeaderText, lines)
	preview.OriginalInvoiceNumber = origin.InvoiceNumber
	return draft, preview, nil
}

// loadBillable loads the selected clockings and refuses any that are
// missing or already invoiced
func (s *Service) loadBillable(ctx context.Context, ids []uuid.UUID) ([]timesheet.Clocking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	clockings, err := s.clockings.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(clockings) != len(ids) {
		return nil, shared.ErrNotFound
	}
	for i := range clockings {
		if clockings[i].IsInvoiced() {
			return nil, shared.NewDomainError("ALREADY_INVOICED",
				"Clocking "+clockings[i].ID.String()+" is already on invoice "+clockings[i].InvoiceNumber)
		}
	}
	return clockings, nil
}

func (s *Service) loadCustomer(ctx context.Context, code string) (*partner.Customer, error) {
	customer, err := s.customers.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found: "+code)
	}
	return customer, nil
}

func (s *Service) newPreview(docType billing.DocumentType, customer *partner.Customer, documentDate time.Time, headerText string, lines []billing.DraftLine) *DocumentPreview {
	return &DocumentPreview{
		DocumentType:  docType,
		CustomerCode:  customer.Code,
		CustomerName:  customer.Name,
		AccountNumber: customer.AccountNumber,
		AddressLines:  customer.AddressLines,
		DocumentDate:  documentDate,
		DueDate:       customer.DueDate(documentDate),
		HeaderText:    headerText,
		Lines:         lines,
		Total:         billing.SumLinePrices(lines),
	}
}

func builderFor(customer *partner.Customer) (billing.LineBuilder, error) {
	unit, err := valueobject.ParseBillingUnit(customer.BillingUnit)
	if err != nil {
		return billing.LineBuilder{}, shared.NewDomainError("INVALID_UNIT", err.Error())
	}
	return billing.NewLineBuilder(unit), nil
}

func defaultGranularity(policy billing.GranularityPolicy) billing.GranularityPolicy {
	if policy == "" {
		return billing.GranularityByDay
	}
	return policy
}

func sundryDate(date time.Time) time.Time {
	if date.IsZero() {
		return time.Now()
	}
	return date
}

// negate flips a line's prices for a credit note, keeping quantity and
// provenance intact
func negate(line billing.DraftLine) billing.DraftLine {
	line.UnitPrice = line.UnitPrice.Neg()
	line.LinePrice = line.LinePrice.Neg()
	return line
}
