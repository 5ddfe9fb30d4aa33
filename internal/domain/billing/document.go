package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/shared/valueobject"
)

// DocumentType distinguishes invoices from credit notes
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "INVOICE"
	DocumentTypeCreditNote DocumentType = "CREDIT_NOTE"
)

// IsValid checks if the type is a known DocumentType
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeCreditNote
}

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

// Document is a produced invoice or credit note. It is immutable once
// persisted; reprint re-reads it without changing any value.
type Document struct {
	shared.BaseAggregateRoot
	CustomerCode   string
	DocumentType   DocumentType
	DocumentNumber string
	DocumentDate   time.Time
	// GeneratedAt is the production timestamp, shared with every detail
	// row written in the same transaction. It is the tie-break ordering
	// key when resolving a clocking's effective document.
	GeneratedAt time.Time
	// OriginalInvoiceNumber is set only on credit notes and records the
	// invoice being reversed
	OriginalInvoiceNumber string
	HeaderText            string
	TotalValue            decimal.Decimal
}

// DocumentDetail links one Document to one Clocking. A clocking
// accumulates detail rows over its history (invoice, credit, re-invoice);
// the row with the latest GeneratedAt defines its current effective
// document.
type DocumentDetail struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	ClockingID  uuid.UUID
	GeneratedAt time.Time
}

// NewInvoice creates an invoice header for the given consolidated total
func NewInvoice(customerCode, documentNumber string, documentDate time.Time, headerText string, total valueobject.Money) (*Document, error) {
	return newDocument(customerCode, DocumentTypeInvoice, documentNumber, documentDate, "", headerText, total)
}

// NewCreditNote creates a credit-note header reversing the named invoice
func NewCreditNote(customerCode, documentNumber, originalInvoiceNumber string, documentDate time.Time, headerText string, total valueobject.Money) (*Document, error) {
	if originalInvoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Credit note requires the original invoice number")
	}
	return newDocument(customerCode, DocumentTypeCreditNote, documentNumber, documentDate, originalInvoiceNumber, headerText, total)
}

func newDocument(customerCode string, docType DocumentType, documentNumber string, documentDate time.Time, originalInvoiceNumber, headerText string, total valueobject.Money) (*Document, error) {
	if customerCode == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer code cannot be empty")
	}
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if documentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Document date cannot be empty")
	}

	return &Document{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		CustomerCode:          customerCode,
		DocumentType:          docType,
		DocumentNumber:        documentNumber,
		DocumentDate:          documentDate,
		GeneratedAt:           time.Now(),
		OriginalInvoiceNumber: originalInvoiceNumber,
		HeaderText:            headerText,
		TotalValue:            total.Amount(),
	}, nil
}

// IsCreditNote returns true for credit notes
func (d *Document) IsCreditNote() bool {
	return d.DocumentType == DocumentTypeCreditNote
}

// TotalValueMoney returns the document total as Money
func (d *Document) TotalValueMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(d.TotalValue)
}

// NewDetail creates the linking row between this document and one clocking,
// stamped with the document's generation timestamp
func (d *Document) NewDetail(clockingID uuid.UUID) DocumentDetail {
	return DocumentDetail{
		ID:          uuid.New(),
		DocumentID:  d.ID,
		ClockingID:  clockingID,
		GeneratedAt: d.GeneratedAt,
	}
}
