package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/shared/valueobject"
	"github.com/timebill/backend/internal/domain/timesheet"
	"github.com/timebill/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceWriter implements billing.DocumentWriter. One transaction
// covers number allocation, the document header, the optional sundry
// clocking, every detail row, and the invoice-state flips. Any failure
// rolls all of it back, counter included.
type GormInvoiceWriter struct {
	db        *gorm.DB
	allocator *GormNumberAllocator
}

// NewGormInvoiceWriter creates a new writer instance
func NewGormInvoiceWriter(db *gorm.DB, allocator *GormNumberAllocator) *GormInvoiceWriter {
	return &GormInvoiceWriter{db: db, allocator: allocator}
}

var _ billing.DocumentWriter = (*GormInvoiceWriter)(nil)

// Persist writes the draft as one atomic unit and returns the produced
// document with its allocated number
func (w *GormInvoiceWriter) Persist(ctx context.Context, draft billing.DocumentDraft) (*billing.Document, error) {
	if !draft.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown document type: "+string(draft.Type))
	}
	if len(draft.ClockingIDs) == 0 && draft.SundryClocking == nil {
		return nil, billing.ErrEmptySelection
	}

	var doc *billing.Document
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := w.allocator.Allocate(tx, draft.Type)
		if err != nil {
			return err
		}

		total := valueobject.NewMoneyUSD(billing.SumLinePrices(draft.Lines))
		doc, err = newDocument(draft, number, total)
		if err != nil {
			return err
		}
		if err := tx.Create(models.DocumentModelFromDomain(doc)).Error; err != nil {
			return err
		}

		ids := draft.ClockingIDs
		if draft.SundryClocking != nil {
			if err := tx.Create(models.ClockingModelFromDomain(draft.SundryClocking)).Error; err != nil {
				return err
			}
			ids = append(ids, draft.SundryClocking.ID)
		}

		details := make([]*models.DocumentDetailModel, len(ids))
		for i, clockingID := range ids {
			details[i] = models.DocumentDetailModelFromDomain(doc.NewDetail(clockingID))
		}
		if err := tx.Create(details).Error; err != nil {
			return err
		}

		if draft.Type == billing.DocumentTypeInvoice {
			return flipToInvoiced(tx, ids, number)
		}
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", billing.ErrPersistenceFailed, err)
	}
	return doc, nil
}

func newDocument(draft billing.DocumentDraft, number string, total valueobject.Money) (*billing.Document, error) {
	if draft.Type == billing.DocumentTypeCreditNote {
		return billing.NewCreditNote(draft.CustomerCode, number, draft.OriginalInvoiceNumber,
			draft.DocumentDate, draft.HeaderText, total)
	}
	return billing.NewInvoice(draft.CustomerCode, number, draft.DocumentDate, draft.HeaderText, total)
}

// flipToInvoiced marks every contributing clocking as billed. The affected
// row count must match exactly: a missing or already-invoiced clocking
// means the selection went stale and the whole production is rolled back.
func flipToInvoiced(tx *gorm.DB, ids []uuid.UUID, invoiceNumber string) error {
	result := tx.Model(&models.ClockingModel{}).
		Where("id IN ? AND invoice_state = ?", ids, string(timesheet.InvoiceStateNotInvoiced)).
		Updates(map[string]interface{}{
			"invoice_state":  string(timesheet.InvoiceStateInvoiced),
			"invoice_number": invoiceNumber,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return shared.NewDomainError("STALE_SELECTION",
			fmt.Sprintf("Expected to invoice %d clockings, %d were still billable", len(ids), result.RowsAffected))
	}
	return nil
}
