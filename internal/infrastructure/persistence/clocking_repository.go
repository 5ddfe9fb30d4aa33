package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/timesheet"
	"github.com/timebill/backend/internal/infrastructure/persistence/models"
)

// GormClockingRepository implements timesheet.ClockingRepository using GORM
type GormClockingRepository struct {
	db *gorm.DB
}

// NewGormClockingRepository creates a new repository instance
func NewGormClockingRepository(db *gorm.DB) *GormClockingRepository {
	return &GormClockingRepository{db: db}
}

var _ timesheet.ClockingRepository = (*GormClockingRepository)(nil)

// FindByID finds a clocking by its ID
func (r *GormClockingRepository) FindByID(ctx context.Context, id uuid.UUID) (*timesheet.Clocking, error) {
	var model models.ClockingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the given clockings ordered by ascending start time.
// Missing IDs are silently absent from the result.
func (r *GormClockingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]timesheet.Clocking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ClockingModel
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("start_time ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainClockings(rows), nil
}

// FindForSelection runs a validated selection query. Report and invoice
// modes filter on the clocking row alone; credit mode additionally resolves
// each candidate's effective document, and reprint mode walks a document's
// detail rows.
func (r *GormClockingRepository) FindForSelection(ctx context.Context, q timesheet.SelectionQuery) ([]timesheet.Clocking, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if q.Mode == timesheet.ModeReprint {
		return r.findForReprint(ctx, q.DocumentNumber)
	}

	query := r.db.WithContext(ctx).Model(&models.ClockingModel{})
	if q.ResourceCode != "" {
		query = query.Where("resource_code = ?", q.ResourceCode)
	}
	if q.CustomerCode != "" {
		query = query.Where("customer_code = ?", q.CustomerCode)
	}
	if q.ProjectCode != "" {
		query = query.Where("project_code = ?", q.ProjectCode)
	}
	if !q.From.IsZero() {
		query = query.Where("start_time >= ?", q.From)
	}
	if !q.To.IsZero() {
		query = query.Where("start_time <= ?", q.To)
	}

	switch q.Mode {
	case timesheet.ModeReport:
		if !q.IncludeInvoiced {
			query = query.Where("invoice_state = ?", string(timesheet.InvoiceStateNotInvoiced))
		}
		if q.DocumentNumber != "" {
			if q.NumberIsPrefix {
				query = query.Where("invoice_number LIKE ?", q.DocumentNumber+"%")
			} else {
				query = query.Where("invoice_number = ?", q.DocumentNumber)
			}
		}
	case timesheet.ModeInvoice:
		query = query.Where("invoice_state = ?", string(timesheet.InvoiceStateNotInvoiced))
	case timesheet.ModeCredit:
		query = query.Where("invoice_state = ?", string(timesheet.InvoiceStateInvoiced))
	}

	var rows []models.ClockingModel
	if err := query.Order("start_time ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	if q.Mode == timesheet.ModeCredit {
		return r.filterCreditable(rows, q.DocumentNumber)
	}
	return toDomainClockings(rows), nil
}

// filterCreditable keeps only clockings whose latest document is an invoice,
// matching the originating number when one was given. A clocking whose
// latest document is a credit note has already been credited and is not
// offered again.
func (r *GormClockingRepository) filterCreditable(rows []models.ClockingModel, documentNumber string) ([]timesheet.Clocking, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i, m := range rows {
		ids[i] = m.ID
	}
	effective, err := latestDetails(r.db, ids)
	if err != nil {
		return nil, err
	}

	var result []timesheet.Clocking
	for _, m := range rows {
		eff, ok := effective[m.ID]
		if !ok || eff.DocumentType != billing.DocumentTypeInvoice {
			continue
		}
		if documentNumber != "" && eff.DocumentNumber != documentNumber {
			continue
		}
		result = append(result, *m.ToDomain())
	}
	return result, nil
}

// findForReprint returns every clocking ever linked to the named document,
// regardless of current invoice state
func (r *GormClockingRepository) findForReprint(ctx context.Context, documentNumber string) ([]timesheet.Clocking, error) {
	var doc models.DocumentModel
	err := r.db.WithContext(ctx).Where("document_number = ?", documentNumber).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Document not found: "+documentNumber)
		}
		return nil, err
	}

	var rows []models.ClockingModel
	err = r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.DocumentDetailModel{}).
			Select("clocking_id").
			Where("document_id = ?", doc.ID)).
		Order("start_time ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainClockings(rows), nil
}

// Save creates or updates a clocking
func (r *GormClockingRepository) Save(ctx context.Context, clocking *timesheet.Clocking) error {
	model := models.ClockingModelFromDomain(clocking)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a clocking. Invoiced clockings are part of the billing
// record and cannot be deleted.
func (r *GormClockingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var model models.ClockingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	if model.InvoiceState == string(timesheet.InvoiceStateInvoiced) {
		return shared.NewDomainError("ALREADY_INVOICED", "Invoiced clockings cannot be deleted")
	}
	return r.db.WithContext(ctx).Delete(&models.ClockingModel{}, "id = ?", id).Error
}

func toDomainClockings(rows []models.ClockingModel) []timesheet.Clocking {
	result := make([]timesheet.Clocking, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result
}
