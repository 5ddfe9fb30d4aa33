package persistence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timebill/backend/internal/domain/billing"
)

type effectiveRow struct {
	ClockingID     uuid.UUID
	DocumentID     uuid.UUID
	DocumentNumber string
	DocumentType   string
	CustomerCode   string
	GeneratedAt    time.Time
}

// latestDetails resolves the effective document per clocking: the detail
// with the greatest GeneratedAt, ties broken by document ID. Rows are read
// in ascending order and folded so the last row per clocking wins.
func latestDetails(db *gorm.DB, clockingIDs []uuid.UUID) (map[uuid.UUID]billing.EffectiveDocument, error) {
	result := make(map[uuid.UUID]billing.EffectiveDocument, len(clockingIDs))
	if len(clockingIDs) == 0 {
		return result, nil
	}

	var rows []effectiveRow
	err := db.
		Table("document_details AS dd").
		Select("dd.clocking_id, dd.document_id, dd.generated_at, d.document_number, d.document_type, d.customer_code").
		Joins("JOIN documents d ON d.id = dd.document_id").
		Where("dd.clocking_id IN ?", clockingIDs).
		Order("dd.generated_at ASC, dd.document_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		result[r.ClockingID] = billing.EffectiveDocument{
			ClockingID:     r.ClockingID,
			DocumentID:     r.DocumentID,
			DocumentNumber: r.DocumentNumber,
			DocumentType:   billing.DocumentType(r.DocumentType),
			CustomerCode:   r.CustomerCode,
			GeneratedAt:    r.GeneratedAt,
		}
	}
	return result, nil
}
