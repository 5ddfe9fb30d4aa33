package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/shared"
)

// DocumentModel is the persistence model for billing.Document.
// The unique index over (document_type, document_number) guarantees a
// number is never attached to two persisted documents.
type DocumentModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerCode          string    `gorm:"size:30;not null;index"`
	DocumentType          string    `gorm:"size:20;not null;uniqueIndex:idx_documents_type_number"`
	DocumentNumber        string    `gorm:"size:50;not null;uniqueIndex:idx_documents_type_number"`
	DocumentDate          time.Time `gorm:"not null"`
	GeneratedAt           time.Time `gorm:"not null;index"`
	OriginalInvoiceNumber string    `gorm:"size:50"`
	HeaderText            string
	TotalValue            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Version               int             `gorm:"not null;default:1"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the model to a domain Document
func (m *DocumentModel) ToDomain() *billing.Document {
	return &billing.Document{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CustomerCode:          m.CustomerCode,
		DocumentType:          billing.DocumentType(m.DocumentType),
		DocumentNumber:        m.DocumentNumber,
		DocumentDate:          m.DocumentDate,
		GeneratedAt:           m.GeneratedAt,
		OriginalInvoiceNumber: m.OriginalInvoiceNumber,
		HeaderText:            m.HeaderText,
		TotalValue:            m.TotalValue,
	}
}

// DocumentModelFromDomain converts a domain Document to the model
func DocumentModelFromDomain(d *billing.Document) *DocumentModel {
	return &DocumentModel{
		ID:                    d.ID,
		CustomerCode:          d.CustomerCode,
		DocumentType:          string(d.DocumentType),
		DocumentNumber:        d.DocumentNumber,
		DocumentDate:          d.DocumentDate,
		GeneratedAt:           d.GeneratedAt,
		OriginalInvoiceNumber: d.OriginalInvoiceNumber,
		HeaderText:            d.HeaderText,
		TotalValue:            d.TotalValue,
		Version:               d.Version,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

// DocumentDetailModel is the persistence model for billing.DocumentDetail
type DocumentDetailModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClockingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	GeneratedAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (DocumentDetailModel) TableName() string {
	return "document_details"
}

// ToDomain converts the model to a domain DocumentDetail
func (m *DocumentDetailModel) ToDomain() billing.DocumentDetail {
	return billing.DocumentDetail{
		ID:          m.ID,
		DocumentID:  m.DocumentID,
		ClockingID:  m.ClockingID,
		GeneratedAt: m.GeneratedAt,
	}
}

// DocumentDetailModelFromDomain converts a domain DocumentDetail to the model
func DocumentDetailModelFromDomain(d billing.DocumentDetail) *DocumentDetailModel {
	return &DocumentDetailModel{
		ID:          d.ID,
		DocumentID:  d.DocumentID,
		ClockingID:  d.ClockingID,
		GeneratedAt: d.GeneratedAt,
		CreatedAt:   time.Now(),
	}
}
