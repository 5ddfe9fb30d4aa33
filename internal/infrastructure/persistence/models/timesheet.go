package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// ClockingModel is the persistence model for timesheet.Clocking
type ClockingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResourceCode  string    `gorm:"size:30;not null;index"`
	CustomerCode  string    `gorm:"size:30;not null;index"`
	ProjectCode   string    `gorm:"size:30;index"`
	Notes         string
	StartTime     time.Time       `gorm:"not null;index"`
	EndTime       time.Time       `gorm:"not null"`
	HourlyRate    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	InvoiceState  string          `gorm:"size:20;not null;index"`
	InvoiceNumber string          `gorm:"size:50;index"`
	Version       int             `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (ClockingModel) TableName() string {
	return "clockings"
}

// ToDomain converts the model to a domain Clocking
func (m *ClockingModel) ToDomain() *timesheet.Clocking {
	return &timesheet.Clocking{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ResourceCode:  m.ResourceCode,
		CustomerCode:  m.CustomerCode,
		ProjectCode:   m.ProjectCode,
		Notes:         m.Notes,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		HourlyRate:    m.HourlyRate,
		Amount:        m.Amount,
		InvoiceState:  timesheet.InvoiceState(m.InvoiceState),
		InvoiceNumber: m.InvoiceNumber,
	}
}

// ClockingModelFromDomain converts a domain Clocking to the model
func ClockingModelFromDomain(c *timesheet.Clocking) *ClockingModel {
	return &ClockingModel{
		ID:            c.ID,
		ResourceCode:  c.ResourceCode,
		CustomerCode:  c.CustomerCode,
		ProjectCode:   c.ProjectCode,
		Notes:         c.Notes,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		HourlyRate:    c.HourlyRate,
		Amount:        c.Amount,
		InvoiceState:  string(c.InvoiceState),
		InvoiceNumber: c.InvoiceNumber,
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
