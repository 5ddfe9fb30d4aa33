package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timebill/backend/internal/domain/partner"
	"github.com/timebill/backend/internal/domain/shared"
)

// CustomerModel is the persistence model for partner.Customer.
// AddressLines are stored newline-joined; the domain caps them at six.
type CustomerModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"size:30;not null;uniqueIndex"`
	AccountNumber   string    `gorm:"size:30"`
	Name            string    `gorm:"size:200;not null"`
	AddressLines    string    `gorm:"type:text"`
	BillingUnit     string    `gorm:"size:10"`
	PaymentTermDays int       `gorm:"not null;default:30"`
	Version         int       `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	var lines []string
	if m.AddressLines != "" {
		lines = strings.Split(m.AddressLines, "\n")
	}
	return &partner.Customer{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Code:            m.Code,
		AccountNumber:   m.AccountNumber,
		Name:            m.Name,
		AddressLines:    lines,
		BillingUnit:     m.BillingUnit,
		PaymentTermDays: m.PaymentTermDays,
	}
}

// CustomerModelFromDomain converts a domain Customer to the model
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	return &CustomerModel{
		ID:              c.ID,
		Code:            c.Code,
		AccountNumber:   c.AccountNumber,
		Name:            c.Name,
		AddressLines:    strings.Join(c.AddressLines, "\n"),
		BillingUnit:     c.BillingUnit,
		PaymentTermDays: c.PaymentTermDays,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
