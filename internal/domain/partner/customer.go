package partner

import (
	"time"

	"github.com/timebill/backend/internal/domain/shared"
)

// MaxAddressLines is the number of address lines carried on billing
// documents
const MaxAddressLines = 6

// DefaultPaymentTermDays is applied when a customer has no explicit terms
const DefaultPaymentTermDays = 30

// Customer is a billable account. Clockings reference it by code; the
// invoicing engine reads it for the document header, the payment terms
// that fix the due date, and an optional billing-unit override.
type Customer struct {
	shared.BaseAggregateRoot
	Code          string
	AccountNumber string
	Name          string
	AddressLines  []string
	// BillingUnit overrides the default invoicing unit ("hour") for this
	// customer; empty means no override
	BillingUnit     string
	PaymentTermDays int
}

// NewCustomer creates a customer account
func NewCustomer(code, accountNumber, name string, addressLines []string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(addressLines) > MaxAddressLines {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "A customer address has at most six lines")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		AccountNumber:     accountNumber,
		Name:              name,
		AddressLines:      append([]string(nil), addressLines...),
		PaymentTermDays:   DefaultPaymentTermDays,
	}, nil
}

// SetBillingUnit records a billing-unit override
func (c *Customer) SetBillingUnit(unit string) {
	c.BillingUnit = unit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetPaymentTerms sets the payment terms in days
func (c *Customer) SetPaymentTerms(days int) error {
	if days <= 0 {
		return shared.NewDomainError("INVALID_TERMS", "Payment terms must be positive")
	}
	c.PaymentTermDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// DueDate computes the payment due date for a document date
func (c *Customer) DueDate(documentDate time.Time) time.Time {
	days := c.PaymentTermDays
	if days <= 0 {
		days = DefaultPaymentTermDays
	}
	return documentDate.AddDate(0, 0, days)
}
