package timesheet

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/shared/valueobject"
)

// InvoiceState represents whether a clocking has been billed
type InvoiceState string

const (
	InvoiceStateNotInvoiced InvoiceState = "NOT_INVOICED"
	InvoiceStateInvoiced    InvoiceState = "INVOICED"
)

// IsValid checks if the state is a valid InvoiceState
func (s InvoiceState) IsValid() bool {
	return s == InvoiceStateNotInvoiced || s == InvoiceStateInvoiced
}

// String returns the string representation of InvoiceState
func (s InvoiceState) String() string {
	return string(s)
}

// Clocking is a recorded time interval billed to a customer/project at a
// given rate. It is the aggregate root of the timesheet context.
//
// Amount is derived from the interval and rate when the entry is committed
// and cached on the record. Billing always prices from the stored rate and
// amount, never from a project's current rate, so historical documents keep
// the price that was in force when the time was worked.
type Clocking struct {
	shared.BaseAggregateRoot
	ResourceCode string
	CustomerCode string
	ProjectCode  string
	Notes        string
	StartTime    time.Time
	EndTime      time.Time
	HourlyRate   decimal.Decimal
	Amount       decimal.Decimal
	InvoiceState InvoiceState
	// InvoiceNumber points at the last invoice that billed this clocking.
	// Full history is reconstructed from document details, not from here.
	InvoiceNumber string
}

// NewClocking creates a committed time entry
func NewClocking(resourceCode, customerCode, projectCode, notes string, start, end time.Time, hourlyRate valueobject.Money) (*Clocking, error) {
	if resourceCode == "" {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Resource code cannot be empty")
	}
	if customerCode == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer code cannot be empty")
	}
	if !end.After(start) {
		return nil, shared.NewDomainError("INVALID_INTERVAL", "End time must be after start time")
	}
	if hourlyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}

	c := &Clocking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResourceCode:      resourceCode,
		CustomerCode:      customerCode,
		ProjectCode:       projectCode,
		Notes:             notes,
		StartTime:         start,
		EndTime:           end,
		HourlyRate:        hourlyRate.Amount(),
		InvoiceState:      InvoiceStateNotInvoiced,
	}
	c.Amount = c.computeAmount()
	return c, nil
}

// NewSundryAdjustment creates a zero-duration pseudo-clocking carrying a
// manually entered price. It exists so a sundry document line gets its own
// detail row like any billed clocking.
func NewSundryAdjustment(resourceCode, customerCode, projectCode, description string, date time.Time, amount valueobject.Money) (*Clocking, error) {
	if customerCode == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer code cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sundry adjustment requires a description")
	}

	return &Clocking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResourceCode:      resourceCode,
		CustomerCode:      customerCode,
		ProjectCode:       projectCode,
		Notes:             description,
		StartTime:         date,
		EndTime:           date,
		HourlyRate:        decimal.Zero,
		Amount:            amount.Amount().Round(2),
		InvoiceState:      InvoiceStateNotInvoiced,
	}, nil
}

// DurationMinutes returns the clocked interval rounded to whole minutes
func (c *Clocking) DurationMinutes() int64 {
	return int64(math.Round(c.EndTime.Sub(c.StartTime).Minutes()))
}

// computeAmount derives the cached amount: whole minutes at the hourly rate,
// rounded half-up to cents
func (c *Clocking) computeAmount() decimal.Decimal {
	hours := decimal.NewFromInt(c.DurationMinutes()).Div(decimal.NewFromInt(60))
	return hours.Mul(c.HourlyRate).Round(2)
}

// HourlyRateMoney returns the stored rate as Money
func (c *Clocking) HourlyRateMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.HourlyRate)
}

// AmountMoney returns the cached amount as Money
func (c *Clocking) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.Amount)
}

// IsInvoiced returns true once the clocking has been billed
func (c *Clocking) IsInvoiced() bool {
	return c.InvoiceState == InvoiceStateInvoiced
}

// UpdateEntry edits the recorded interval, notes and rate. Allowed only
// while the clocking has not been invoiced; the cached amount is re-derived.
func (c *Clocking) UpdateEntry(notes string, start, end time.Time, hourlyRate valueobject.Money) error {
	if c.IsInvoiced() {
		return shared.NewDomainError("ALREADY_INVOICED", "Invoiced clockings cannot be edited")
	}
	if !end.After(start) {
		return shared.NewDomainError("INVALID_INTERVAL", "End time must be after start time")
	}
	if hourlyRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}

	c.Notes = notes
	c.StartTime = start
	c.EndTime = end
	c.HourlyRate = hourlyRate.Amount()
	c.Amount = c.computeAmount()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// MarkInvoiced flips the clocking onto the given invoice. Only the invoicing
// engine calls this, inside the document transaction.
func (c *Clocking) MarkInvoiced(invoiceNumber string) error {
	if c.IsInvoiced() {
		return shared.NewDomainError("ALREADY_INVOICED", "Clocking is already on an invoice")
	}
	if invoiceNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	c.InvoiceState = InvoiceStateInvoiced
	c.InvoiceNumber = invoiceNumber
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
