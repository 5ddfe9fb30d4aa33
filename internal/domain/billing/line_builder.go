package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/domain/shared/valueobject"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// LineBuilder maps clockings and sundry adjustments into priced draft
// lines in one invoicing unit. Prices always come from the rate stored on
// the clocking, so a project rate changed after the time was worked never
// leaks into the document.
type LineBuilder struct {
	unit valueobject.BillingUnit
}

// NewLineBuilder creates a builder for the given invoicing unit; the zero
// unit falls back to hours
func NewLineBuilder(unit valueobject.BillingUnit) LineBuilder {
	if unit.IsZero() {
		unit = valueobject.UnitHour
	}
	return LineBuilder{unit: unit}
}

// Unit returns the invoicing unit this builder prices in
func (b LineBuilder) Unit() valueobject.BillingUnit {
	return b.unit
}

// FromClocking builds one draft line from a clocking. Quantity is the
// interval rounded to whole minutes converted into the billing unit; the
// line price is quantity times the unit price, rounded half-up to cents.
func (b LineBuilder) FromClocking(c *timesheet.Clocking, purchaseOrder string) DraftLine {
	quantity := b.unit.QuantityFromMinutes(c.DurationMinutes())
	unitPrice := b.unit.RateFromHourly(c.HourlyRateMoney()).Amount()

	description := c.Notes
	if description == "" {
		description = c.ProjectCode
	}

	line := DraftLine{
		Quantity:          quantity,
		Unit:              b.unit,
		Description:       description,
		UnitPrice:         unitPrice,
		PerQuantity:       decimal.NewFromInt(1),
		PerLabel:          b.unit.Code(),
		SourceClockingIDs: map[uuid.UUID]struct{}{c.ID: {}},
		DeliveryDate:      dateOnly(c.StartTime),
		PurchaseOrder:     purchaseOrder,
	}
	line.LinePrice = line.priceFor(quantity)
	return line
}

// Sundry builds a manually entered adjustment line. It has no source
// clockings and bypasses consolidation.
func (b LineBuilder) Sundry(description string, price valueobject.Money, purchaseOrder string, deliveryDate time.Time) DraftLine {
	return DraftLine{
		Quantity:          decimal.NewFromInt(1),
		Unit:              b.unit,
		Description:       description,
		UnitPrice:         price.Amount().Round(2),
		PerQuantity:       decimal.NewFromInt(1),
		PerLabel:          "",
		LinePrice:         price.Amount().Round(2),
		SourceClockingIDs: map[uuid.UUID]struct{}{},
		DeliveryDate:      dateOnly(deliveryDate),
		PurchaseOrder:     purchaseOrder,
		Sundry:            true,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
