package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timebill/backend/internal/domain/shared/valueobject"
)

// DraftLine is a transient priced line item, built from one clocking (or
// entered manually as a sundry adjustment) and possibly merged with other
// lines during consolidation. It is never persisted; provenance survives in
// SourceClockingIDs.
type DraftLine struct {
	Quantity    decimal.Decimal
	Unit        valueobject.BillingUnit
	Description string
	// UnitPrice is the price of PerQuantity units, shown next to PerLabel
	// on the printed line ("50.00 per hour")
	UnitPrice   decimal.Decimal
	PerQuantity decimal.Decimal
	PerLabel    string
	LinePrice   decimal.Decimal
	// SourceClockingIDs is the set of clockings whose time this line
	// bills; empty for sundry adjustments
	SourceClockingIDs map[uuid.UUID]struct{}
	DeliveryDate      time.Time
	PurchaseOrder     string
	Sundry            bool
}

// UnitPriceMoney returns the unit price as Money
func (l DraftLine) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.UnitPrice)
}

// LinePriceMoney returns the line price as Money
func (l DraftLine) LinePriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.LinePrice)
}

// SourceIDs returns the provenance set as a slice (order unspecified)
func (l DraftLine) SourceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(l.SourceClockingIDs))
	for id := range l.SourceClockingIDs {
		ids = append(ids, id)
	}
	return ids
}

// priceFor prices a quantity at this line's unit price, rounded half-up
// to cents
func (l DraftLine) priceFor(quantity decimal.Decimal) decimal.Decimal {
	per := l.PerQuantity
	if per.IsZero() {
		per = decimal.NewFromInt(1)
	}
	return quantity.Div(per).Mul(l.UnitPrice).Round(2)
}

// sameItem reports whether two lines bill the same thing at the same
// price: description, purchase order, unit price, unit and per-unit label
// must all agree before the granularity policy is even consulted.
func (l DraftLine) sameItem(other DraftLine) bool {
	return l.Description == other.Description &&
		l.PurchaseOrder == other.PurchaseOrder &&
		l.UnitPrice.Equal(other.UnitPrice) &&
		l.Unit.Code() == other.Unit.Code() &&
		l.PerLabel == other.PerLabel &&
		l.PerQuantity.Equal(other.PerQuantity)
}

// sameDay reports whether both lines carry the same delivery date
func (l DraftLine) sameDay(other DraftLine) bool {
	ly, lm, ld := l.DeliveryDate.Date()
	oy, om, od := other.DeliveryDate.Date()
	return ly == oy && lm == om && ld == od
}

// absorb merges the candidate into this line: quantities accumulate, the
// price is recomputed from the combined quantity, and provenance is the
// union of both source sets.
func (l *DraftLine) absorb(candidate DraftLine) {
	l.Quantity = l.Quantity.Add(candidate.Quantity)
	l.LinePrice = l.priceFor(l.Quantity)
	if l.SourceClockingIDs == nil {
		l.SourceClockingIDs = make(map[uuid.UUID]struct{})
	}
	for id := range candidate.SourceClockingIDs {
		l.SourceClockingIDs[id] = struct{}{}
	}
}
