package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BillingUnit is the unit clocked time is billed in. Clockings are always
// recorded in minutes; a unit defines how many minutes make up one billable
// unit and what label appears next to the unit price on a document line.
type BillingUnit struct {
	code    string
	minutes decimal.Decimal
}

var (
	// UnitHour bills per clocked hour
	UnitHour = BillingUnit{code: "hour", minutes: decimal.NewFromInt(60)}
	// UnitDay bills per eight-hour working day
	UnitDay = BillingUnit{code: "day", minutes: decimal.NewFromInt(480)}
)

// ParseBillingUnit resolves a unit code to a BillingUnit
func ParseBillingUnit(code string) (BillingUnit, error) {
	switch code {
	case "", UnitHour.code:
		return UnitHour, nil
	case UnitDay.code:
		return UnitDay, nil
	}
	return BillingUnit{}, fmt.Errorf("unknown billing unit %q", code)
}

// Code returns the unit code ("hour", "day")
func (u BillingUnit) Code() string {
	return u.code
}

// Minutes returns the number of clocked minutes per billable unit
func (u BillingUnit) Minutes() decimal.Decimal {
	return u.minutes
}

// IsZero reports whether the unit is the zero value
func (u BillingUnit) IsZero() bool {
	return u.code == ""
}

// QuantityFromMinutes converts whole clocked minutes into a quantity
// expressed in this unit
func (u BillingUnit) QuantityFromMinutes(minutes int64) decimal.Decimal {
	return decimal.NewFromInt(minutes).Div(u.minutes)
}

// RateFromHourly converts an hourly rate into the price of one unit.
// For hours this is the rate itself; for days it is rate * 8.
func (u BillingUnit) RateFromHourly(hourlyRate Money) Money {
	factor := u.minutes.Div(decimal.NewFromInt(60))
	return hourlyRate.Multiply(factor)
}

// String returns the unit code
func (u BillingUnit) String() string {
	return u.code
}
