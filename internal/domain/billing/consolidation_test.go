package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timebill/backend/internal/domain/shared/valueobject"
	"github.com/timebill/backend/internal/domain/timesheet"
)

var day1 = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func clockedLine(t *testing.T, notes string, startHour, minutes int, rate int64) DraftLine {
	t.Helper()
	start := day1.Add(time.Duration(startHour) * time.Hour)
	c, err := timesheet.NewClocking("RES-1", "CUST-1", "PROJ-1", notes,
		start, start.Add(time.Duration(minutes)*time.Minute),
		valueobject.NewMoneyUSD(decimal.NewFromInt(rate)))
	require.NoError(t, err)
	return NewLineBuilder(valueobject.UnitHour).FromClocking(c, "")
}

func TestConsolidateMergesEqualLinesOnSameDay(t *testing.T) {
	// Spec scenario: 09:00-10:00 and 10:00-11:30 at $50/h, same
	// description and day, merge to one 2.5h line worth $125.00.
	a := clockedLine(t, "support", 9, 60, 50)
	b := clockedLine(t, "support", 10, 90, 50)

	out := Consolidate([]DraftLine{a, b}, GranularityByDay)

	require.Len(t, out, 1)
	assert.True(t, out[0].Quantity.Equal(decimal.NewFromFloat(2.5)), out[0].Quantity.String())
	assert.Equal(t, "125.00", out[0].LinePriceMoney().StringFixed(2))
	assert.Len(t, out[0].SourceClockingIDs, 2)
	for id := range a.SourceClockingIDs {
		assert.Contains(t, out[0].SourceClockingIDs, id)
	}
	for id := range b.SourceClockingIDs {
		assert.Contains(t, out[0].SourceClockingIDs, id)
	}
}

func TestConsolidatePreservesTotalValue(t *testing.T) {
	lines := []DraftLine{
		clockedLine(t, "support", 9, 47, 55),
		clockedLine(t, "support", 10, 13, 55),
		clockedLine(t, "development", 11, 95, 80),
		clockedLine(t, "support", 13, 29, 55),
		clockedLine(t, "development", 15, 31, 80),
	}
	before := SumLinePrices(lines)

	for _, policy := range []GranularityPolicy{GranularityByClocking, GranularityByDay, GranularityNone} {
		out := Consolidate(lines, policy)
		after := SumLinePrices(out)
		eliminated := int64(len(lines) - len(out))
		tolerance := decimal.New(1, -2).Mul(decimal.NewFromInt(eliminated))
		assert.True(t, before.Sub(after).Abs().LessThanOrEqual(tolerance),
			"policy %s drifted from %s to %s", policy, before, after)
	}
}

func TestConsolidateIsIdempotent(t *testing.T) {
	lines := []DraftLine{
		clockedLine(t, "support", 9, 60, 50),
		clockedLine(t, "support", 10, 90, 50),
		clockedLine(t, "development", 12, 120, 80),
	}

	once := Consolidate(lines, GranularityByDay)
	twice := Consolidate(once, GranularityByDay)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.True(t, once[i].Quantity.Equal(twice[i].Quantity))
		assert.True(t, once[i].LinePrice.Equal(twice[i].LinePrice))
		assert.Equal(t, once[i].Description, twice[i].Description)
		assert.Equal(t, once[i].SourceClockingIDs, twice[i].SourceClockingIDs)
	}
}

func TestConsolidateByClockingNeverMerges(t *testing.T) {
	lines := []DraftLine{
		clockedLine(t, "support", 9, 60, 50),
		clockedLine(t, "support", 10, 60, 50),
	}
	out := Consolidate(lines, GranularityByClocking)
	assert.Len(t, out, 2)
}

func TestConsolidateByDayKeepsDaysApart(t *testing.T) {
	a := clockedLine(t, "support", 9, 60, 50)
	b := clockedLine(t, "support", 10, 60, 50)
	b.DeliveryDate = day1.AddDate(0, 0, 1)

	out := Consolidate([]DraftLine{a, b}, GranularityByDay)
	assert.Len(t, out, 2)

	// The same pair collapses when dates are ignored
	out = Consolidate([]DraftLine{a, b}, GranularityNone)
	assert.Len(t, out, 1)
}

func TestConsolidateMergesIntoMostRecentSurvivor(t *testing.T) {
	x1 := clockedLine(t, "support", 9, 60, 50)
	x2 := clockedLine(t, "support", 10, 60, 50)
	y := clockedLine(t, "development", 11, 60, 80)
	x3 := clockedLine(t, "support", 12, 30, 50)

	out := Consolidate([]DraftLine{x1, x2, y, x3}, GranularityNone)

	// x2 and x3 both fold into the surviving x1 line; y stays distinct
	require.Len(t, out, 2)
	assert.True(t, out[0].Quantity.Equal(decimal.NewFromFloat(2.5)), out[0].Quantity.String())
	assert.Len(t, out[0].SourceClockingIDs, 3)
	assert.Equal(t, "development", out[1].Description)
}

func TestConsolidateDoesNotTouchInput(t *testing.T) {
	a := clockedLine(t, "support", 9, 60, 50)
	b := clockedLine(t, "support", 10, 90, 50)
	origQty := a.Quantity

	Consolidate([]DraftLine{a, b}, GranularityNone)

	assert.True(t, a.Quantity.Equal(origQty))
	assert.Len(t, a.SourceClockingIDs, 1)
}

func TestConsolidateSundryBypass(t *testing.T) {
	builder := NewLineBuilder(valueobject.UnitHour)
	sundry := builder.Sundry("travel expenses", valueobject.NewMoneyUSD(decimal.NewFromInt(120)), "", day1)
	twin := builder.Sundry("travel expenses", valueobject.NewMoneyUSD(decimal.NewFromInt(120)), "", day1)

	out := Consolidate([]DraftLine{sundry, twin}, GranularityNone)
	assert.Len(t, out, 2)
}

func TestConsolidateRejectsUnknownPolicy(t *testing.T) {
	assert.Panics(t, func() {
		Consolidate(nil, GranularityPolicy("WEEKLY"))
	})
}
