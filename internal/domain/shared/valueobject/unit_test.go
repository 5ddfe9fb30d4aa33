package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingUnit(t *testing.T) {
	t.Run("empty code defaults to hour", func(t *testing.T) {
		u, err := ParseBillingUnit("")
		require.NoError(t, err)
		assert.Equal(t, UnitHour, u)
	})

	t.Run("day", func(t *testing.T) {
		u, err := ParseBillingUnit("day")
		require.NoError(t, err)
		assert.Equal(t, UnitDay, u)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := ParseBillingUnit("fortnight")
		assert.Error(t, err)
	})
}

func TestBillingUnitQuantityFromMinutes(t *testing.T) {
	t.Run("90 minutes is 1.5 hours", func(t *testing.T) {
		q := UnitHour.QuantityFromMinutes(90)
		assert.True(t, q.Equal(decimal.NewFromFloat(1.5)), q.String())
	})

	t.Run("240 minutes is half a day", func(t *testing.T) {
		q := UnitDay.QuantityFromMinutes(240)
		assert.True(t, q.Equal(decimal.NewFromFloat(0.5)), q.String())
	})
}

func TestBillingUnitRateFromHourly(t *testing.T) {
	hourly := NewMoneyUSD(decimal.NewFromInt(50))

	t.Run("hourly rate unchanged for hours", func(t *testing.T) {
		assert.Equal(t, "50.00", UnitHour.RateFromHourly(hourly).StringFixed(2))
	})

	t.Run("day rate is eight hourly rates", func(t *testing.T) {
		assert.Equal(t, "400.00", UnitDay.RateFromHourly(hourly).StringFixed(2))
	})
}
