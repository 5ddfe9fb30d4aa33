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

func TestLineBuilderFromClocking(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("prices whole minutes in hours", func(t *testing.T) {
		c, err := timesheet.NewClocking("RES-1", "CUST-1", "PROJ-1", "support",
			start, start.Add(90*time.Minute), valueobject.NewMoneyUSD(decimal.NewFromInt(50)))
		require.NoError(t, err)

		line := NewLineBuilder(valueobject.UnitHour).FromClocking(c, "PO-77")

		assert.True(t, line.Quantity.Equal(decimal.NewFromFloat(1.5)))
		assert.Equal(t, "hour", line.Unit.Code())
		assert.Equal(t, "50.00", line.UnitPriceMoney().StringFixed(2))
		assert.Equal(t, "75.00", line.LinePriceMoney().StringFixed(2))
		assert.Equal(t, "PO-77", line.PurchaseOrder)
		assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), line.DeliveryDate)
		assert.Contains(t, line.SourceClockingIDs, c.ID)
		assert.False(t, line.Sundry)
	})

	t.Run("prices from the stored rate, not a later one", func(t *testing.T) {
		c, err := timesheet.NewClocking("RES-1", "CUST-1", "PROJ-1", "support",
			start, start.Add(time.Hour), valueobject.NewMoneyUSD(decimal.NewFromInt(50)))
		require.NoError(t, err)

		line := NewLineBuilder(valueobject.UnitHour).FromClocking(c, "")
		assert.Equal(t, "50.00", line.LinePriceMoney().StringFixed(2))
	})

	t.Run("day unit converts quantity and rate", func(t *testing.T) {
		c, err := timesheet.NewClocking("RES-1", "CUST-1", "PROJ-1", "on site",
			start, start.Add(4*time.Hour), valueobject.NewMoneyUSD(decimal.NewFromInt(50)))
		require.NoError(t, err)

		line := NewLineBuilder(valueobject.UnitDay).FromClocking(c, "")

		// 4h = half a day at 400/day = 200, same value as 4h * 50/h
		assert.True(t, line.Quantity.Equal(decimal.NewFromFloat(0.5)))
		assert.Equal(t, "400.00", line.UnitPriceMoney().StringFixed(2))
		assert.Equal(t, "200.00", line.LinePriceMoney().StringFixed(2))
	})

	t.Run("falls back to project code when notes are empty", func(t *testing.T) {
		c, err := timesheet.NewClocking("RES-1", "CUST-1", "PROJ-1", "",
			start, start.Add(time.Hour), valueobject.NewMoneyUSD(decimal.NewFromInt(50)))
		require.NoError(t, err)

		line := NewLineBuilder(valueobject.BillingUnit{}).FromClocking(c, "")
		assert.Equal(t, "PROJ-1", line.Description)
		assert.Equal(t, "hour", line.Unit.Code())
	})
}

func TestLineBuilderSundry(t *testing.T) {
	date := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	line := NewLineBuilder(valueobject.UnitHour).Sundry("travel expenses",
		valueobject.NewMoneyUSD(decimal.NewFromFloat(120.505)), "PO-9", date)

	assert.True(t, line.Sundry)
	assert.Empty(t, line.SourceClockingIDs)
	assert.Equal(t, "120.51", line.LinePriceMoney().StringFixed(2))
	assert.Equal(t, "travel expenses", line.Description)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), line.DeliveryDate)
}
