package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/timebill/backend/internal/domain/timesheet"
)

func TestSelectionService_Select(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo := new(MockClockingRepository)
	svc := NewSelectionService(repo, zap.NewNop())

	a := testClocking(t, "CUST-1", start, 60, 50)
	b := testClocking(t, "CUST-1", start.Add(2*time.Hour), 90, 50)
	query := timesheet.SelectionQuery{Mode: timesheet.ModeInvoice, CustomerCode: "CUST-1"}
	repo.On("FindForSelection", ctx, query).Return([]timesheet.Clocking{a, b}, nil)

	result, err := svc.Select(ctx, query)
	require.NoError(t, err)

	assert.Len(t, result.Clockings, 2)
	assert.Equal(t, int64(150), result.TotalMinutes)
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("125.00")))
}

func TestSelectionService_Select_Empty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClockingRepository)
	svc := NewSelectionService(repo, zap.NewNop())

	query := timesheet.SelectionQuery{Mode: timesheet.ModeInvoice}
	repo.On("FindForSelection", ctx, query).Return([]timesheet.Clocking{}, nil)

	result, err := svc.Select(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, result.Clockings)
	assert.Zero(t, result.TotalMinutes)
	assert.True(t, result.TotalAmount.IsZero())
}
