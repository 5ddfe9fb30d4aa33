package invoicing

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/timebill/backend/internal/domain/timesheet"
)

// SelectionService answers "what would this selection pick up" questions.
// Selections are pure reads: re-running one with different filters never
// changes any state.
type SelectionService struct {
	clockings timesheet.ClockingRepository
	logger    *zap.Logger
}

// NewSelectionService creates a new selection service
func NewSelectionService(clockings timesheet.ClockingRepository, logger *zap.Logger) *SelectionService {
	return &SelectionService{
		clockings: clockings,
		logger:    logger,
	}
}

// SelectionResult is the matched clockings with running totals
type SelectionResult struct {
	Clockings    []timesheet.Clocking
	TotalMinutes int64
	TotalAmount  decimal.Decimal
}

// Select runs a selection query and totals the result
func (s *SelectionService) Select(ctx context.Context, query timesheet.SelectionQuery) (*SelectionResult, error) {
	clockings, err := s.clockings.FindForSelection(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &SelectionResult{
		Clockings:   clockings,
		TotalAmount: decimal.Zero,
	}
	for i := range clockings {
		result.TotalMinutes += clockings[i].DurationMinutes()
		result.TotalAmount = result.TotalAmount.Add(clockings[i].Amount)
	}

	s.logger.Debug("Selection evaluated",
		zap.String("mode", string(query.Mode)),
		zap.Int("matches", len(clockings)),
	)
	return result, nil
}
