package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/shared/valueobject"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// ClockingService handles time entry use cases. Committed entries are
// immediately billable; once an entry lands on an invoice it is frozen and
// can only be reversed through a credit note.
type ClockingService struct {
	clockings timesheet.ClockingRepository
	logger    *zap.Logger
}

// NewClockingService creates a new clocking service
func NewClockingService(clockings timesheet.ClockingRepository, logger *zap.Logger) *ClockingService {
	return &ClockingService{
		clockings: clockings,
		logger:    logger,
	}
}

// CommitEntryInput holds the data for committing a time entry
type CommitEntryInput struct {
	ResourceCode string
	CustomerCode string
	ProjectCode  string
	Notes        string
	StartTime    time.Time
	EndTime      time.Time
	HourlyRate   decimal.Decimal
}

// UpdateEntryInput holds the data for editing an uninvoiced entry
type UpdateEntryInput struct {
	Notes      string
	StartTime  time.Time
	EndTime    time.Time
	HourlyRate decimal.Decimal
}

// CommitEntry validates and stores a new time entry
func (s *ClockingService) CommitEntry(ctx context.Context, input CommitEntryInput) (*timesheet.Clocking, error) {
	clocking, err := timesheet.NewClocking(
		input.ResourceCode,
		input.CustomerCode,
		input.ProjectCode,
		input.Notes,
		input.StartTime,
		input.EndTime,
		valueobject.NewMoneyUSD(input.HourlyRate),
	)
	if err != nil {
		return nil, err
	}

	if err := s.clockings.Save(ctx, clocking); err != nil {
		s.logger.Error("Failed to save clocking", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Clocking committed",
		zap.String("clocking_id", clocking.ID.String()),
		zap.String("resource_code", clocking.ResourceCode),
		zap.String("customer_code", clocking.CustomerCode),
		zap.Int64("minutes", clocking.DurationMinutes()),
	)
	return clocking, nil
}

// GetEntry loads one time entry
func (s *ClockingService) GetEntry(ctx context.Context, id uuid.UUID) (*timesheet.Clocking, error) {
	clocking, err := s.clockings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clocking == nil {
		return nil, shared.ErrNotFound
	}
	return clocking, nil
}

// UpdateEntry edits an entry while it has not been invoiced
func (s *ClockingService) UpdateEntry(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*timesheet.Clocking, error) {
	clocking, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	err = clocking.UpdateEntry(input.Notes, input.StartTime, input.EndTime,
		valueobject.NewMoneyUSD(input.HourlyRate))
	if err != nil {
		return nil, err
	}

	if err := s.clockings.Save(ctx, clocking); err != nil {
		s.logger.Error("Failed to update clocking", zap.Error(err))
		return nil, err
	}
	return clocking, nil
}

// DeleteEntry removes an uninvoiced entry
func (s *ClockingService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.clockings.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Clocking deleted", zap.String("clocking_id", id.String()))
	return nil
}

// ListEntries runs a report-mode selection over the clockings
func (s *ClockingService) ListEntries(ctx context.Context, query timesheet.SelectionQuery) ([]timesheet.Clocking, error) {
	query.Mode = timesheet.ModeReport
	return s.clockings.FindForSelection(ctx, query)
}
