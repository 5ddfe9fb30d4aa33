package timesheet

import (
	"context"

	"github.com/google/uuid"
)

// ClockingRepository is the persistence port for clockings.
// Finders return nil (not an error) when nothing matches.
type ClockingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Clocking, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Clocking, error)
	// FindForSelection runs a validated SelectionQuery and returns the
	// eligible clockings ordered by ascending start time. Credit and
	// reprint modes resolve eligibility through document details.
	FindForSelection(ctx context.Context, q SelectionQuery) ([]Clocking, error)
	Save(ctx context.Context, clocking *Clocking) error
	// Delete removes a clocking; implementations must refuse once the
	// clocking has been invoiced
	Delete(ctx context.Context, id uuid.UUID) error
}
