package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// EffectiveDocument describes the document a clocking's most recent
// detail row points at. Ordering ties break on GeneratedAt descending,
// then document ID, so resolution is deterministic.
type EffectiveDocument struct {
	ClockingID     uuid.UUID
	DocumentID     uuid.UUID
	DocumentNumber string
	DocumentType   DocumentType
	CustomerCode   string
	GeneratedAt    time.Time
}

// DocumentRepository is the read-side persistence port for produced
// documents. Finders return nil (not an error) when nothing matches.
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByNumber(ctx context.Context, documentNumber string) (*Document, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Document, error)
	DetailsForDocument(ctx context.Context, documentID uuid.UUID) ([]DocumentDetail, error)
	// LatestDetailsFor resolves each clocking's effective document.
	// Clockings with no detail rows are absent from the result.
	LatestDetailsFor(ctx context.Context, clockingIDs []uuid.UUID) (map[uuid.UUID]EffectiveDocument, error)
}

// NumberAllocator exposes the two monotonic document counters. Peek never
// advances; the counter is advanced only inside the document writer's
// transaction, so an aborted production leaves it untouched.
type NumberAllocator interface {
	Peek(ctx context.Context, docType DocumentType) (string, error)
}

// DocumentDraft is everything the writer needs to persist one produced
// document atomically.
type DocumentDraft struct {
	CustomerCode string
	Type         DocumentType
	DocumentDate time.Time
	HeaderText   string
	// OriginalInvoiceNumber is required for credit notes
	OriginalInvoiceNumber string
	// Lines is the consolidated preview; only the total is persisted,
	// lines are rebuilt from the linked clockings on reprint
	Lines []DraftLine
	// ClockingIDs are the contributing clockings to link and (for
	// invoices) flip to invoiced
	ClockingIDs []uuid.UUID
	// SundryClocking is an optional, not-yet-persisted adjustment entry
	// created and linked in the same transaction
	SundryClocking *timesheet.Clocking
}

// DocumentWriter persists a draft as one atomic unit: number allocation,
// the document header, one detail per contributing clocking, and the
// invoice-state flips either all commit together or none do.
type DocumentWriter interface {
	Persist(ctx context.Context, draft DocumentDraft) (*Document, error)
}
