package timesheet

import (
	"time"

	"github.com/timebill/backend/internal/domain/shared"
)

// SelectionMode determines which clockings are eligible for a billing
// operation
type SelectionMode string

const (
	// ModeReport lists clockings for reporting; already-invoiced entries
	// are included only on request
	ModeReport SelectionMode = "REPORT"
	// ModeInvoice lists clockings whose current effective state is not
	// invoiced
	ModeInvoice SelectionMode = "INVOICE"
	// ModeCredit lists clockings whose latest document is an invoice,
	// optionally restricted to one originating invoice number
	ModeCredit SelectionMode = "CREDIT"
	// ModeReprint lists every clocking ever linked to one document,
	// regardless of current state
	ModeReprint SelectionMode = "REPRINT"
)

// IsValid checks if the mode is a known SelectionMode
func (m SelectionMode) IsValid() bool {
	switch m {
	case ModeReport, ModeInvoice, ModeCredit, ModeReprint:
		return true
	}
	return false
}

// SelectionError codes surfaced inline to the caller
var (
	ErrInvalidRange = shared.NewDomainError("INVALID_RANGE", "Selection start must not be after end")
	ErrInvalidMode  = shared.NewDomainError("INVALID_MODE", "Unknown selection mode")
)

// SelectionQuery is the filter for one billing selection. Zero-valued
// fields mean "any". Results are always ordered by ascending start time;
// a selection is pure and may be re-run freely when filters change.
type SelectionQuery struct {
	Mode         SelectionMode
	ResourceCode string
	CustomerCode string
	ProjectCode  string
	From         time.Time
	To           time.Time
	// IncludeInvoiced widens report mode to billed entries
	IncludeInvoiced bool
	// DocumentNumber filters credit mode to one originating invoice and
	// names the document for reprint mode
	DocumentNumber string
	// NumberIsPrefix treats DocumentNumber as a prefix (report filtering
	// only; credit and reprint always match exactly)
	NumberIsPrefix bool
}

// Validate checks the query before it is run
func (q SelectionQuery) Validate() error {
	if !q.Mode.IsValid() {
		return ErrInvalidMode
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return ErrInvalidRange
	}
	if q.Mode == ModeReprint && q.DocumentNumber == "" {
		return shared.NewDomainError("INVALID_INPUT", "Reprint selection requires a document number")
	}
	return nil
}
