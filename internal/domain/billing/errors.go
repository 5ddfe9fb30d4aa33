package billing

import "github.com/timebill/backend/internal/domain/shared"

// Validation and persistence error codes of the invoicing engine.
// Mixed-source and mixed-customer block the produce action outright;
// allocation and persistence failures abort the transaction with nothing
// committed, so the operation is safe to retry.
var (
	ErrEmptySelection    = shared.NewDomainError("EMPTY_SELECTION", "At least one clocking must be selected")
	ErrMixedSource       = shared.NewDomainError("MIXED_SOURCE", "Selected clockings trace to more than one originating invoice")
	ErrMixedCustomer     = shared.NewDomainError("MIXED_CUSTOMER", "Selected clockings belong to more than one customer")
	ErrNotCreditable     = shared.NewDomainError("NOT_CREDITABLE", "Clocking has never been invoiced")
	ErrAlreadyCredited   = shared.NewDomainError("ALREADY_CREDITED", "Clocking's latest document is already a credit note")
	ErrAllocationFailed  = shared.NewDomainError("ALLOCATION_FAILED", "Document number counter could not be advanced")
	ErrPersistenceFailed = shared.NewDomainError("PERSISTENCE_FAILED", "Document could not be persisted; nothing was committed")
)
