package billing

import (
	"github.com/google/uuid"
)

// CreditOrigin is the single (customer, invoice) pair a valid credit-note
// selection traces back to
type CreditOrigin struct {
	CustomerCode  string
	InvoiceNumber string
}

// CreditValidator enforces that every clocking selected for a credit note
// traces, via its latest document detail, to the same single prior
// invoice for the same customer.
type CreditValidator struct{}

// Validate checks the proposed clocking set against the resolved
// effective documents. The selection is valid iff it is non-empty, every
// clocking's latest document is an invoice, and exactly one distinct
// (customer, invoice number) pair exists across the set.
func (CreditValidator) Validate(clockingIDs []uuid.UUID, effective map[uuid.UUID]EffectiveDocument) (CreditOrigin, error) {
	if len(clockingIDs) == 0 {
		return CreditOrigin{}, ErrEmptySelection
	}

	var origin CreditOrigin
	for _, id := range clockingIDs {
		eff, ok := effective[id]
		if !ok {
			return CreditOrigin{}, ErrNotCreditable
		}
		if eff.DocumentType != DocumentTypeInvoice {
			return CreditOrigin{}, ErrAlreadyCredited
		}

		if origin == (CreditOrigin{}) {
			origin = CreditOrigin{CustomerCode: eff.CustomerCode, InvoiceNumber: eff.DocumentNumber}
			continue
		}
		if eff.CustomerCode != origin.CustomerCode {
			return CreditOrigin{}, ErrMixedCustomer
		}
		if eff.DocumentNumber != origin.InvoiceNumber {
			return CreditOrigin{}, ErrMixedSource
		}
	}

	return origin, nil
}
