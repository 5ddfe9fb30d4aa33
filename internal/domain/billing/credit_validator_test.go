package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func effectiveInvoice(clockingID uuid.UUID, customer, number string) EffectiveDocument {
	return EffectiveDocument{
		ClockingID:     clockingID,
		DocumentID:     uuid.New(),
		DocumentNumber: number,
		DocumentType:   DocumentTypeInvoice,
		CustomerCode:   customer,
	}
}

func TestCreditValidator(t *testing.T) {
	var validator CreditValidator
	a, b := uuid.New(), uuid.New()

	t.Run("single invoice and customer is valid", func(t *testing.T) {
		effective := map[uuid.UUID]EffectiveDocument{
			a: effectiveInvoice(a, "CUST-1", "100001"),
			b: effectiveInvoice(b, "CUST-1", "100001"),
		}

		origin, err := validator.Validate([]uuid.UUID{a, b}, effective)
		require.NoError(t, err)
		assert.Equal(t, CreditOrigin{CustomerCode: "CUST-1", InvoiceNumber: "100001"}, origin)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := validator.Validate(nil, nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("two originating invoices fail with mixed source", func(t *testing.T) {
		effective := map[uuid.UUID]EffectiveDocument{
			a: effectiveInvoice(a, "CUST-1", "100001"),
			b: effectiveInvoice(b, "CUST-1", "100002"),
		}

		_, err := validator.Validate([]uuid.UUID{a, b}, effective)
		assert.ErrorIs(t, err, ErrMixedSource)
	})

	t.Run("two customers fail with mixed customer", func(t *testing.T) {
		effective := map[uuid.UUID]EffectiveDocument{
			a: effectiveInvoice(a, "CUST-1", "100001"),
			b: effectiveInvoice(b, "CUST-2", "100002"),
		}

		_, err := validator.Validate([]uuid.UUID{a, b}, effective)
		assert.ErrorIs(t, err, ErrMixedCustomer)
	})

	t.Run("never-invoiced clocking is not creditable", func(t *testing.T) {
		effective := map[uuid.UUID]EffectiveDocument{
			a: effectiveInvoice(a, "CUST-1", "100001"),
		}

		_, err := validator.Validate([]uuid.UUID{a, b}, effective)
		assert.ErrorIs(t, err, ErrNotCreditable)
	})

	t.Run("already-credited clocking is rejected", func(t *testing.T) {
		credited := effectiveInvoice(b, "CUST-1", "200001")
		credited.DocumentType = DocumentTypeCreditNote
		effective := map[uuid.UUID]EffectiveDocument{
			a: effectiveInvoice(a, "CUST-1", "100001"),
			b: credited,
		}

		_, err := validator.Validate([]uuid.UUID{a, b}, effective)
		assert.ErrorIs(t, err, ErrAlreadyCredited)
	})
}
