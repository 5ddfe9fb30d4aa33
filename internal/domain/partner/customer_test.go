package partner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with default terms", func(t *testing.T) {
		c, err := NewCustomer("CUST-1", "AC-001", "Acme Ltd", []string{"1 High Street", "Springfield"})
		require.NoError(t, err)
		assert.Equal(t, DefaultPaymentTermDays, c.PaymentTermDays)
		assert.Empty(t, c.BillingUnit)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewCustomer("", "AC-001", "Acme Ltd", nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("CUST-1", "AC-001", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects more than six address lines", func(t *testing.T) {
		lines := []string{"1", "2", "3", "4", "5", "6", "7"}
		_, err := NewCustomer("CUST-1", "AC-001", "Acme Ltd", lines)
		assert.Error(t, err)
	})
}

func TestCustomerDueDate(t *testing.T) {
	c, err := NewCustomer("CUST-1", "AC-001", "Acme Ltd", nil)
	require.NoError(t, err)

	docDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, docDate.AddDate(0, 0, 30), c.DueDate(docDate))

	require.NoError(t, c.SetPaymentTerms(14))
	assert.Equal(t, docDate.AddDate(0, 0, 14), c.DueDate(docDate))

	assert.Error(t, c.SetPaymentTerms(0))
}
