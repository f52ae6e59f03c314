package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid inputs", func(t *testing.T) {
		customer, err := NewCustomer("Amine B", "amine@example.com", "+213555000111")
		require.NoError(t, err)

		assert.Equal(t, "Amine B", customer.Name)
		assert.Equal(t, "amine@example.com", customer.Email)
		assert.Equal(t, 0, customer.LoyaltyPoints)
		assert.True(t, customer.CreditLimit.IsZero())
		assert.Equal(t, 1, customer.GetVersion())

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
	})

	t.Run("allows empty email", func(t *testing.T) {
		_, err := NewCustomer("Walk-in", "", "")
		require.NoError(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewCustomer("Amine B", "not-an-email", "")
		require.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("", "amine@example.com", "")
		require.Error(t, err)
	})
}

func TestCustomerLoyaltyPoints(t *testing.T) {
	customer, err := NewCustomer("Amine B", "", "")
	require.NoError(t, err)

	t.Run("add accumulates points", func(t *testing.T) {
		require.NoError(t, customer.AddLoyaltyPoints(50))
		require.NoError(t, customer.AddLoyaltyPoints(25))
		assert.Equal(t, 75, customer.LoyaltyPoints)
	})

	t.Run("redeem debits points", func(t *testing.T) {
		require.NoError(t, customer.RedeemLoyaltyPoints(60))
		assert.Equal(t, 15, customer.LoyaltyPoints)
	})

	t.Run("redeem beyond balance fails", func(t *testing.T) {
		err := customer.RedeemLoyaltyPoints(100)
		require.Error(t, err)
		assert.Equal(t, 15, customer.LoyaltyPoints)
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		require.Error(t, customer.AddLoyaltyPoints(0))
		require.Error(t, customer.RedeemLoyaltyPoints(-1))
	})
}

func TestCustomerCreditLimit(t *testing.T) {
	customer, err := NewCustomer("Amine B", "", "")
	require.NoError(t, err)

	require.NoError(t, customer.SetCreditLimit(decimal.NewFromInt(5000)))
	assert.True(t, customer.CreditLimit.Equal(decimal.NewFromInt(5000)))

	require.Error(t, customer.SetCreditLimit(decimal.NewFromInt(-1)))
}

func TestSupplierLifecycle(t *testing.T) {
	t.Run("new supplier is active", func(t *testing.T) {
		supplier, err := NewSupplier("Atlas Distribution", "K. Mansouri")
		require.NoError(t, err)
		assert.True(t, supplier.IsActive())

		events := supplier.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSupplierCreated, events[0].EventType())
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		supplier, err := NewSupplier("Atlas Distribution", "")
		require.NoError(t, err)
		supplier.ClearDomainEvents()

		require.NoError(t, supplier.Deactivate())
		assert.False(t, supplier.IsActive())
		require.Error(t, supplier.Deactivate())

		require.NoError(t, supplier.Activate())
		assert.True(t, supplier.IsActive())
		require.Error(t, supplier.Activate())

		events := supplier.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeSupplierStatusChanged, events[0].EventType())
	})

	t.Run("contact email validated", func(t *testing.T) {
		supplier, err := NewSupplier("Atlas Distribution", "")
		require.NoError(t, err)

		require.Error(t, supplier.SetContact("bogus", ""))
		require.NoError(t, supplier.SetContact("sales@atlas.dz", "+213555002233"))
	})
}
