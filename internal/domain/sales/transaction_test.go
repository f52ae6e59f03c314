package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleTransaction(t *testing.T) {
	cashierID := uuid.New()

	buildCart := func(t *testing.T) *Cart {
		t.Helper()
		cart := NewCart(testTaxRate)
		require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-1", 1000, 10), 2))
		require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-2", 500, 10), 1))
		return cart
	}

	t.Run("snapshots cart lines and totals", func(t *testing.T) {
		cart := buildCart(t)
		tx, err := NewSaleTransaction(cart, PaymentMethodCash, cashierID)
		require.NoError(t, err)

		require.Len(t, tx.Lines, 2)
		assert.Equal(t, "SKU-1", tx.Lines[0].SKU)
		assert.Equal(t, 2, tx.Lines[0].Quantity)
		assert.True(t, tx.Lines[0].LineTotal.Equal(decimal.NewFromInt(2000)))
		assert.True(t, tx.Subtotal.Equal(decimal.NewFromInt(2500)))
		assert.True(t, tx.Tax.Equal(decimal.NewFromInt(475)))
		assert.True(t, tx.Total.Equal(decimal.NewFromInt(2975)))
		assert.Equal(t, PaymentMethodCash, tx.PaymentMethod)
		assert.Equal(t, cashierID, tx.CashierID)
		assert.Equal(t, 3, tx.TotalQuantity())
	})

	t.Run("walk-in sale has no customer reference", func(t *testing.T) {
		tx, err := NewSaleTransaction(buildCart(t), PaymentMethodCard, cashierID)
		require.NoError(t, err)
		assert.Nil(t, tx.CustomerID)
		assert.Equal(t, WalkInCustomerName, tx.CustomerName)
	})

	t.Run("keeps customer name snapshot", func(t *testing.T) {
		cart := buildCart(t)
		customerID := uuid.New()
		cart.AttachCustomer(customerID, "Amine B")

		tx, err := NewSaleTransaction(cart, PaymentMethodMobile, cashierID)
		require.NoError(t, err)
		require.NotNil(t, tx.CustomerID)
		assert.Equal(t, customerID, *tx.CustomerID)
		assert.Equal(t, "Amine B", tx.CustomerName)
	})

	t.Run("publishes SaleCompleted event", func(t *testing.T) {
		tx, err := NewSaleTransaction(buildCart(t), PaymentMethodCash, cashierID)
		require.NoError(t, err)

		events := tx.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSaleCompleted, events[0].EventType())
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewSaleTransaction(NewCart(testTaxRate), PaymentMethodCash, cashierID)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)

		_, err = NewSaleTransaction(nil, PaymentMethodCash, cashierID)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewSaleTransaction(buildCart(t), PaymentMethod("check"), cashierID)
		require.Error(t, err)
	})

	t.Run("rejects missing cashier", func(t *testing.T) {
		_, err := NewSaleTransaction(buildCart(t), PaymentMethodCash, uuid.Nil)
		require.Error(t, err)
	})
}

func TestSaleTransactionInRange(t *testing.T) {
	cart := NewCart(testTaxRate)
	require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-1", 100, 5), 1))
	tx, err := NewSaleTransaction(cart, PaymentMethodCash, uuid.New())
	require.NoError(t, err)

	created := tx.CreatedAt

	// Both bounds are inclusive.
	assert.True(t, tx.InRange(created, created))
	assert.True(t, tx.InRange(created.Add(-time.Hour), created.Add(time.Hour)))
	assert.False(t, tx.InRange(created.Add(time.Minute), created.Add(time.Hour)))
	assert.False(t, tx.InRange(created.Add(-time.Hour), created.Add(-time.Minute)))
}
