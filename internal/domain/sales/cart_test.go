package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTaxRate = decimal.NewFromFloat(0.19)

func newTestProduct(t *testing.T, sku string, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Product "+sku, "", valueobject.NewMoneyDZD(decimal.NewFromInt(price)))
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, product.SetStock(stock))
	}
	return product
}

func TestCartAddItem(t *testing.T) {
	t.Run("adds a new line", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		product := newTestProduct(t, "SKU-1", 1000, 5)

		require.NoError(t, cart.AddItem(product, 1))
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, product.ID, lines[0].ProductID)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("merges quantity for existing line", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		product := newTestProduct(t, "SKU-1", 1000, 5)

		require.NoError(t, cart.AddItem(product, 2))
		require.NoError(t, cart.AddItem(product, 2))
		require.Len(t, cart.Lines(), 1)
		assert.Equal(t, 4, cart.Lines()[0].Quantity)
	})

	t.Run("rejects out of stock product", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		product := newTestProduct(t, "SKU-1", 1000, 0)

		err := cart.AddItem(product, 1)
		assert.ErrorIs(t, err, shared.ErrOutOfStock)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("rejects quantity above stock snapshot", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		product := newTestProduct(t, "SKU-1", 1000, 3)

		assert.ErrorIs(t, cart.AddItem(product, 4), shared.ErrInsufficientStock)

		require.NoError(t, cart.AddItem(product, 3))
		assert.ErrorIs(t, cart.AddItem(product, 1), shared.ErrInsufficientStock)
		assert.Equal(t, 3, cart.Lines()[0].Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		product := newTestProduct(t, "SKU-1", 1000, 3)
		require.Error(t, cart.AddItem(product, 0))
	})
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart(testTaxRate)
	product := newTestProduct(t, "SKU-1", 1000, 5)
	require.NoError(t, cart.AddItem(product, 1))

	t.Run("replaces the quantity", func(t *testing.T) {
		require.NoError(t, cart.SetQuantity(product.ID, 4))
		assert.Equal(t, 4, cart.Lines()[0].Quantity)
	})

	t.Run("rejects quantity above stock snapshot", func(t *testing.T) {
		assert.ErrorIs(t, cart.SetQuantity(product.ID, 6), shared.ErrInsufficientStock)
		assert.Equal(t, 4, cart.Lines()[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		require.NoError(t, cart.SetQuantity(product.ID, 0))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		assert.ErrorIs(t, cart.SetQuantity(uuid.New(), 1), shared.ErrNotFound)
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart(testTaxRate)
	product := newTestProduct(t, "SKU-1", 1000, 5)
	require.NoError(t, cart.AddItem(product, 2))
	cart.AttachCustomer(uuid.New(), "Amine B")

	t.Run("remove is idempotent", func(t *testing.T) {
		cart.RemoveItem(product.ID)
		cart.RemoveItem(product.ID)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("clear detaches customer", func(t *testing.T) {
		require.NoError(t, cart.AddItem(product, 1))
		cart.Clear()
		assert.True(t, cart.IsEmpty())
		assert.Nil(t, cart.CustomerID())
		assert.Empty(t, cart.CustomerName())
	})
}

func TestCartTotals(t *testing.T) {
	t.Run("empty cart yields all-zero totals", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		assert.True(t, cart.Subtotal().IsZero())
		assert.True(t, cart.Tax().IsZero())
		assert.True(t, cart.Total().IsZero())
	})

	t.Run("reference sale at 19 percent", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-1", 1000, 10), 2))
		require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-2", 500, 10), 1))

		assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(2500)), "subtotal = %s", cart.Subtotal())
		assert.True(t, cart.Tax().Equal(decimal.NewFromInt(475)), "tax = %s", cart.Tax())
		assert.True(t, cart.Total().Equal(decimal.NewFromInt(2975)), "total = %s", cart.Total())
	})

	t.Run("totals follow quantity edits", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		product := newTestProduct(t, "SKU-1", 250, 10)
		require.NoError(t, cart.AddItem(product, 1))
		require.NoError(t, cart.SetQuantity(product.ID, 4))

		assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(1000)))
		assert.True(t, cart.Total().Equal(cart.Subtotal().Add(cart.Tax())))
	})

	t.Run("item count sums units", func(t *testing.T) {
		cart := NewCart(testTaxRate)
		require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-1", 100, 10), 3))
		require.NoError(t, cart.AddItem(newTestProduct(t, "SKU-2", 100, 10), 2))
		assert.Equal(t, 5, cart.ItemCount())
	})
}
