package catalog

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	price := valueobject.NewMoneyDZD(decimal.NewFromInt(1000))

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Espresso Beans", "beverages", price)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Espresso Beans", product.Name)
		assert.Equal(t, "beverages", product.Category)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(1000)))
		assert.True(t, product.Cost.IsZero())
		assert.Equal(t, 0, product.Stock)
		assert.Equal(t, 0, product.MinStock)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts SKU to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Espresso Beans", "", price)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.SKU)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("SKU-002", "Espresso Beans", "", price)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Espresso Beans", "", price)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with invalid SKU characters", func(t *testing.T) {
		_, err := NewProduct("SKU@001", "Espresso Beans", "", price)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "", "", price)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		negative := valueobject.NewMoneyDZD(decimal.NewFromInt(-5))
		_, err := NewProduct("SKU-001", "Espresso Beans", "", negative)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProductStock(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		t.Helper()
		product, err := NewProduct("SKU-001", "Espresso Beans", "", valueobject.NewMoneyDZD(decimal.NewFromInt(500)))
		require.NoError(t, err)
		product.ClearDomainEvents()
		return product
	}

	t.Run("increase adds to stock and bumps version", func(t *testing.T) {
		product := newProduct(t)
		require.NoError(t, product.IncreaseStock(10))
		assert.Equal(t, 10, product.Stock)
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("increase rejects non-positive quantity", func(t *testing.T) {
		product := newProduct(t)
		require.Error(t, product.IncreaseStock(0))
		require.Error(t, product.IncreaseStock(-3))
	})

	t.Run("decrease clamps at zero", func(t *testing.T) {
		product := newProduct(t)
		require.NoError(t, product.IncreaseStock(3))

		applied, err := product.DecreaseStock(5)
		require.NoError(t, err)
		assert.Equal(t, 0, product.Stock)
		assert.Equal(t, -3, applied)
	})

	t.Run("decrease returns full delta when stock suffices", func(t *testing.T) {
		product := newProduct(t)
		require.NoError(t, product.IncreaseStock(10))

		applied, err := product.DecreaseStock(4)
		require.NoError(t, err)
		assert.Equal(t, 6, product.Stock)
		assert.Equal(t, -4, applied)
	})

	t.Run("set replaces stock", func(t *testing.T) {
		product := newProduct(t)
		require.NoError(t, product.SetStock(42))
		assert.Equal(t, 42, product.Stock)
		require.Error(t, product.SetStock(-1))
	})

	t.Run("emits below-minimum event when threshold crossed", func(t *testing.T) {
		product := newProduct(t)
		require.NoError(t, product.SetMinStock(5))
		require.NoError(t, product.IncreaseStock(10))
		product.ClearDomainEvents()

		_, err := product.DecreaseStock(6)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeProductStockChanged, events[0].EventType())
		assert.Equal(t, EventTypeProductStockBelowMinimum, events[1].EventType())
	})

	t.Run("low and out of stock flags", func(t *testing.T) {
		product := newProduct(t)
		require.NoError(t, product.SetMinStock(5))

		assert.True(t, product.IsOutOfStock())
		assert.False(t, product.IsLowStock())

		require.NoError(t, product.SetStock(3))
		assert.False(t, product.IsOutOfStock())
		assert.True(t, product.IsLowStock())

		require.NoError(t, product.SetStock(6))
		assert.False(t, product.IsLowStock())
	})
}

func TestProductPrices(t *testing.T) {
	product, err := NewProduct("SKU-001", "Espresso Beans", "", valueobject.NewMoneyDZD(decimal.NewFromInt(500)))
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("set prices updates both values", func(t *testing.T) {
		err := product.SetPrices(
			valueobject.NewMoneyDZD(decimal.NewFromInt(600)),
			valueobject.NewMoneyDZD(decimal.NewFromInt(350)),
		)
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(600)))
		assert.True(t, product.Cost.Equal(decimal.NewFromInt(350)))

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductPriceChanged, events[0].EventType())
	})

	t.Run("rejects negative values", func(t *testing.T) {
		negative := valueobject.NewMoneyDZD(decimal.NewFromInt(-1))
		positive := valueobject.NewMoneyDZD(decimal.NewFromInt(1))
		require.Error(t, product.SetPrices(negative, positive))
		require.Error(t, product.SetPrices(positive, negative))
	})

	t.Run("stock value is price times stock", func(t *testing.T) {
		require.NoError(t, product.SetStock(4))
		assert.True(t, product.StockValue().Equal(decimal.NewFromInt(2400)))
	})
}
