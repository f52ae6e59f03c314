package store

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "My Store", settings.StoreName)
	assert.Equal(t, valueobject.DZD, settings.Currency)
	assert.True(t, settings.TaxRatePercent.Equal(decimal.NewFromInt(19)))
	assert.Equal(t, 10, settings.LowStockThreshold)
	assert.True(t, settings.TaxRate().Equal(decimal.NewFromFloat(0.19)))
}

func TestSettingsUpdate(t *testing.T) {
	t.Run("valid update", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("Corner Shop", "12 Rue Didouche", "+213 555 0100",
			valueobject.EUR, decimal.NewFromInt(20), 5, "Thank you!")
		require.NoError(t, err)

		assert.Equal(t, "Corner Shop", settings.StoreName)
		assert.Equal(t, valueobject.EUR, settings.Currency)
		assert.Equal(t, 5, settings.LowStockThreshold)
		assert.True(t, settings.TaxRate().Equal(decimal.NewFromFloat(0.20)))
		assert.Len(t, settings.GetDomainEvents(), 1)
	})

	t.Run("zero tax rate is allowed", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("Corner Shop", "", "", valueobject.DZD, decimal.Zero, 10, "")
		require.NoError(t, err)
		assert.True(t, settings.TaxRate().IsZero())
	})

	t.Run("rejects empty store name", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("  ", "", "", valueobject.DZD, decimal.NewFromInt(19), 10, "")
		require.Error(t, err)
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("Corner Shop", "", "", valueobject.DZD, decimal.NewFromInt(-1), 10, "")
		require.Error(t, err)
	})

	t.Run("rejects tax rate above 100", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("Corner Shop", "", "", valueobject.DZD, decimal.NewFromInt(101), 10, "")
		require.Error(t, err)
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("Corner Shop", "", "", valueobject.DZD, decimal.NewFromInt(19), -1, "")
		require.Error(t, err)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		settings := DefaultSettings()
		err := settings.Update("Corner Shop", "", "", valueobject.Currency("XYZ"), decimal.NewFromInt(19), 10, "")
		require.Error(t, err)
	})
}
