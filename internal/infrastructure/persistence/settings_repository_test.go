package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/store"
)

func TestGormSettingsRepository_SeedsDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Store", settings.StoreName)
	assert.Equal(t, valueobject.DZD, settings.Currency)
	assert.Equal(t, 10, settings.LowStockThreshold)

	// Second read returns the same row, not a new one
	again, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&store.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormSettingsRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, settings.Update(
		"Corner Market", "12 Rue Didouche", "+213 555 00 11",
		valueobject.EUR, decimal.NewFromInt(20), 5, "Thank you!",
	))
	settings.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, settings))

	reloaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Market", reloaded.StoreName)
	assert.Equal(t, valueobject.EUR, reloaded.Currency)
	assert.True(t, reloaded.TaxRatePercent.Equal(decimal.NewFromInt(20)))
}
