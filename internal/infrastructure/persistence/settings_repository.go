package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/store"
)

// GormSettingsRepository implements SettingsRepository using GORM.
// There is exactly one settings row; Get seeds it on first use.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the settings row, creating the defaults when none exists
func (r *GormSettingsRepository) Get(ctx context.Context) (*store.Settings, error) {
	var settings store.Settings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := store.DefaultSettings()
	defaults.ClearDomainEvents()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save persists the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, settings *store.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
