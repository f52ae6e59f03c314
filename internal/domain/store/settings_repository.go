package store

import "context"

// SettingsRepository persists the single store profile row.
type SettingsRepository interface {
	// Get returns the settings, creating them from DefaultSettings
	// when none exist yet.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}
