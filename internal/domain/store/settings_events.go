package store

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

const EventTypeSettingsUpdated = "SettingsUpdated"

const AggregateTypeSettings = "Settings"

// SettingsUpdatedEvent is emitted when the store profile changes.
// Pricing services listen for it to pick up new tax rates.
type SettingsUpdatedEvent struct {
	shared.BaseDomainEvent
	StoreName         string
	TaxRatePercent    string
	LowStockThreshold int
}

// NewSettingsUpdatedEvent creates a SettingsUpdatedEvent
func NewSettingsUpdatedEvent(settings *Settings) *SettingsUpdatedEvent {
	return &SettingsUpdatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeSettingsUpdated, AggregateTypeSettings, settings.ID),
		StoreName:         settings.StoreName,
		TaxRatePercent:    settings.TaxRatePercent.String(),
		LowStockThreshold: settings.LowStockThreshold,
	}
}
