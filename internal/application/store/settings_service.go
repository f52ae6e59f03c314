package store

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/store"
)

// SettingsService manages the single store settings record
type SettingsService struct {
	settingsRepo   store.SettingsRepository
	eventPublisher shared.EventPublisher
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo store.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SettingsService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Get returns the current settings, seeding defaults on first use
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return ToSettingsResponse(settings), nil
}

// Update replaces the store settings
func (s *SettingsService) Update(ctx context.Context, req *UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	err = settings.Update(
		req.StoreName,
		req.Address,
		req.Phone,
		valueobject.Currency(req.Currency),
		req.TaxRatePercent,
		req.LowStockThreshold,
		req.ReceiptFooter,
	)
	if err != nil {
		return nil, err
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range settings.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		settings.ClearDomainEvents()
	}

	return ToSettingsResponse(settings), nil
}
