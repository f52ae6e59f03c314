package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
)

// cacheKeyPrefix covers every report cache entry
const cacheKeyPrefix = "report:"

// LowStockAlertHandler logs an alert whenever a product drops to or
// below its reorder threshold.
type LowStockAlertHandler struct {
	logger *zap.Logger
}

// NewLowStockAlertHandler creates a new LowStockAlertHandler
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LowStockAlertHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductStockBelowMinimum}
}

// Handle logs the low-stock alert
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*catalog.ProductStockBelowMinimumEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("Product stock below minimum",
		zap.String("product_id", e.ProductID.String()),
		zap.String("sku", e.SKU),
		zap.String("name", e.Name),
		zap.Int("stock", e.Stock),
		zap.Int("min_stock", e.MinStock),
	)
	return nil
}

// CacheInvalidationHandler drops cached report aggregates whenever the
// underlying ledgers change, so stale figures never outlive their TTL
// unnecessarily.
type CacheInvalidationHandler struct {
	cache  Cache
	logger *zap.Logger
}

// NewCacheInvalidationHandler creates a new CacheInvalidationHandler
func NewCacheInvalidationHandler(cache Cache, logger *zap.Logger) *CacheInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *CacheInvalidationHandler) EventTypes() []string {
	return []string{
		sales.EventTypeSaleCompleted,
		inventory.EventTypeStockAdjusted,
	}
}

// Handle invalidates the report cache
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.cache == nil {
		return nil
	}
	h.cache.Invalidate(ctx, cacheKeyPrefix)
	h.logger.Debug("Report cache invalidated", zap.String("event_type", event.EventType()))
	return nil
}
