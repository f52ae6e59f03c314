package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// StockAdjustmentRepository defines the interface for the adjustment audit
// trail. Records are append-only; there is no update or delete.
type StockAdjustmentRepository interface {
	// Create appends an adjustment record
	Create(ctx context.Context, adjustment *StockAdjustment) error

	// FindByID finds an adjustment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockAdjustment, error)

	// FindByProduct finds all adjustments for one product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockAdjustment, error)

	// FindAll finds all adjustments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockAdjustment, error)

	// FindByDateRange finds adjustments recorded within [start, end]
	FindByDateRange(ctx context.Context, start, end time.Time) ([]StockAdjustment, error)

	// Count counts adjustments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
