package inventory

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockAdjustment = "StockAdjustment"

// Event type constants
const EventTypeStockAdjusted = "StockAdjusted"

// StockAdjustedEvent is published when a stock adjustment is recorded
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID        `json:"adjustment_id"`
	ProductID    uuid.UUID        `json:"product_id"`
	ProductName  string           `json:"product_name"`
	Delta        int              `json:"delta"`
	Reason       AdjustmentReason `json:"reason"`
	ActorID      uuid.UUID        `json:"actor_id"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(adjustment *StockAdjustment) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeStockAdjustment, adjustment.ID),
		AdjustmentID:    adjustment.ID,
		ProductID:       adjustment.ProductID,
		ProductName:     adjustment.ProductName,
		Delta:           adjustment.Delta,
		Reason:          adjustment.Reason,
		ActorID:         adjustment.ActorID,
	}
}
