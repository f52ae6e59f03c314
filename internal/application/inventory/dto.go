package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
)

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	ProductID uuid.UUID                     `json:"product_id" binding:"required"`
	Direction inventory.AdjustmentDirection `json:"direction" binding:"required"`
	Quantity  int                           `json:"quantity" binding:"required,min=0"`
	Reason    inventory.AdjustmentReason    `json:"reason" binding:"required"`
	Notes     string                        `json:"notes"`
}

// AdjustStockResult reports what an adjustment actually did to the count
type AdjustStockResult struct {
	ProductID    uuid.UUID            `json:"product_id"`
	ProductName  string               `json:"product_name"`
	OldStock     int                  `json:"old_stock"`
	NewStock     int                  `json:"new_stock"`
	AppliedDelta int                  `json:"applied_delta"`
	Level        inventory.StockLevel `json:"level"`
	AdjustmentID uuid.UUID            `json:"adjustment_id"`
}

// StockStatusResponse classifies one product's stock position
type StockStatusResponse struct {
	ProductID uuid.UUID            `json:"product_id"`
	SKU       string               `json:"sku"`
	Name      string               `json:"name"`
	Stock     int                  `json:"stock"`
	MinStock  int                  `json:"min_stock"`
	Level     inventory.StockLevel `json:"level"`
}

// AdjustmentResponse represents an audit record in API responses
type AdjustmentResponse struct {
	ID          uuid.UUID                  `json:"id"`
	ProductID   uuid.UUID                  `json:"product_id"`
	ProductName string                     `json:"product_name"`
	Delta       int                        `json:"delta"`
	Reason      inventory.AdjustmentReason `json:"reason"`
	Notes       string                     `json:"notes"`
	ActorID     uuid.UUID                  `json:"actor_id"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// AdjustmentListFilter represents filter options for the audit trail
type AdjustmentListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToAdjustmentResponse converts a domain StockAdjustment
func ToAdjustmentResponse(a *inventory.StockAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		ProductName: a.ProductName,
		Delta:       a.Delta,
		Reason:      a.Reason,
		Notes:       a.Notes,
		ActorID:     a.ActorID,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAdjustmentResponses converts a slice of StockAdjustments
func ToAdjustmentResponses(adjustments []inventory.StockAdjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return responses
}
