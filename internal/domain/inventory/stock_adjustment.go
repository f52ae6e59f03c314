package inventory

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// AdjustmentDirection tells the reconciler how to interpret the quantity
type AdjustmentDirection string

const (
	DirectionAdd      AdjustmentDirection = "add"
	DirectionSubtract AdjustmentDirection = "subtract"
	DirectionSet      AdjustmentDirection = "set"
)

// IsValid checks if the direction is supported
func (d AdjustmentDirection) IsValid() bool {
	switch d {
	case DirectionAdd, DirectionSubtract, DirectionSet:
		return true
	}
	return false
}

// AdjustmentReason categorizes why stock changed
type AdjustmentReason string

const (
	ReasonRestock    AdjustmentReason = "restock"
	ReasonDamaged    AdjustmentReason = "damaged"
	ReasonExpired    AdjustmentReason = "expired"
	ReasonTheft      AdjustmentReason = "theft"
	ReasonReturn     AdjustmentReason = "return"
	ReasonCorrection AdjustmentReason = "correction"
	ReasonSale       AdjustmentReason = "sale"
	ReasonOther      AdjustmentReason = "other"
)

// IsValid checks if the reason is one of the known categories
func (r AdjustmentReason) IsValid() bool {
	switch r {
	case ReasonRestock, ReasonDamaged, ReasonExpired, ReasonTheft,
		ReasonReturn, ReasonCorrection, ReasonSale, ReasonOther:
		return true
	}
	return false
}

// StockAdjustment is one audit record in the append-only adjustment trail.
// Exactly one record is written per stock-changing operation, including the
// decrements driven by checkout. Records are never edited or deleted.
type StockAdjustment struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductName string           `gorm:"type:varchar(200);not null"`
	Delta       int              `gorm:"not null"` // Signed change actually applied (new - old)
	Reason      AdjustmentReason `gorm:"type:varchar(20);not null"`
	Notes       string           `gorm:"type:text"`
	ActorID     uuid.UUID        `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// NewStockAdjustment creates an audit record for an applied stock change.
// Delta is the change that was actually applied after clamping, so a
// subtract that hit the zero floor records the smaller magnitude.
func NewStockAdjustment(productID uuid.UUID, productName string, delta int, reason AdjustmentReason, actorID uuid.UUID, notes string) (*StockAdjustment, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	adjustment := &StockAdjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ProductName:       productName,
		Delta:             delta,
		Reason:            reason,
		Notes:             notes,
		ActorID:           actorID,
	}

	adjustment.AddDomainEvent(NewStockAdjustedEvent(adjustment))

	return adjustment, nil
}

// IsInbound returns true when the adjustment increased stock
func (a *StockAdjustment) IsInbound() bool {
	return a.Delta > 0
}
