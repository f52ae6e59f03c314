package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSaleTransaction = "SaleTransaction"

// Event type constants
const EventTypeSaleCompleted = "SaleCompleted"

// SaleCompletedEvent is published when a checkout persists a transaction
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CashierID     uuid.UUID       `json:"cashier_id"`
	LineCount     int             `json:"line_count"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(tx *SaleTransaction) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSaleTransaction, tx.ID),
		TransactionID:   tx.ID,
		CustomerID:      tx.CustomerID,
		Total:           tx.Total,
		PaymentMethod:   tx.PaymentMethod,
		CashierID:       tx.CashierID,
		LineCount:       len(tx.Lines),
	}
}
