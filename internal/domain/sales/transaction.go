package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile:
		return true
	}
	return false
}

// SaleLine is a line item snapshot inside a completed sale
type SaleLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	SKU           string          `gorm:"type:varchar(50);not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_transaction_lines"
}

// SaleTransaction is one completed sale in the append-only ledger.
// It is created exactly once by checkout and never mutated afterwards;
// there are deliberately no mutator methods on this type.
//
// CustomerID is a weak reference: deleting the customer leaves the
// transaction (and its denormalized CustomerName snapshot) untouched.
type SaleTransaction struct {
	shared.BaseAggregateRoot
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName  string          `gorm:"type:varchar(200);not null;default:''"`
	Lines         []SaleLine      `gorm:"foreignKey:TransactionID;references:ID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	CashierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (SaleTransaction) TableName() string {
	return "sale_transactions"
}

// WalkInCustomerName is used when no customer is attached to a sale
const WalkInCustomerName = "Walk-in Customer"

// NewSaleTransaction snapshots a non-empty cart into an immutable
// transaction. Totals are computed from the cart with the same formulas
// the cart itself exposes.
func NewSaleTransaction(cart *Cart, paymentMethod PaymentMethod, cashierID uuid.UUID) (*SaleTransaction, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash, card or mobile")
	}
	if cashierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASHIER", "Cashier ID cannot be empty")
	}

	tx := &SaleTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        cart.CustomerID(),
		CustomerName:      cart.CustomerName(),
		Subtotal:          cart.Subtotal(),
		Tax:               cart.Tax(),
		Total:             cart.Total(),
		PaymentMethod:     paymentMethod,
		CashierID:         cashierID,
	}
	if tx.CustomerName == "" {
		tx.CustomerName = WalkInCustomerName
	}

	for _, line := range cart.Lines() {
		tx.Lines = append(tx.Lines, SaleLine{
			ID:            uuid.New(),
			TransactionID: tx.ID,
			ProductID:     line.ProductID,
			ProductName:   line.Name,
			SKU:           line.SKU,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			LineTotal:     line.LineTotal(),
		})
	}

	tx.AddDomainEvent(NewSaleCompletedEvent(tx))

	return tx, nil
}

// InRange reports whether the transaction was created inside the closed
// interval [start, end]; both bounds are inclusive.
func (t *SaleTransaction) InRange(start, end time.Time) bool {
	return !t.CreatedAt.Before(start) && !t.CreatedAt.After(end)
}

// TotalQuantity returns the number of units sold in this transaction
func (t *SaleTransaction) TotalQuantity() int {
	quantity := 0
	for _, line := range t.Lines {
		quantity += line.Quantity
	}
	return quantity
}
