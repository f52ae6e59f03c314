package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// CheckoutItem is one requested cart line
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a checkout submitted from the terminal
type CheckoutRequest struct {
	Items         []CheckoutItem      `json:"items" binding:"required,dive"`
	CustomerID    *uuid.UUID          `json:"customer_id"`
	PaymentMethod sales.PaymentMethod `json:"payment_method" binding:"required"`
}

// LineFailure reports a stock decrement that could not be applied after
// the sale was already recorded
type LineFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Reason    string    `json:"reason"`
}

// CheckoutResult is the outcome of a completed checkout. StockFailures is
// non-empty when the sale was recorded but some counts could not be
// reconciled; those lines need a manual adjustment.
type CheckoutResult struct {
	TransactionID uuid.UUID           `json:"transaction_id"`
	CustomerName  string              `json:"customer_name"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod sales.PaymentMethod `json:"payment_method"`
	LineCount     int                 `json:"line_count"`
	StockFailures []LineFailure       `json:"stock_failures,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// SaleLineResponse is one line of a recorded sale
type SaleLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// TransactionResponse represents a recorded sale in API responses
type TransactionResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerID    *uuid.UUID          `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	Lines         []SaleLineResponse  `json:"lines"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod sales.PaymentMethod `json:"payment_method"`
	CashierID     uuid.UUID           `json:"cashier_id"`
	CreatedAt     time.Time           `json:"created_at"`
}

// TransactionListFilter represents filter options for the sale ledger
type TransactionListFilter struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToTransactionResponse converts a domain SaleTransaction
func ToTransactionResponse(t *sales.SaleTransaction) TransactionResponse {
	lines := make([]SaleLineResponse, len(t.Lines))
	for i, line := range t.Lines {
		lines[i] = SaleLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
	}
	return TransactionResponse{
		ID:            t.ID,
		CustomerID:    t.CustomerID,
		CustomerName:  t.CustomerName,
		Lines:         lines,
		Subtotal:      t.Subtotal,
		Tax:           t.Tax,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		CashierID:     t.CashierID,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of SaleTransactions
func ToTransactionResponses(transactions []sales.SaleTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
