package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// TransactionRepository defines the interface for the sale ledger.
// The ledger is append-only: there is no update operation, and Delete is
// deliberately absent from this interface.
type TransactionRepository interface {
	// Create appends a new transaction (with its lines) to the ledger
	Create(ctx context.Context, tx *SaleTransaction) error

	// FindByID finds a transaction by its ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*SaleTransaction, error)

	// FindAll finds all transactions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SaleTransaction, error)

	// FindByDateRange finds transactions created within [start, end],
	// both bounds inclusive
	FindByDateRange(ctx context.Context, start, end time.Time) ([]SaleTransaction, error)

	// FindByCustomer finds all transactions referencing the customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]SaleTransaction, error)

	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
