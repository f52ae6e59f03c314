package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// The ledger is append-only so only Create and reads exist here.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends a new transaction with its lines in a single DB transaction
func (r *GormTransactionRepository) Create(ctx context.Context, tx *sales.SaleTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		return dbtx.Create(tx).Error
	})
}

// FindByID finds a transaction by its ID, lines included
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleTransaction, error) {
	var transaction sales.SaleTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindAll finds all transactions matching the filter, newest first
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SaleTransaction, error) {
	var transactions []sales.SaleTransaction
	query := r.db.WithContext(ctx).Model(&sales.SaleTransaction{}).Preload("Lines")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := validateSortField(filter.OrderBy, transactionSortFields, "created_at")
	if err := query.Order(field + " " + validateSortOrder(filter.OrderDir)).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// FindByDateRange finds transactions created within [start, end], inclusive
func (r *GormTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]sales.SaleTransaction, error) {
	var transactions []sales.SaleTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// FindByCustomer finds all transactions referencing the customer
func (r *GormTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]sales.SaleTransaction, error) {
	var transactions []sales.SaleTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.SaleTransaction{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
