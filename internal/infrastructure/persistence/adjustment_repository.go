package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
)

// GormAdjustmentRepository implements StockAdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// Create appends an adjustment record
func (r *GormAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// FindByID finds an adjustment by its ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockAdjustment, error) {
	var adjustment inventory.StockAdjustment
	if err := r.db.WithContext(ctx).First(&adjustment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}

// FindByProduct finds all adjustments for one product, newest first
func (r *GormAdjustmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	var adjustments []inventory.StockAdjustment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockAdjustment{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// FindAll finds all adjustments matching the filter
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	var adjustments []inventory.StockAdjustment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockAdjustment{}), filter)

	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// FindByDateRange finds adjustments recorded within [start, end]
func (r *GormAdjustmentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]inventory.StockAdjustment, error) {
	var adjustments []inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Count counts adjustments matching the filter
func (r *GormAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockAdjustment{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAdjustmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := validateSortField(filter.OrderBy, adjustmentSortFields, "created_at")
	return query.Order(field + " " + validateSortOrder(filter.OrderDir))
}
