package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
)

// maxSaveAttempts bounds the reconcile retry loop. Two concurrent writers
// is the common case at a single register; three attempts is plenty.
const maxSaveAttempts = 3

// InventoryService reconciles stock counts and keeps the adjustment
// audit trail.
type InventoryService struct {
	productRepo    catalog.ProductRepository
	adjustmentRepo inventory.StockAdjustmentRepository
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	productRepo catalog.ProductRepository,
	adjustmentRepo inventory.StockAdjustmentRepository,
) *InventoryService {
	return &InventoryService{
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AdjustStock applies a manual stock adjustment and records it in the
// audit trail. The count is written with a version check; on a conflict
// the product is reloaded and the adjustment recomputed, so two cashiers
// adjusting the same product cannot lose each other's update.
//
// Subtract clamps at zero; the audit record keeps the delta that was
// actually applied, not the one that was requested.
func (s *InventoryService) AdjustStock(ctx context.Context, actorID uuid.UUID, req AdjustStockRequest) (*AdjustStockResult, error) {
	if !req.Direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction must be add, subtract or set")
	}
	if !req.Reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown adjustment reason")
	}

	var (
		product  *catalog.Product
		oldStock int
		delta    int
	)

	for attempt := 0; ; attempt++ {
		var err error
		product, err = s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		oldStock = product.Stock
		delta, err = applyDirection(product, req.Direction, req.Quantity)
		if err != nil {
			return nil, err
		}

		err = s.productRepo.SaveWithVersion(ctx, product)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt == maxSaveAttempts-1 {
			return nil, err
		}
	}

	s.publishDomainEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	adjustment, err := inventory.NewStockAdjustment(product.ID, product.Name, delta, req.Reason, actorID, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, adjustment.GetDomainEvents())
	adjustment.ClearDomainEvents()

	return &AdjustStockResult{
		ProductID:    product.ID,
		ProductName:  product.Name,
		OldStock:     oldStock,
		NewStock:     product.Stock,
		AppliedDelta: delta,
		Level:        inventory.Classify(product),
		AdjustmentID: adjustment.ID,
	}, nil
}

// Status classifies one product's stock position
func (s *InventoryService) Status(ctx context.Context, productID uuid.UUID) (*StockStatusResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &StockStatusResponse{
		ProductID: product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		Stock:     product.Stock,
		MinStock:  product.MinStock,
		Level:     inventory.Classify(product),
	}, nil
}

// ListLowStock returns products at or below the flat store-wide threshold,
// out-of-stock products included
func (s *InventoryService) ListLowStock(ctx context.Context, threshold int) ([]StockStatusResponse, error) {
	if threshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}

	products, err := s.productRepo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	responses := make([]StockStatusResponse, len(products))
	for i := range products {
		responses[i] = StockStatusResponse{
			ProductID: products[i].ID,
			SKU:       products[i].SKU,
			Name:      products[i].Name,
			Stock:     products[i].Stock,
			MinStock:  products[i].MinStock,
			Level:     inventory.Classify(&products[i]),
		}
	}
	return responses, nil
}

// History returns the adjustment audit trail, optionally scoped to one
// product, newest first
func (s *InventoryService) History(ctx context.Context, filter AdjustmentListFilter) ([]AdjustmentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		adjustments []inventory.StockAdjustment
		err         error
	)
	if filter.ProductID != nil {
		adjustments, err = s.adjustmentRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	} else {
		adjustments, err = s.adjustmentRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.adjustmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAdjustmentResponses(adjustments), total, nil
}

func applyDirection(product *catalog.Product, direction inventory.AdjustmentDirection, quantity int) (int, error) {
	switch direction {
	case inventory.DirectionAdd:
		if err := product.IncreaseStock(quantity); err != nil {
			return 0, err
		}
		return quantity, nil
	case inventory.DirectionSubtract:
		return product.DecreaseStock(quantity)
	case inventory.DirectionSet:
		old := product.Stock
		if err := product.SetStock(quantity); err != nil {
			return 0, err
		}
		return product.Stock - old, nil
	}
	return 0, shared.NewDomainError("INVALID_DIRECTION", "Direction must be add, subtract or set")
}

func (s *InventoryService) publishDomainEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
