package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Category, valueobject.NewMoneyDZD(req.Price))
	if err != nil {
		return nil, err
	}

	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}

	cost := decimal.Zero
	if req.Cost != nil {
		cost = *req.Cost
	}
	if !cost.IsZero() {
		if err := product.SetPrices(valueobject.NewMoneyDZD(req.Price), valueobject.NewMoneyDZD(cost)); err != nil {
			return nil, err
		}
	}

	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil && *req.Stock > 0 {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode retrieves a product by barcode, used by the scanner at
// the terminal
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case filter.Search != "":
		products, err = s.productRepo.Search(ctx, filter.Search, domainFilter)
	case filter.Category != "":
		products, err = s.productRepo.FindByCategory(ctx, filter.Category, domainFilter)
	default:
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product's details
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Category != nil {
		name := product.Name
		category := product.Category
		if req.Name != nil {
			name = *req.Name
		}
		if req.Category != nil {
			category = *req.Category
		}
		if err := product.Update(name, category); err != nil {
			return nil, err
		}
	}

	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.Cost != nil {
		price := product.Price
		cost := product.Cost
		if req.Price != nil {
			price = *req.Price
		}
		if req.Cost != nil {
			cost = *req.Cost
		}
		if err := product.SetPrices(valueobject.NewMoneyDZD(price), valueobject.NewMoneyDZD(cost)); err != nil {
			return nil, err
		}
	}

	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog. Past sale lines keep their
// denormalized product snapshot.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func buildFilter(filter ProductListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
