package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU      string           `json:"sku" binding:"required,min=1,max=50"`
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Barcode  string           `json:"barcode" binding:"max=50"`
	Category string           `json:"category" binding:"max=100"`
	Price    decimal.Decimal  `json:"price" binding:"required"`
	Cost     *decimal.Decimal `json:"cost"`
	Stock    *int             `json:"stock"`
	MinStock *int             `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Barcode  *string          `json:"barcode" binding:"omitempty,max=50"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	MinStock *int             `json:"min_stock"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"min_stock"`
	OutOfStock bool            `json:"out_of_stock"`
	LowStock   bool            `json:"low_stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		Barcode:    p.Barcode,
		Category:   p.Category,
		Price:      p.Price,
		Cost:       p.Cost,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		OutOfStock: p.IsOutOfStock(),
		LowStock:   p.IsLowStock(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
