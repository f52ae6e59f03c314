package catalog

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for catalog and stock operations; Stock is an
// integer count that is never allowed to go negative.
type Product struct {
	shared.BaseAggregateRoot
	SKU      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Barcode  string          `gorm:"type:varchar(50);index"`
	Category string          `gorm:"type:varchar(100);index"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Selling price
	Cost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Purchase cost
	Stock    int             `gorm:"not null;default:0"`
	MinStock int             `gorm:"not null;default:0"` // Reorder threshold
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, category string, price valueobject.Money) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Category:          category,
		Price:             price.Amount(),
		Cost:              decimal.Zero,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices sets the selling price and purchase cost
func (p *Product) SetPrices(price, cost valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price.Amount()
	p.Cost = cost.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if !oldPrice.Equal(p.Price) {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))
	}

	return nil
}

// SetMinStock sets the reorder threshold
func (p *Product) SetMinStock(minStock int) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IncreaseStock adds quantity to the stock count
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	old := p.Stock
	p.Stock += quantity
	p.touchStock(old)

	return nil
}

// DecreaseStock removes quantity from the stock count, clamping at zero.
// It returns the signed delta actually applied (new - old), which may be
// smaller in magnitude than -quantity when the clamp kicks in.
func (p *Product) DecreaseStock(quantity int) (int, error) {
	if quantity <= 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	old := p.Stock
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.touchStock(old)

	return p.Stock - old, nil
}

// SetStock replaces the stock count with an absolute value
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}

	old := p.Stock
	p.Stock = quantity
	p.touchStock(old)

	return nil
}

// touchStock stamps the update, bumps the version and emits stock events
func (p *Product) touchStock(oldStock int) {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))
	if p.Stock <= p.MinStock {
		p.AddDomainEvent(NewProductStockBelowMinimumEvent(p))
	}
}

// IsOutOfStock returns true if no stock remains
func (p *Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// IsLowStock returns true if stock is positive but at or below the reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.MinStock
}

// GetPriceMoney returns the selling price as Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyDZD(p.Price)
}

// GetCostMoney returns the purchase cost as Money value object
func (p *Product) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyDZD(p.Cost)
}

// StockValue returns price * stock, the retail value of the remaining stock
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// validateSKU validates the stock keeping unit code
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
