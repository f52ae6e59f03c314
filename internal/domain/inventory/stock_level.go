package inventory

import "github.com/retailpos/backend/internal/domain/catalog"

// StockLevel classifies how healthy a product's stock is
type StockLevel string

const (
	StockLevelOut StockLevel = "out_of_stock" // stock == 0
	StockLevelLow StockLevel = "low_stock"    // 0 < stock <= minStock
	StockLevelIn  StockLevel = "in_stock"     // stock > minStock
)

// Classify maps a product to exactly one stock level. It is a pure
// function over the product's own reorder threshold; the flat fleet-wide
// threshold used by the dashboard alert feed is a separate query
// (ProductRepository.FindLowStock).
func Classify(product *catalog.Product) StockLevel {
	switch {
	case product.Stock == 0:
		return StockLevelOut
	case product.Stock <= product.MinStock:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}
