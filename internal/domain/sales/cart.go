package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartLine is one product entry in a cart. UnitPrice and stock bounds are
// snapshots taken from the product at the time the line was added or last
// validated; they are not live.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	stock     int             // stock snapshot used for the optimistic bound check
}

// LineTotal returns unit price * quantity for this line
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the in-memory state of one in-progress sale. It is owned by a
// single cashier session and must not be shared between goroutines; the
// engine performs no I/O and never touches the record store.
//
// Stock checks against cart lines use the product snapshot captured when
// the line was added. They are optimistic: another checkout may consume
// stock between validation and commit, which the checkout processor
// resolves via the clamped decrement.
type Cart struct {
	lines        []CartLine
	customerID   *uuid.UUID
	customerName string
	taxRate      decimal.Decimal // fraction, e.g. 0.19
}

// NewCart creates an empty cart using the injected tax rate fraction
func NewCart(taxRate decimal.Decimal) *Cart {
	return &Cart{
		lines:   make([]CartLine, 0),
		taxRate: taxRate,
	}
}

// AddItem adds qty units of the product, merging with an existing line.
// It fails with OUT_OF_STOCK when the product has no stock at all and with
// INSUFFICIENT_STOCK when the combined quantity would exceed the snapshot.
func (c *Cart) AddItem(product *catalog.Product, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if product.IsOutOfStock() {
		return shared.ErrOutOfStock
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			if c.lines[i].Quantity+qty > product.Stock {
				return shared.ErrInsufficientStock
			}
			c.lines[i].Quantity += qty
			c.lines[i].stock = product.Stock
			return nil
		}
	}

	if qty > product.Stock {
		return shared.ErrInsufficientStock
	}

	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		UnitPrice: product.Price,
		Quantity:  qty,
		stock:     product.Stock,
	})

	return nil
}

// SetQuantity replaces a line's quantity. A quantity of zero or less
// removes the line. The bound check uses the last-synced stock snapshot.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) error {
	if qty <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if qty > c.lines[i].stock {
				return shared.ErrInsufficientStock
			}
			c.lines[i].Quantity = qty
			return nil
		}
	}

	return shared.ErrNotFound
}

// RemoveItem removes a line; absent lines are ignored
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear resets the cart and detaches any customer reference
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
	c.customerID = nil
	c.customerName = ""
}

// AttachCustomer records the customer this sale is for. The name is kept
// as a denormalized snapshot for the transaction record.
func (c *Cart) AttachCustomer(id uuid.UUID, name string) {
	c.customerID = &id
	c.customerName = name
}

// DetachCustomer removes the customer reference
func (c *Cart) DetachCustomer() {
	c.customerID = nil
	c.customerName = ""
}

// CustomerID returns the attached customer id, or nil for a walk-in sale
func (c *Cart) CustomerID() *uuid.UUID {
	return c.customerID
}

// CustomerName returns the attached customer name snapshot
func (c *Cart) CustomerName() string {
	return c.customerName
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the total number of units across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// TaxRate returns the tax rate fraction this cart was created with
func (c *Cart) TaxRate() decimal.Decimal {
	return c.taxRate
}

// Subtotal returns the sum of all line totals
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

// Tax returns subtotal * tax rate
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(c.taxRate)
}

// Total returns subtotal + tax
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax())
}
