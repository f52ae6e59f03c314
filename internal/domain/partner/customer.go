package partner

import (
	"regexp"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer represents a customer of the store.
// It is the aggregate root for customer-related operations.
// TotalPurchases/TotalOrders are derived from the transaction ledger at
// read time and are intentionally not stored here.
type Customer struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Email         string          `gorm:"type:varchar(200);index"`
	Phone         string          `gorm:"type:varchar(50);index"`
	Address       string          `gorm:"type:text"`
	City          string          `gorm:"type:varchar(100)"`
	PostalCode    string          `gorm:"type:varchar(20)"`
	LoyaltyPoints int             `gorm:"not null;default:0"`
	CreditLimit   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, email, phone string) (*Customer, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		CreditLimit:       decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, email, phone string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetAddress sets the customer's address fields
func (c *Customer) SetAddress(address, city, postalCode string) {
	c.Address = address
	c.City = city
	c.PostalCode = postalCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetCreditLimit sets the maximum credit extended to this customer
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AddLoyaltyPoints credits loyalty points to the customer
func (c *Customer) AddLoyaltyPoints(points int) error {
	if points <= 0 {
		return shared.NewDomainError("INVALID_POINTS", "Points must be positive")
	}

	c.LoyaltyPoints += points
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// RedeemLoyaltyPoints debits loyalty points, never going below zero
func (c *Customer) RedeemLoyaltyPoints(points int) error {
	if points <= 0 {
		return shared.NewDomainError("INVALID_POINTS", "Points must be positive")
	}
	if points > c.LoyaltyPoints {
		return shared.NewDomainError("INSUFFICIENT_POINTS", "Not enough loyalty points")
	}

	c.LoyaltyPoints -= points
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// validatePartnerName validates a customer or supplier name
func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

// validateEmail validates an optional email address
func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	return nil
}
