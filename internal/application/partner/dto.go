package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Email      string           `json:"email" binding:"omitempty,max=200"`
	Phone      string           `json:"phone" binding:"max=50"`
	Address    string           `json:"address"`
	City       string           `json:"city" binding:"max=100"`
	PostalCode string           `json:"postal_code" binding:"max=20"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes      string           `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email       *string          `json:"email" binding:"omitempty,max=200"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Address     *string          `json:"address"`
	City        *string          `json:"city" binding:"omitempty,max=100"`
	PostalCode  *string          `json:"postal_code" binding:"omitempty,max=20"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       *string          `json:"notes"`
}

// CustomerResponse represents a customer in API responses.
// TotalPurchases and TotalOrders are derived from the transaction ledger.
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	PostalCode     string          `json:"postal_code"`
	LoyaltyPoints  int             `json:"loyalty_points"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	Notes          string          `json:"notes"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalOrders    int             `json:"total_orders"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address"`
	City          string `json:"city" binding:"max=100"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,max=200"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	Notes         *string `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PartnerListFilter represents filter options for customer/supplier lists
type PartnerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer, with ledger-derived totals
func ToCustomerResponse(c *partner.Customer, totalPurchases decimal.Decimal, totalOrders int) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		PostalCode:     c.PostalCode,
		LoyaltyPoints:  c.LoyaltyPoints,
		CreditLimit:    c.CreditLimit,
		Notes:          c.Notes,
		TotalPurchases: totalPurchases,
		TotalOrders:    totalOrders,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToSupplierResponse converts a domain Supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		City:          s.City,
		Status:        string(s.Status),
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain Suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}
