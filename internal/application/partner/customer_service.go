package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer business operations.
// Purchase totals come from the sale ledger at read time, so a customer
// record never drifts out of sync with the transactions that mention it.
type CustomerService struct {
	customerRepo    partner.CustomerRepository
	transactionRepo sales.TransactionRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, transactionRepo sales.TransactionRepository) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if req.Address != "" || req.City != "" || req.PostalCode != "" {
		customer.SetAddress(req.Address, req.City, req.PostalCode)
	}
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer, decimal.Zero, 0)
	return &response, nil
}

// GetByID retrieves a customer with ledger-derived purchase totals
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	totalPurchases, totalOrders, err := s.purchaseTotals(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer, totalPurchases, totalOrders)
	return &response, nil
}

// List retrieves customers with filtering and pagination. Purchase totals
// are derived per row.
func (s *CustomerService) List(ctx context.Context, filter PartnerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var (
		customers []partner.Customer
		err       error
	)
	if filter.Search != "" {
		customers, err = s.customerRepo.Search(ctx, filter.Search, domainFilter)
	} else {
		customers, err = s.customerRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		totalPurchases, totalOrders, err := s.purchaseTotals(ctx, customers[i].ID)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = ToCustomerResponse(&customers[i], totalPurchases, totalOrders)
	}

	return responses, total, nil
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Email != nil || req.Phone != nil {
		name, email, phone := customer.Name, customer.Email, customer.Phone
		if req.Name != nil {
			name = *req.Name
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := customer.Update(name, email, phone); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.City != nil || req.PostalCode != nil {
		address, city, postalCode := customer.Address, customer.City, customer.PostalCode
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		customer.SetAddress(address, city, postalCode)
	}

	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	totalPurchases, totalOrders, err := s.purchaseTotals(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer, totalPurchases, totalOrders)
	return &response, nil
}

// Delete removes a customer. The sale ledger keeps its denormalized
// customer name snapshots.
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, customerID)
}

// PurchaseHistory returns the customer's transactions, newest first
func (s *CustomerService) PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]sales.SaleTransaction, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindByCustomer(ctx, customerID)
}

func (s *CustomerService) purchaseTotals(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, int, error) {
	transactions, err := s.transactionRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, 0, err
	}

	total := decimal.Zero
	for i := range transactions {
		total = total.Add(transactions[i].Total)
	}
	return total, len(transactions), nil
}

func buildFilter(filter PartnerListFilter) shared.Filter {
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
