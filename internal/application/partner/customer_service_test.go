package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, term string, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, term, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *sales.SaleTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SaleTransaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]sales.SaleTransaction, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]sales.SaleTransaction, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newStoredCustomer(t *testing.T, name string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(name, "", "")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func ledgerEntry(total int64) sales.SaleTransaction {
	return sales.SaleTransaction{Total: decimal.NewFromInt(total)}
}

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer with address", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		txRepo := new(MockTransactionRepository)
		service := NewCustomerService(customerRepo, txRepo)

		customerRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Name:    "Amine B",
			Email:   "amine@example.com",
			Phone:   "+213 555 0101",
			Address: "5 Rue de la Liberte",
			City:    "Algiers",
		})
		require.NoError(t, err)

		assert.Equal(t, "Amine B", resp.Name)
		assert.Equal(t, "Algiers", resp.City)
		assert.True(t, resp.TotalPurchases.IsZero())
		assert.Equal(t, 0, resp.TotalOrders)
		customerRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		service := NewCustomerService(new(MockCustomerRepository), new(MockTransactionRepository))
		_, err := service.Create(ctx, CreateCustomerRequest{Name: "Amine B", Email: "not-an-email"})
		require.Error(t, err)
	})
}

func TestCustomerServiceGetByID(t *testing.T) {
	ctx := context.Background()
	customerRepo := new(MockCustomerRepository)
	txRepo := new(MockTransactionRepository)
	service := NewCustomerService(customerRepo, txRepo)

	customer := newStoredCustomer(t, "Amine B")
	customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	txRepo.On("FindByCustomer", ctx, customer.ID).Return([]sales.SaleTransaction{
		ledgerEntry(2500), ledgerEntry(1200),
	}, nil)

	resp, err := service.GetByID(ctx, customer.ID)
	require.NoError(t, err)

	assert.True(t, resp.TotalPurchases.Equal(decimal.NewFromInt(3700)))
	assert.Equal(t, 2, resp.TotalOrders)
}

func TestCustomerServiceDelete(t *testing.T) {
	ctx := context.Background()
	customerRepo := new(MockCustomerRepository)
	service := NewCustomerService(customerRepo, new(MockTransactionRepository))

	customer := newStoredCustomer(t, "Amine B")
	customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	customerRepo.On("Delete", ctx, customer.ID).Return(nil)

	require.NoError(t, service.Delete(ctx, customer.ID))
	customerRepo.AssertExpectations(t)
}

func TestSupplierServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate then activate", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		service := NewSupplierService(supplierRepo)

		supplier, err := partner.NewSupplier("Grossiste Nord", "K. Meziane")
		require.NoError(t, err)
		supplier.ClearDomainEvents()

		supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		supplierRepo.On("Save", ctx, supplier).Return(nil)

		resp, err := service.Deactivate(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, string(partner.SupplierStatusInactive), resp.Status)

		resp, err = service.Activate(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, string(partner.SupplierStatusActive), resp.Status)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		service := NewSupplierService(supplierRepo)

		id := uuid.New()
		supplierRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Activate(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByStatus(ctx context.Context, status partner.SupplierStatus, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Search(ctx context.Context, term string, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, term, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
