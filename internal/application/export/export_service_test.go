package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/store"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, threshold int) ([]catalog.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, term string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, term, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithVersion(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, term string, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, term, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByStatus(ctx context.Context, status partner.SupplierStatus, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Search(ctx context.Context, term string, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, term, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockTransactionRepository is a mock implementation of sales.TransactionRepository
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]sales.SaleTransaction, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]sales.SaleTransaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SaleTransaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdjustmentRepository is a mock implementation of inventory.StockAdjustmentRepository
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockAdjustment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]inventory.StockAdjustment, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepository is a mock implementation of store.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*store.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *store.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type exportFixture struct {
	productRepo     *MockProductRepository
	customerRepo    *MockCustomerRepository
	supplierRepo    *MockSupplierRepository
	transactionRepo *MockTransactionRepository
	adjustmentRepo  *MockAdjustmentRepository
	settingsRepo    *MockSettingsRepository
	svc             *ExportService
}

func newExportFixture() *exportFixture {
	f := &exportFixture{
		productRepo:     new(MockProductRepository),
		customerRepo:    new(MockCustomerRepository),
		supplierRepo:    new(MockSupplierRepository),
		transactionRepo: new(MockTransactionRepository),
		adjustmentRepo:  new(MockAdjustmentRepository),
		settingsRepo:    new(MockSettingsRepository),
	}
	f.svc = NewExportService(
		f.productRepo,
		f.customerRepo,
		f.supplierRepo,
		f.transactionRepo,
		f.adjustmentRepo,
		f.settingsRepo,
	)
	return f
}

func testProduct(t *testing.T, sku, name string, stock int) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, name, "grocery", valueobject.NewMoneyDZD(decimal.NewFromInt(100)))
	require.NoError(t, err)
	require.NoError(t, p.SetStock(stock))
	p.ClearDomainEvents()
	return *p
}

func TestWriteBackup(t *testing.T) {
	f := newExportFixture()
	f.settingsRepo.On("Get", mock.Anything).Return(store.DefaultSettings(), nil)
	f.productRepo.On("FindAll", mock.Anything, mock.Anything).
		Return([]catalog.Product{testProduct(t, "SKU-1", "Milk", 8)}, nil)
	f.customerRepo.On("FindAll", mock.Anything, mock.Anything).Return([]partner.Customer{}, nil)
	f.supplierRepo.On("FindAll", mock.Anything, mock.Anything).Return([]partner.Supplier{}, nil)
	f.transactionRepo.On("FindAll", mock.Anything, mock.Anything).Return([]sales.SaleTransaction{}, nil)
	f.adjustmentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]inventory.StockAdjustment{}, nil)

	var buf bytes.Buffer
	err := f.svc.WriteBackup(context.Background(), &buf)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "settings")
	assert.Contains(t, decoded, "products")
	assert.Contains(t, decoded, "transactions")
	assert.Contains(t, buf.String(), `"format_version": 1`)
	assert.Contains(t, buf.String(), "SKU-1")
}

func TestWriteSalesCSV(t *testing.T) {
	f := newExportFixture()

	cart := sales.NewCart(decimal.NewFromFloat(0.19))
	p := testProduct(t, "SKU-1", "Milk", 10)
	require.NoError(t, cart.AddItem(&p, 2))
	tx, err := sales.NewSaleTransaction(cart, sales.PaymentMethodCash, uuid.New())
	require.NoError(t, err)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	f.transactionRepo.On("FindByDateRange", mock.Anything, from, to).
		Return([]sales.SaleTransaction{*tx}, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.WriteSalesCSV(context.Background(), &buf, from, to))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // header + one sale line
	assert.Contains(t, lines[0], "transaction_id")
	assert.Contains(t, lines[1], "SKU-1")
	assert.Contains(t, lines[1], "200.00")
}

func TestWriteSalesCSV_InvertedRange(t *testing.T) {
	f := newExportFixture()

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	err := f.svc.WriteSalesCSV(context.Background(), &buf, from, to)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	f.transactionRepo.AssertNotCalled(t, "FindByDateRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestWriteInventoryCSV(t *testing.T) {
	f := newExportFixture()

	inStock := testProduct(t, "SKU-1", "Milk", 50)
	empty := testProduct(t, "SKU-2", "Beans", 0)
	f.productRepo.On("FindAll", mock.Anything, mock.Anything).
		Return([]catalog.Product{inStock, empty}, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.WriteInventoryCSV(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "in_stock")
	assert.Contains(t, out, "out_of_stock")
}

func TestCollectPages_DrainsAllPages(t *testing.T) {
	f := newExportFixture()

	fullPage := make([]partner.Customer, exportPageSize)
	lastPage := make([]partner.Customer, 3)
	f.customerRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 1
	})).Return(fullPage, nil)
	f.customerRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 2
	})).Return(lastPage, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.WriteCustomersCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1+exportPageSize+3)
}
