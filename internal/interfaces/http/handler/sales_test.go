package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
)

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

type salesFixture struct {
	productRepo     *MockProductRepository
	transactionRepo *MockTransactionRepository
	adjustmentRepo  *MockAdjustmentRepository
	customerRepo    *MockCustomerRepository
	settingsRepo    *MockSettingsRepository
	handler         *SalesHandler
}

func newSalesFixture() *salesFixture {
	f := &salesFixture{
		productRepo:     new(MockProductRepository),
		transactionRepo: new(MockTransactionRepository),
		adjustmentRepo:  new(MockAdjustmentRepository),
		customerRepo:    new(MockCustomerRepository),
		settingsRepo:    new(MockSettingsRepository),
	}
	service := salesapp.NewCheckoutService(
		f.productRepo, f.transactionRepo, f.adjustmentRepo, f.customerRepo, f.settingsRepo,
	)
	f.handler = NewSalesHandler(service)
	return f
}

func TestSalesHandler_Checkout_Success(t *testing.T) {
	f := newSalesFixture()

	product := newTestProduct(t, "SKU-10", "Olive Oil 1L")

	f.settingsRepo.On("Get", mock.Anything).Return(store.DefaultSettings(), nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.transactionRepo.On("Create", mock.Anything, mock.AnythingOfType("*sales.SaleTransaction")).Return(nil)
	f.productRepo.On("SaveWithVersion", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	f.adjustmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.StockAdjustment")).Return(nil)

	router := setupTestRouter("cashier")
	router.POST("/sales/checkout", f.handler.Checkout)

	reqBody := salesapp.CheckoutRequest{
		Items: []salesapp.CheckoutItem{
			{ProductID: product.ID, Quantity: 2},
		},
		PaymentMethod: sales.PaymentMethodCash,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/sales/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 8, product.Stock)

	var resp struct {
		Success bool                    `json:"success"`
		Data    salesapp.CheckoutResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.LineCount)
	assert.Empty(t, resp.Data.StockFailures)

	f.transactionRepo.AssertExpectations(t)
	f.adjustmentRepo.AssertExpectations(t)
}

func TestSalesHandler_Checkout_EmptyCart(t *testing.T) {
	f := newSalesFixture()

	router := setupTestRouter("cashier")
	router.POST("/sales/checkout", f.handler.Checkout)

	body, _ := json.Marshal(map[string]any{
		"items":          []any{},
		"payment_method": "cash",
	})

	req := httptest.NewRequest(http.MethodPost, "/sales/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSalesHandler_Checkout_Unauthenticated(t *testing.T) {
	f := newSalesFixture()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/sales/checkout", f.handler.Checkout)

	body, _ := json.Marshal(salesapp.CheckoutRequest{
		Items:         []salesapp.CheckoutItem{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: sales.PaymentMethodCash,
	})

	req := httptest.NewRequest(http.MethodPost, "/sales/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSalesHandler_Get_NotFound(t *testing.T) {
	f := newSalesFixture()

	id := uuid.New()
	f.transactionRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := setupTestRouter("cashier")
	router.GET("/sales/:id", f.handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/sales/"+id.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
