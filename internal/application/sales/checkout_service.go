package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
)

// maxDecrementAttempts bounds the per-line stock write retry during
// checkout, mirroring the manual adjustment path.
const maxDecrementAttempts = 3

// CheckoutService turns a cart into a recorded sale.
//
// The transaction is written to the ledger first; stock decrements follow
// per line and are best effort. A failed decrement never voids the sale,
// it is reported back in the result so the count can be fixed by hand.
type CheckoutService struct {
	productRepo     catalog.ProductRepository
	transactionRepo sales.TransactionRepository
	adjustmentRepo  inventory.StockAdjustmentRepository
	customerRepo    partner.CustomerRepository
	settingsRepo    store.SettingsRepository
	eventPublisher  shared.EventPublisher
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	transactionRepo sales.TransactionRepository,
	adjustmentRepo inventory.StockAdjustmentRepository,
	customerRepo partner.CustomerRepository,
	settingsRepo store.SettingsRepository,
) *CheckoutService {
	return &CheckoutService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		adjustmentRepo:  adjustmentRepo,
		customerRepo:    customerRepo,
		settingsRepo:    settingsRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout validates the requested items against fresh stock snapshots,
// records the sale, then decrements stock per line.
func (s *CheckoutService) Checkout(ctx context.Context, cashierID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	cart := sales.NewCart(settings.TaxRate())

	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
			}
			return nil, err
		}
		cart.AttachCustomer(customer.ID, customer.Name)
	}

	for _, item := range req.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
			}
			return nil, err
		}
		if err := cart.AddItem(product, item.Quantity); err != nil {
			return nil, err
		}
	}

	transaction, err := sales.NewSaleTransaction(cart, req.PaymentMethod, cashierID)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, shared.NewDomainError("TRANSACTION_PERSIST_FAILED", "Sale could not be recorded: "+err.Error())
	}

	s.publishDomainEvents(ctx, transaction.GetDomainEvents())
	transaction.ClearDomainEvents()

	failures := s.decrementStock(ctx, cashierID, transaction)

	return &CheckoutResult{
		TransactionID: transaction.ID,
		CustomerName:  transaction.CustomerName,
		Subtotal:      transaction.Subtotal,
		Tax:           transaction.Tax,
		Total:         transaction.Total,
		PaymentMethod: transaction.PaymentMethod,
		LineCount:     len(transaction.Lines),
		StockFailures: failures,
		CreatedAt:     transaction.CreatedAt,
	}, nil
}

// GetTransaction retrieves one recorded sale, lines included
func (s *CheckoutService) GetTransaction(ctx context.Context, transactionID uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	response := ToTransactionResponse(transaction)
	return &response, nil
}

// ListTransactions retrieves recorded sales, optionally bounded by date.
// Both bounds are inclusive; a missing bound leaves that side of the
// window open.
func (s *CheckoutService) ListTransactions(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if filter.From != nil || filter.To != nil {
		from := time.Time{}
		if filter.From != nil {
			from = *filter.From
		}
		to := endOfDay(time.Now())
		if filter.To != nil {
			to = endOfDay(*filter.To)
		}

		transactions, err := s.transactionRepo.FindByDateRange(ctx, from, to)
		if err != nil {
			return nil, 0, err
		}
		return ToTransactionResponses(transactions), int64(len(transactions)), nil
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	transactions, err := s.transactionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransactionResponses(transactions), total, nil
}

// decrementStock walks the sale lines and subtracts each sold quantity
// with a version-checked write, recording an audit entry per line. The
// sale is already in the ledger at this point, so failures are collected
// rather than propagated.
func (s *CheckoutService) decrementStock(ctx context.Context, cashierID uuid.UUID, transaction *sales.SaleTransaction) []LineFailure {
	var failures []LineFailure

	for _, line := range transaction.Lines {
		delta, err := s.decrementLine(ctx, line.ProductID, line.Quantity)
		if err != nil {
			failures = append(failures, LineFailure{
				ProductID: line.ProductID,
				SKU:       line.SKU,
				Reason:    err.Error(),
			})
			continue
		}

		adjustment, err := inventory.NewStockAdjustment(line.ProductID, line.ProductName, delta, inventory.ReasonSale, cashierID, "")
		if err == nil {
			err = s.adjustmentRepo.Create(ctx, adjustment)
		}
		if err != nil {
			failures = append(failures, LineFailure{
				ProductID: line.ProductID,
				SKU:       line.SKU,
				Reason:    "stock updated but audit record failed: " + err.Error(),
			})
			continue
		}
		s.publishDomainEvents(ctx, adjustment.GetDomainEvents())
		adjustment.ClearDomainEvents()
	}

	return failures
}

func (s *CheckoutService) decrementLine(ctx context.Context, productID uuid.UUID, quantity int) (int, error) {
	for attempt := 0; ; attempt++ {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return 0, err
		}

		delta, err := product.DecreaseStock(quantity)
		if err != nil {
			return 0, err
		}

		err = s.productRepo.SaveWithVersion(ctx, product)
		if err == nil {
			s.publishDomainEvents(ctx, product.GetDomainEvents())
			product.ClearDomainEvents()
			return delta, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt == maxDecrementAttempts-1 {
			return 0, err
		}
	}
}

func (s *CheckoutService) publishDomainEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// endOfDay pushes a date-only bound to the last instant of that day so
// the range stays inclusive.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
