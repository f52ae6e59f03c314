package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
)

// backupFormatVersion is bumped on incompatible backup layout changes
const backupFormatVersion = 1

const exportPageSize = 500

// Backup is the full-store JSON snapshot
type Backup struct {
	FormatVersion int                         `json:"format_version"`
	ExportedAt    time.Time                   `json:"exported_at"`
	Settings      *store.Settings             `json:"settings"`
	Products      []catalog.Product           `json:"products"`
	Customers     []partner.Customer          `json:"customers"`
	Suppliers     []partner.Supplier          `json:"suppliers"`
	Transactions  []sales.SaleTransaction     `json:"transactions"`
	Adjustments   []inventory.StockAdjustment `json:"adjustments"`
}

// ExportService produces JSON backups and CSV extracts
type ExportService struct {
	productRepo     catalog.ProductRepository
	customerRepo    partner.CustomerRepository
	supplierRepo    partner.SupplierRepository
	transactionRepo sales.TransactionRepository
	adjustmentRepo  inventory.StockAdjustmentRepository
	settingsRepo    store.SettingsRepository
}

// NewExportService creates a new export service
func NewExportService(
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	transactionRepo sales.TransactionRepository,
	adjustmentRepo inventory.StockAdjustmentRepository,
	settingsRepo store.SettingsRepository,
) *ExportService {
	return &ExportService{
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		supplierRepo:    supplierRepo,
		transactionRepo: transactionRepo,
		adjustmentRepo:  adjustmentRepo,
		settingsRepo:    settingsRepo,
	}
}

// WriteBackup streams the full store snapshot as indented JSON
func (s *ExportService) WriteBackup(ctx context.Context, w io.Writer) error {
	backup, err := s.buildBackup(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

func (s *ExportService) buildBackup(ctx context.Context) (*Backup, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}

	products, err := collectPages(func(f shared.Filter) ([]catalog.Product, error) {
		return s.productRepo.FindAll(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}

	customers, err := collectPages(func(f shared.Filter) ([]partner.Customer, error) {
		return s.customerRepo.FindAll(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("export customers: %w", err)
	}

	suppliers, err := collectPages(func(f shared.Filter) ([]partner.Supplier, error) {
		return s.supplierRepo.FindAll(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("export suppliers: %w", err)
	}

	transactions, err := collectPages(func(f shared.Filter) ([]sales.SaleTransaction, error) {
		return s.transactionRepo.FindAll(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("export transactions: %w", err)
	}

	adjustments, err := collectPages(func(f shared.Filter) ([]inventory.StockAdjustment, error) {
		return s.adjustmentRepo.FindAll(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("export adjustments: %w", err)
	}

	return &Backup{
		FormatVersion: backupFormatVersion,
		ExportedAt:    time.Now().UTC(),
		Settings:      settings,
		Products:      products,
		Customers:     customers,
		Suppliers:     suppliers,
		Transactions:  transactions,
		Adjustments:   adjustments,
	}, nil
}

// WriteSalesCSV writes one row per sale line for transactions in [from, to]
func (s *ExportService) WriteSalesCSV(ctx context.Context, w io.Writer, from, to time.Time) error {
	if to.Before(from) {
		return shared.NewDomainError("INVALID_RANGE", "end date must not precede start date")
	}

	transactions, err := s.transactionRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{
		"transaction_id", "date", "customer", "payment_method",
		"sku", "product", "quantity", "unit_price", "line_total",
		"subtotal", "tax", "total",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, tx := range transactions {
		for _, line := range tx.Lines {
			record := []string{
				tx.ID.String(),
				tx.CreatedAt.Format(time.RFC3339),
				tx.CustomerName,
				string(tx.PaymentMethod),
				line.SKU,
				line.ProductName,
				strconv.Itoa(line.Quantity),
				line.UnitPrice.StringFixed(2),
				line.LineTotal.StringFixed(2),
				tx.Subtotal.StringFixed(2),
				tx.Tax.StringFixed(2),
				tx.Total.StringFixed(2),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteInventoryCSV writes the current stock position of every product
func (s *ExportService) WriteInventoryCSV(ctx context.Context, w io.Writer) error {
	products, err := collectPages(func(f shared.Filter) ([]catalog.Product, error) {
		return s.productRepo.FindAll(ctx, f)
	})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"sku", "name", "category", "stock", "min_stock", "price", "cost", "level"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range products {
		p := &products[i]
		record := []string{
			p.SKU,
			p.Name,
			p.Category,
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinStock),
			p.Price.StringFixed(2),
			p.Cost.StringFixed(2),
			string(inventory.Classify(p)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCustomersCSV writes every customer record
func (s *ExportService) WriteCustomersCSV(ctx context.Context, w io.Writer) error {
	customers, err := collectPages(func(f shared.Filter) ([]partner.Customer, error) {
		return s.customerRepo.FindAll(ctx, f)
	})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"id", "name", "email", "phone", "address", "city", "postal_code", "loyalty_points", "created_at"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range customers {
		c := &customers[i]
		record := []string{
			c.ID.String(),
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			c.City,
			c.PostalCode,
			strconv.Itoa(c.LoyaltyPoints),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// collectPages drains a paginated finder into a single slice
func collectPages[T any](fetch func(shared.Filter) ([]T, error)) ([]T, error) {
	var all []T
	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize

	for page := 1; ; page++ {
		filter.Page = page
		items, err := fetch(filter)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < exportPageSize {
			return all, nil
		}
	}
}
