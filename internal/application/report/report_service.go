package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/shopspring/decimal"
)

// TopProductsLimit is the ranking length used when the caller does not
// ask for one
const TopProductsLimit = 10

// summaryCacheTTL keeps aggregates hot for a terminal that polls the
// dashboard every few seconds.
const summaryCacheTTL = 30 * time.Second

// Cache stores serialized report aggregates under string keys.
// Implementations live in infrastructure; a nil cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, keyPrefix string)
}

// SalesSummaryResponse represents aggregated sales over a period.
// AverageTransaction is zero when the period has no sales.
type SalesSummaryResponse struct {
	PeriodStart        time.Time            `json:"period_start"`
	PeriodEnd          time.Time            `json:"period_end"`
	TransactionCount   int                  `json:"transaction_count"`
	TotalRevenue       decimal.Decimal      `json:"total_revenue"`
	TotalTax           decimal.Decimal      `json:"total_tax"`
	ItemsSold          int                  `json:"items_sold"`
	AverageTransaction decimal.Decimal      `json:"average_transaction"`
	TopProducts        []TopProductResponse `json:"top_products"`
}

// TopProductResponse is one row of the product sales ranking
type TopProductResponse struct {
	Rank        int             `json:"rank"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DashboardResponse is the snapshot shown on the terminal home screen
type DashboardResponse struct {
	ProductCount      int64           `json:"product_count"`
	CustomerCount     int64           `json:"customer_count"`
	LowStockCount     int             `json:"low_stock_count"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	TodayTransactions int             `json:"today_transactions"`
}

// ReportService aggregates the sale ledger into summaries and rankings.
// Aggregation happens in memory over the ledger rows for the period; at
// single-store volume that is cheaper than maintaining rollup tables.
type ReportService struct {
	transactionRepo sales.TransactionRepository
	productRepo     catalog.ProductRepository
	customerRepo    partner.CustomerRepository
	settingsRepo    store.SettingsRepository
	cache           Cache
}

// NewReportService creates a new ReportService
func NewReportService(
	transactionRepo sales.TransactionRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	settingsRepo store.SettingsRepository,
) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		settingsRepo:    settingsRepo,
	}
}

// SetCache enables report caching
func (s *ReportService) SetCache(cache Cache) {
	s.cache = cache
}

// SalesSummary aggregates the ledger over [start, end], both bounds
// inclusive.
func (s *ReportService) SalesSummary(ctx context.Context, start, end time.Time) (*SalesSummaryResponse, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End of period cannot precede its start")
	}

	cacheKey := fmt.Sprintf("report:summary:%d:%d", start.Unix(), end.Unix())
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var response SalesSummaryResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return &response, nil
		}
	}

	transactions, err := s.transactionRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	response := &SalesSummaryResponse{
		PeriodStart:        start,
		PeriodEnd:          end,
		TotalRevenue:       decimal.Zero,
		TotalTax:           decimal.Zero,
		AverageTransaction: decimal.Zero,
	}

	for i := range transactions {
		response.TotalRevenue = response.TotalRevenue.Add(transactions[i].Total)
		response.TotalTax = response.TotalTax.Add(transactions[i].Tax)
		response.ItemsSold += transactions[i].TotalQuantity()
	}
	response.TransactionCount = len(transactions)
	if response.TransactionCount > 0 {
		response.AverageTransaction = response.TotalRevenue.Div(decimal.NewFromInt(int64(response.TransactionCount)))
	}
	response.TopProducts = rankProducts(transactions, TopProductsLimit)

	s.cacheSet(ctx, cacheKey, response)
	return response, nil
}

// TopProducts ranks products sold in [start, end] by quantity, highest
// first. A non-positive limit falls back to TopProductsLimit. Ties keep
// ledger order. The name and SKU shown are the ones from the first sale
// line seen, so renamed products rank as one entry under their
// historical label.
func (s *ReportService) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResponse, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End of period cannot precede its start")
	}
	if limit <= 0 {
		limit = TopProductsLimit
	}

	cacheKey := fmt.Sprintf("report:top:%d:%d:%d", start.Unix(), end.Unix(), limit)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var response []TopProductResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return response, nil
		}
	}

	transactions, err := s.transactionRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	response := rankProducts(transactions, limit)

	s.cacheSet(ctx, cacheKey, response)
	return response, nil
}

// rankProducts groups sale lines by product, summing quantity and
// revenue, and returns at most limit rows ordered by quantity sold
func rankProducts(transactions []sales.SaleTransaction, limit int) []TopProductResponse {
	type aggregate struct {
		response TopProductResponse
		seen     int
	}
	totals := make(map[uuid.UUID]*aggregate)
	order := 0

	for i := range transactions {
		for _, line := range transactions[i].Lines {
			agg, ok := totals[line.ProductID]
			if !ok {
				agg = &aggregate{
					response: TopProductResponse{
						ProductID:   line.ProductID,
						ProductName: line.ProductName,
						SKU:         line.SKU,
						Revenue:     decimal.Zero,
					},
					seen: order,
				}
				order++
				totals[line.ProductID] = agg
			}
			agg.response.Quantity += line.Quantity
			agg.response.Revenue = agg.response.Revenue.Add(line.LineTotal)
		}
	}

	ranking := make([]*aggregate, 0, len(totals))
	for _, agg := range totals {
		ranking = append(ranking, agg)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].response.Quantity != ranking[j].response.Quantity {
			return ranking[i].response.Quantity > ranking[j].response.Quantity
		}
		return ranking[i].seen < ranking[j].seen
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	response := make([]TopProductResponse, len(ranking))
	for i, agg := range ranking {
		agg.response.Rank = i + 1
		response[i] = agg.response
	}
	return response
}

// Dashboard builds the home screen snapshot: catalog and customer counts,
// stock alerts against the store threshold, and today's takings.
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	customerCount, err := s.customerRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(ctx, settings.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	response := &DashboardResponse{
		ProductCount:  productCount,
		CustomerCount: customerCount,
		TodayRevenue:  decimal.Zero,
	}
	for i := range lowStock {
		if inventory.Classify(&lowStock[i]) == inventory.StockLevelOut {
			response.OutOfStockCount++
		} else {
			response.LowStockCount++
		}
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.transactionRepo.FindByDateRange(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	for i := range today {
		response.TodayRevenue = response.TodayRevenue.Add(today[i].Total)
	}
	response.TodayTransactions = len(today)

	return response, nil
}

func (s *ReportService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, data, summaryCacheTTL)
}
