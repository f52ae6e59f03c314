package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailpos/backend/internal/domain/store"
)

// UpdateSettingsRequest replaces the store settings wholesale
type UpdateSettingsRequest struct {
	StoreName         string          `json:"store_name" binding:"required,max=200"`
	Address           string          `json:"address" binding:"omitempty,max=500"`
	Phone             string          `json:"phone" binding:"omitempty,max=50"`
	Currency          string          `json:"currency" binding:"required,currency"`
	TaxRatePercent    decimal.Decimal `json:"tax_rate_percent"`
	LowStockThreshold int             `json:"low_stock_threshold" binding:"min=0"`
	ReceiptFooter     string          `json:"receipt_footer" binding:"omitempty,max=500"`
}

// SettingsResponse is the outward representation of the store settings
type SettingsResponse struct {
	StoreName         string          `json:"store_name"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	Currency          string          `json:"currency"`
	CurrencySymbol    string          `json:"currency_symbol"`
	TaxRatePercent    decimal.Decimal `json:"tax_rate_percent"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	ReceiptFooter     string          `json:"receipt_footer"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToSettingsResponse converts domain settings to their response form
func ToSettingsResponse(s *store.Settings) *SettingsResponse {
	return &SettingsResponse{
		StoreName:         s.StoreName,
		Address:           s.Address,
		Phone:             s.Phone,
		Currency:          string(s.Currency),
		CurrencySymbol:    s.Currency.Symbol(),
		TaxRatePercent:    s.TaxRatePercent,
		LowStockThreshold: s.LowStockThreshold,
		ReceiptFooter:     s.ReceiptFooter,
		UpdatedAt:         s.UpdatedAt,
	}
}
