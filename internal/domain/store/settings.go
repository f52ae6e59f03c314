package store

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Settings is the store profile. Exactly one row exists; the repository
// creates it from defaults on first read.
type Settings struct {
	shared.BaseAggregateRoot
	StoreName         string               `gorm:"size:200;not null"`
	Address           string               `gorm:"size:500"`
	Phone             string               `gorm:"size:50"`
	Currency          valueobject.Currency `gorm:"size:10;not null"`
	TaxRatePercent    decimal.Decimal      `gorm:"type:decimal(6,3);not null"`
	LowStockThreshold int                  `gorm:"not null"`
	ReceiptFooter     string               `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Settings) TableName() string {
	return "store_settings"
}

// DefaultSettings returns the profile a fresh store starts with.
func DefaultSettings() *Settings {
	return &Settings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreName:         "My Store",
		Currency:          valueobject.DZD,
		TaxRatePercent:    decimal.NewFromInt(19),
		LowStockThreshold: 10,
	}
}

// Update replaces the editable fields. Zero-valued tax rate and threshold
// are legal; negative ones are not.
func (s *Settings) Update(storeName, address, phone string, currency valueobject.Currency, taxRatePercent decimal.Decimal, lowStockThreshold int, receiptFooter string) error {
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if len(storeName) > 200 {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot exceed 200 characters")
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100 percent")
	}
	if lowStockThreshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	s.StoreName = storeName
	s.Address = strings.TrimSpace(address)
	s.Phone = strings.TrimSpace(phone)
	s.Currency = currency
	s.TaxRatePercent = taxRatePercent
	s.LowStockThreshold = lowStockThreshold
	s.ReceiptFooter = receiptFooter
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSettingsUpdatedEvent(s))

	return nil
}

// TaxRate returns the rate as a fraction, e.g. 19 percent yields 0.19.
func (s *Settings) TaxRate() decimal.Decimal {
	return s.TaxRatePercent.Div(decimal.NewFromInt(100))
}
