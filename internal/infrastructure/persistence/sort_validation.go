package persistence

import "strings"

// validateSortOrder normalizes the sort direction, defaulting to DESC
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist, falling
// back to defaultField for anything unknown. Sort fields end up
// concatenated into SQL, so nothing outside the whitelist may pass.
func validateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

var productSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"category":   true,
	"price":      true,
	"stock":      true,
}

var customerSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"email":          true,
	"city":           true,
	"loyalty_points": true,
}

var supplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"status":     true,
}

var transactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"total":      true,
}

var adjustmentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"delta":      true,
	"reason":     true,
}

var userSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}
