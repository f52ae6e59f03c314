package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes carry straight through to the response body, so clients see
// the same vocabulary the domain layer speaks.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"OUT_OF_STOCK":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_DEACTIVATED": http.StatusUnprocessableEntity,
	"INSUFFICIENT_POINTS": http.StatusUnprocessableEntity,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,

	"TOKEN_GENERATION_FAILED":    http.StatusInternalServerError,
	"TRANSACTION_PERSIST_FAILED": http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR":        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unmapped INVALID_* codes are client mistakes; anything else unknown
// is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
