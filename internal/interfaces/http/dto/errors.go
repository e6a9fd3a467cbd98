package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors carry their own codes;
// these cover failures raised by the HTTP layer itself.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeStatus maps error codes to HTTP status codes.
// Smart-link expiry maps to 404 and access exhaustion to 403 so public
// link consumers cannot distinguish an expired link from a missing one.
var errorCodeStatus = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	ErrCodeForbidden:       http.StatusForbidden,
	"ACCOUNT_LOCKED":       http.StatusForbidden,
	"ACCOUNT_DEACTIVATED":  http.StatusForbidden,
	"COMPANY_SUSPENDED":    http.StatusForbidden,
	"LINK_ACCESS_EXCEEDED": http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,
	"LINK_EXPIRED":  http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"NO_ELIGIBLE_STAFF": http.StatusUnprocessableEntity,
	"ASSIGNMENT_FAILED": http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeInternal:       http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain or transport error
// code. Unlisted INVALID_* codes are field-level validation failures from
// the domain and map to 400; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
