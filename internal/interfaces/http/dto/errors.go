package dto

import (
	"net/http"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
)

// Transport-level error codes. Domain codes come from the shared package;
// these cover failures that never reach a service.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// httpStatusByCode maps error codes to HTTP status codes
var httpStatusByCode = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	shared.CodeValidation:         http.StatusBadRequest,
	shared.CodeNotFound:           http.StatusNotFound,
	shared.CodeActingUserNotFound: http.StatusUnprocessableEntity,
	shared.CodeEntityInactive:     http.StatusConflict,
	shared.CodeDuplicateProduct:   http.StatusBadRequest,
	shared.CodeImageExists:        http.StatusConflict,
	shared.CodeImageNotFound:      http.StatusNotFound,
	shared.CodeInvalidImageType:   http.StatusBadRequest,
	shared.CodeInvalidCredentials: http.StatusUnauthorized,
	shared.CodeAccountLocked:      http.StatusForbidden,
	shared.CodeAccountDeactivated: http.StatusForbidden,
	shared.CodeAlreadyExists:      http.StatusConflict,
	shared.CodeConflict:           http.StatusConflict,
	shared.CodeInternal:           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
