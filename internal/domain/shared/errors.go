package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes shared across domains
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeActingUserNotFound = "ACTING_USER_NOT_FOUND"
	CodeEntityInactive     = "ENTITY_INACTIVE"
	CodeDuplicateProduct   = "DUPLICATE_PRODUCT"
	CodeImageExists        = "IMAGE_EXISTS"
	CodeImageNotFound      = "IMAGE_NOT_FOUND"
	CodeInvalidImageType   = "INVALID_IMAGE_TYPE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound = NewDomainError(CodeNotFound, "Resource not found")
	ErrInternal = NewDomainError(CodeInternal, "Operation failed")
)

// NewValidationError creates a validation failure with a human-readable message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewValidationErrorf creates a validation failure with a formatted message
func NewValidationErrorf(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeValidation, format, args...)
}

// NewNotFoundError creates a not-found failure naming the entity and id
func NewNotFoundError(entity string, id any) *DomainError {
	return NewDomainErrorf(CodeNotFound, "%s with id %v not found", entity, id)
}

// NewActingUserError is returned when the id claiming to perform a mutation
// does not belong to an existing user. It blocks the operation before any
// storage change.
func NewActingUserError(actingUserID string) *DomainError {
	return NewDomainErrorf(CodeActingUserNotFound, "Acting user %q not found", actingUserID)
}

// NewInactiveError is returned when updating a soft-deleted entity that has
// not been restored.
func NewInactiveError(entity string, id any) *DomainError {
	return NewDomainErrorf(CodeEntityInactive, "%s with id %v is inactive, it must be restored first", entity, id)
}
