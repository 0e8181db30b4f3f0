package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnsupportedLocale indicates a locale outside the supported set
	ErrorTypeUnsupportedLocale ErrorType = "UNSUPPORTED_LOCALE"

	// ErrorTypeFilterOrder indicates filter blocks appear out of canonical order
	ErrorTypeFilterOrder ErrorType = "FILTER_ORDER"

	// ErrorTypeInvalidStarSequence indicates star blocks are not strictly increasing
	ErrorTypeInvalidStarSequence ErrorType = "INVALID_STAR_SEQUENCE"

	// ErrorTypeInvalidAliasOrder indicates URL aliases violate their SEO ordering
	ErrorTypeInvalidAliasOrder ErrorType = "INVALID_ALIAS_ORDER"

	// ErrorTypeUnsupportedAnchorType indicates a beside-anchor resolved to an
	// entity that carries no usable coordinates
	ErrorTypeUnsupportedAnchorType ErrorType = "UNSUPPORTED_ANCHOR_TYPE"

	// ErrorTypeIndexUnavailable indicates a transient full-text index failure
	ErrorTypeIndexUnavailable ErrorType = "INDEX_UNAVAILABLE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewUnsupportedLocaleError creates a new unsupported locale error
func NewUnsupportedLocaleError(locale string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupportedLocale,
		Message: fmt.Sprintf("locale %q is not supported", locale),
	}
}

// NewFilterOrderError creates a new block order error naming the offending kind
func NewFilterOrderError(blockKind string) *AppError {
	return &AppError{
		Type:    ErrorTypeFilterOrder,
		Message: fmt.Sprintf("filter block %q violates canonical block order", blockKind),
	}
}

// NewInvalidStarSequenceError creates a new star sequence error
func NewInvalidStarSequenceError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidStarSequence,
		Message: message,
	}
}

// NewInvalidAliasOrderError creates a new alias order error
func NewInvalidAliasOrderError(alias string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidAliasOrder,
		Message: fmt.Sprintf("alias %q violates the required alias ordering", alias),
	}
}

// NewUnsupportedAnchorTypeError creates a new unsupported anchor type error
func NewUnsupportedAnchorTypeError(entityKind string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupportedAnchorType,
		Message: fmt.Sprintf("entity kind %q cannot be used as a proximity anchor", entityKind),
	}
}

// NewIndexUnavailableError creates a new index unavailable error
func NewIndexUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeIndexUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
