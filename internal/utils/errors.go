package utils

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Common application errors used across services.
var (
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailExists        = errors.New("EMAIL_EXISTS")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrCategoryNotFound   = errors.New("CATEGORY_NOT_FOUND")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrInsufficientStock  = errors.New("INSUFFICIENT_STOCK")
	ErrForbidden          = errors.New("FORBIDDEN")
)

// ValidationError reports a request field that failed validation. It is
// raised before any write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConstraintViolation wraps a database integrity error (nullability,
// foreign key, uniqueness). It is surfaced to the caller, never corrected.
type ConstraintViolation struct {
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("constraint violation (%s): %v", e.Constraint, e.Err)
	}
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// WrapConstraint converts PostgreSQL integrity errors (SQLSTATE class 23)
// into a ConstraintViolation. Other errors pass through unchanged.
func WrapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return &ConstraintViolation{Constraint: pqErr.Constraint, Err: err}
	}
	return err
}

// IsConstraintViolation reports whether err is a database integrity error.
func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv)
}
