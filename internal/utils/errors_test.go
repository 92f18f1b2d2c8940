package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapConstraintIntegrityClass(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Constraint: "order_items_product_id_fkey"}

	err := WrapConstraint(pqErr)
	require.True(t, IsConstraintViolation(err))

	var cv *ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "order_items_product_id_fkey", cv.Constraint)
	assert.ErrorIs(t, err, pqErr)
}

func TestWrapConstraintPassesOtherErrorsThrough(t *testing.T) {
	syntaxErr := &pq.Error{Code: "42601"}
	assert.Equal(t, error(syntaxErr), WrapConstraint(syntaxErr))
	assert.False(t, IsConstraintViolation(syntaxErr))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, WrapConstraint(plain))

	assert.NoError(t, WrapConstraint(nil))
}

func TestWrapConstraintFindsWrappedPqError(t *testing.T) {
	pqErr := &pq.Error{Code: "23505"}
	wrapped := fmt.Errorf("insert user: %w", pqErr)

	assert.True(t, IsConstraintViolation(WrapConstraint(wrapped)))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("price", "must not be negative")
	assert.Contains(t, err.Error(), "price")
	assert.Contains(t, err.Error(), "must not be negative")

	var verr *ValidationError
	assert.ErrorAs(t, error(err), &verr)
}
