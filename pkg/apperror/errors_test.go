package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	t.Run("unwraps app errors", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", NewNotFoundError("Product"))
		assert.True(t, IsAppError(err))

		appErr := GetAppError(err)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "Product not found", appErr.Message)
	})

	t.Run("plain errors become 500", func(t *testing.T) {
		err := errors.New("connection refused")
		assert.False(t, IsAppError(err))

		appErr := GetAppError(err)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, "connection refused", appErr.Message)
	})
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "products[0].quantity", Message: "must be at least 1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, "Validation failed", err.Error())
	assert.Len(t, err.Errors, 1)
}

func TestNewBadRequestError(t *testing.T) {
	err := NewBadRequestError("Transaction failed: deadlock detected")
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Transaction failed: deadlock detected", err.Error())
}

func TestNewWriteFailureError(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := NewWriteFailureError(cause)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Transaction failed: deadlock detected", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestNewPostCommitError(t *testing.T) {
	cause := errors.New(`tax code "9" of product 4 not found`)
	err := NewPostCommitError(42, cause)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Contains(t, err.Message, "transaction 42 was recorded")
	assert.Contains(t, err.Message, `tax code "9"`)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("create: %w", err)
	assert.Equal(t, err, GetAppError(wrapped))
}
