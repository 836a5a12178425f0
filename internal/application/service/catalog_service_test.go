package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Lookup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, TransactionServiceOptions{})

	t.Run("exact barcode match", func(t *testing.T) {
		p, err := env.catalog.Lookup(ctx, "4909876543210")
		require.NoError(t, err)
		assert.Equal(t, uint(2), p.ID)
		assert.Equal(t, "Notebook", p.Name)
		assert.Equal(t, "320.00", p.Price.StringFixed(2))
	})

	t.Run("prefix does not match", func(t *testing.T) {
		_, err := env.catalog.Lookup(ctx, "490987654321")
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Product not found", appErr.Message)
	})

	t.Run("blank barcode", func(t *testing.T) {
		_, err := env.catalog.Lookup(ctx, "  ")
		requireAppError(t, err, http.StatusBadRequest)
	})
}
