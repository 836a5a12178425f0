package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/pos-api/internal/domain/entity"
)

// LineItem is a submitted (product, quantity) pair.
type LineItem struct {
	ProductID uint
	Quantity  int
}

// CreateOptions tunes how CreateWithDetails treats unresolved products.
type CreateOptions struct {
	// StrictProducts aborts the write when a product id matches no catalog row.
	StrictProducts bool
}

// CreateResult reports what CreateWithDetails wrote.
type CreateResult struct {
	DetailCount int64
	// SkippedProductIDs lists submitted product ids that produced no detail row.
	SkippedProductIDs []uint
}

// UnresolvedProductError is returned in strict mode when a line's product id
// does not exist in the catalog.
type UnresolvedProductError struct {
	ProductID uint
}

func (e *UnresolvedProductError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// TransactionRepository defines the interface for sale persistence
type TransactionRepository interface {
	// CreateWithDetails inserts the header and one snapshot row per line in a
	// single database transaction. Any error rolls back the whole write.
	CreateWithDetails(ctx context.Context, txn *entity.Transaction, lines []LineItem, opts CreateOptions) (*CreateResult, error)
	GetWithDetails(ctx context.Context, id uint) (*entity.Transaction, error)
}
