package repository

import (
	"context"

	"github.com/sangkips/pos-api/internal/domain/entity"
)

// ProductRepository defines read access to the product catalog.
// Lookups return (nil, nil) when no row matches.
type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
}

// TaxRateRepository defines read access to tax rates.
type TaxRateRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.TaxRate, error)
	List(ctx context.Context) ([]entity.TaxRate, error)
}
