package service

import (
	"context"
	"strings"

	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/pkg/apperror"
)

// CatalogService handles product lookups for the POS terminal
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// Lookup returns the product whose barcode matches exactly.
func (s *CatalogService) Lookup(ctx context.Context, barcode string) (*entity.Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, apperror.NewBadRequestError("barcode is required")
	}

	product, err := s.productRepo.GetByCode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
