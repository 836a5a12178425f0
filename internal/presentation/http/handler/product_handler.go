package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

// ProductLookup resolves a barcode to a catalog product.
type ProductLookup interface {
	Lookup(ctx context.Context, barcode string) (*entity.Product, error)
}

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog ProductLookup
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog ProductLookup) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Lookup handles GET /lookup?barcode=
func (h *ProductHandler) Lookup(c *gin.Context) {
	var req request.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	product, err := h.catalog.Lookup(c.Request.Context(), req.Barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Raw(c, http.StatusOK, response.NewLookupResponse(product))
}
