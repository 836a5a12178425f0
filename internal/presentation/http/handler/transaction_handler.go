package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

// TransactionRecorder records and reads back sales.
type TransactionRecorder interface {
	CreateTransaction(ctx context.Context, input *service.CreateTransactionInput) (*service.CreateTransactionResult, error)
	GetTransaction(ctx context.Context, id uint) (*entity.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactions TransactionRecorder
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions TransactionRecorder) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	lines := make([]service.TransactionLineInput, len(req.Products))
	for i, p := range req.Products {
		lines[i] = service.TransactionLineInput{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		}
	}

	result, err := h.transactions.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		EmpCd:       req.EmpCd,
		StoreCd:     req.StoreCd,
		PosNo:       req.PosNo,
		TotalAmt:    *req.TotalAmt,
		TtlAmtExTax: *req.TtlAmtExTax,
		Products:    lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Raw(c, http.StatusOK, response.NewCreateTransactionResponse(result))
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactions.GetTransaction(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Raw(c, http.StatusOK, response.NewTransactionResponse(txn))
}
