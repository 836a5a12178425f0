package response

import (
	"time"

	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LookupResponse is the product as shown on the POS screen
type LookupResponse struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// NewLookupResponse converts a product into a LookupResponse
func NewLookupResponse(p *entity.Product) LookupResponse {
	return LookupResponse{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
	}
}

// CreateTransactionResponse is the tax breakdown of a recorded sale
type CreateTransactionResponse struct {
	Message      string                     `json:"message"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	TotalTax     decimal.Decimal            `json:"total_tax"`
	TotalWithTax decimal.Decimal            `json:"total_with_tax"`
	TaxSummary   map[string]decimal.Decimal `json:"tax_summary"`
}

// NewCreateTransactionResponse converts a service result
func NewCreateTransactionResponse(r *service.CreateTransactionResult) CreateTransactionResponse {
	summary := r.TaxSummary
	if summary == nil {
		summary = map[string]decimal.Decimal{}
	}
	return CreateTransactionResponse{
		Message:      r.Message,
		TotalAmount:  r.TotalAmount,
		TotalTax:     r.TotalTax,
		TotalWithTax: r.TotalWithTax,
		TaxSummary:   summary,
	}
}

// TransactionDetailResponse is a snapshot line of a recorded sale
type TransactionDetailResponse struct {
	ProductID    uint            `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	TaxCode      string          `json:"tax_code"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// TransactionResponse is a recorded sale with its detail rows
type TransactionResponse struct {
	ID          uint                        `json:"id"`
	EmpCd       string                      `json:"emp_cd"`
	StoreCd     string                      `json:"store_cd"`
	PosNo       string                      `json:"pos_no"`
	TotalAmt    decimal.Decimal             `json:"total_amt"`
	TtlAmtExTax decimal.Decimal             `json:"ttl_amt_ex_tax"`
	CreatedAt   time.Time                   `json:"created_at"`
	Details     []TransactionDetailResponse `json:"details"`
}

// NewTransactionResponse converts a transaction entity
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	details := make([]TransactionDetailResponse, len(t.Details))
	for i, d := range t.Details {
		details[i] = TransactionDetailResponse{
			ProductID:    d.ProductID,
			ProductCode:  d.ProductCode,
			ProductName:  d.ProductName,
			ProductPrice: d.ProductPrice,
			TaxCode:      d.TaxCode,
			Quantity:     d.Quantity,
			LineTotal:    d.LineTotal(),
		}
	}
	return TransactionResponse{
		ID:          t.ID,
		EmpCd:       t.EmpCd,
		StoreCd:     t.StoreCd,
		PosNo:       t.PosNo,
		TotalAmt:    t.TotalAmt,
		TtlAmtExTax: t.TtlAmtExTax,
		CreatedAt:   t.CreatedAt,
		Details:     details,
	}
}
