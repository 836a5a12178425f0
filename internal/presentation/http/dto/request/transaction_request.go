package request

import "github.com/shopspring/decimal"

// TransactionLineRequest is one product line of a sale
type TransactionLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// CreateTransactionRequest represents a sale submitted by a POS terminal
type CreateTransactionRequest struct {
	EmpCd       string                   `json:"emp_cd" binding:"required,max=50"`
	StoreCd     string                   `json:"store_cd" binding:"required,max=50"`
	PosNo       string                   `json:"pos_no" binding:"required,max=50"`
	TotalAmt    *decimal.Decimal         `json:"total_amt" binding:"required"`
	TtlAmtExTax *decimal.Decimal         `json:"ttl_amt_ex_tax" binding:"required"`
	Products    []TransactionLineRequest `json:"products" binding:"required,dive"`
}

// LookupRequest holds the lookup query string
type LookupRequest struct {
	Barcode string `form:"barcode" binding:"required,max=50"`
}
