package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the header of a recorded sale.
// TotalAmt and TtlAmtExTax are the amounts declared by the POS client.
type Transaction struct {
	ID          uint            `gorm:"primaryKey;column:id" json:"id"`
	EmpCd       string          `gorm:"size:50;not null" json:"emp_cd"`
	StoreCd     string          `gorm:"size:50;not null" json:"store_cd"`
	PosNo       string          `gorm:"size:50;not null" json:"pos_no"`
	TotalAmt    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amt"`
	TtlAmtExTax decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"ttl_amt_ex_tax"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Details []TransactionDetail `gorm:"foreignKey:TransactionID" json:"details,omitempty"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionDetail is a line item. Product fields are a snapshot taken at
// sale time, not a live reference to the catalog.
type TransactionDetail struct {
	ID            uint            `gorm:"primaryKey;column:id" json:"id"`
	TransactionID uint            `gorm:"not null;index" json:"transaction_id"`
	ProductID     uint            `gorm:"not null;index" json:"product_id"`
	ProductCode   string          `gorm:"size:50;not null" json:"product_code"`
	ProductName   string          `gorm:"size:255;not null" json:"product_name"`
	ProductPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price"`
	TaxCode       string          `gorm:"size:10;not null" json:"tax_code"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName returns the table name for the TransactionDetail model
func (TransactionDetail) TableName() string {
	return "transaction_details"
}

// LineTotal returns price * quantity for the snapshot.
func (d *TransactionDetail) LineTotal() decimal.Decimal {
	return d.ProductPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
