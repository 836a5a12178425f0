package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Read-only from the point of view of the POS.
type Product struct {
	ID        uint            `gorm:"primaryKey;column:id" json:"id"`
	Code      string          `gorm:"size:50;uniqueIndex;not null" json:"code"` // barcode
	Name      string          `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	TaxCode   string          `gorm:"size:10;not null;index" json:"tax_code"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TaxRate maps a tax code to its percentage, e.g. 10.00 for 10%.
type TaxRate struct {
	Code    string          `gorm:"primaryKey;size:10" json:"code"`
	Name    string          `gorm:"size:50" json:"name"`
	Percent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percent"`
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "taxes"
}
