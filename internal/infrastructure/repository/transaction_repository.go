package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// insertDetailSQL snapshots the catalog row at insert time. A product id with
// no catalog row inserts nothing.
const insertDetailSQL = `INSERT INTO transaction_details
	(transaction_id, product_id, product_code, product_name, product_price, tax_code, quantity, created_at)
	SELECT ?, id, code, name, price, tax_code, ?, ? FROM products WHERE id = ?`

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateWithDetails writes the header and all detail rows atomically.
// gorm's Transaction commits when the callback returns nil and rolls back on
// error or panic, releasing the connection on every path.
func (r *transactionRepository) CreateWithDetails(ctx context.Context, txn *entity.Transaction, lines []domainRepo.LineItem, opts domainRepo.CreateOptions) (*domainRepo.CreateResult, error) {
	result := &domainRepo.CreateResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Create(txn).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, line := range lines {
			res := tx.Exec(insertDetailSQL, txn.ID, line.Quantity, now, line.ProductID)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				if opts.StrictProducts {
					return &domainRepo.UnresolvedProductError{ProductID: line.ProductID}
				}
				result.SkippedProductIDs = append(result.SkippedProductIDs, line.ProductID)
				continue
			}
			result.DetailCount += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		// Nothing was persisted; don't hand back an id that does not exist.
		txn.ID = 0
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, id uint) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
