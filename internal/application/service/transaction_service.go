package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionCreatedMessage is returned to the POS on success.
const TransactionCreatedMessage = "Transaction created successfully"

// TransactionService records sales and computes their tax breakdown
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	taxRateRepo     repository.TaxRateRepository
	rounding        money.RoundingMode
	strictProducts  bool
	logger          *zap.Logger
}

// TransactionServiceOptions holds the tunables of TransactionService.
type TransactionServiceOptions struct {
	Rounding       money.RoundingMode
	StrictProducts bool
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	taxRateRepo repository.TaxRateRepository,
	opts TransactionServiceOptions,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		taxRateRepo:     taxRateRepo,
		rounding:        opts.Rounding,
		strictProducts:  opts.StrictProducts,
		logger:          logger.Named("transaction"),
	}
}

// TransactionLineInput represents a product line in a sale
type TransactionLineInput struct {
	ProductID uint
	Quantity  int
}

// CreateTransactionInput represents a sale submitted by a POS terminal.
// TotalAmt and TtlAmtExTax are client-declared and are not recomputed.
type CreateTransactionInput struct {
	EmpCd       string
	StoreCd     string
	PosNo       string
	TotalAmt    decimal.Decimal
	TtlAmtExTax decimal.Decimal
	Products    []TransactionLineInput
}

// CreateTransactionResult is the tax breakdown returned after a sale is recorded.
type CreateTransactionResult struct {
	TransactionID     uint
	DetailCount       int64
	SkippedProductIDs []uint
	Message           string
	TotalAmount       decimal.Decimal
	TotalTax          decimal.Decimal
	TotalWithTax      decimal.Decimal
	TaxSummary        map[string]decimal.Decimal
}

// CreateTransaction persists the header and snapshot detail rows atomically,
// then recomputes the tax summary from the catalog.
//
// The summary runs after commit. If it fails the sale stays recorded and the
// caller still gets an error; the message carries the committed id.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionResult, error) {
	for i, p := range input.Products {
		if p.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("products[%d].quantity", i),
				Message: "quantity must be a positive integer",
			}})
		}
	}

	log := s.logger.With(
		zap.String("emp_cd", input.EmpCd),
		zap.String("store_cd", input.StoreCd),
		zap.String("pos_no", input.PosNo),
	)
	if len(input.Products) == 0 {
		log.Warn("Recording transaction without product lines")
	}

	txn := &entity.Transaction{
		EmpCd:       input.EmpCd,
		StoreCd:     input.StoreCd,
		PosNo:       input.PosNo,
		TotalAmt:    input.TotalAmt,
		TtlAmtExTax: s.rounding.Round(input.TtlAmtExTax),
	}

	lines := make([]repository.LineItem, len(input.Products))
	for i, p := range input.Products {
		lines[i] = repository.LineItem{ProductID: p.ProductID, Quantity: p.Quantity}
	}

	created, err := s.transactionRepo.CreateWithDetails(ctx, txn, lines, repository.CreateOptions{
		StrictProducts: s.strictProducts,
	})
	if err != nil {
		var unresolved *repository.UnresolvedProductError
		if errors.As(err, &unresolved) {
			log.Warn("Transaction rejected: unknown product", zap.Uint("product_id", unresolved.ProductID))
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %d", unresolved.ProductID))
		}
		log.Error("Transaction failed", zap.Error(err))
		return nil, apperror.NewWriteFailureError(err)
	}

	log = log.With(zap.Uint("transaction_id", txn.ID))
	if len(created.SkippedProductIDs) > 0 {
		log.Warn("Product lines skipped: ids not in catalog", zap.Uints("product_ids", created.SkippedProductIDs))
	}

	summary, err := s.summarize(ctx, input.Products)
	if err != nil {
		log.Error("Tax summary failed after commit", zap.Error(err))
		return nil, apperror.NewPostCommitError(txn.ID, err)
	}

	log.Info("Transaction recorded",
		zap.Int64("details", created.DetailCount),
		zap.String("total_tax", summary.TotalTax.StringFixed(money.CurrencyPlaces)),
	)

	return &CreateTransactionResult{
		TransactionID:     txn.ID,
		DetailCount:       created.DetailCount,
		SkippedProductIDs: created.SkippedProductIDs,
		Message:           TransactionCreatedMessage,
		TotalAmount:       input.TotalAmt,
		TotalTax:          summary.TotalTax,
		TotalWithTax:      input.TotalAmt.Add(summary.TotalTax),
		TaxSummary:        summary.ByRate,
	}, nil
}

// summarize re-reads price, tax code and tax percent for every submitted line.
func (s *TransactionService) summarize(ctx context.Context, products []TransactionLineInput) (TaxSummary, error) {
	lines := make([]TaxLine, 0, len(products))
	for _, p := range products {
		product, err := s.productRepo.GetByID(ctx, p.ProductID)
		if err != nil {
			return TaxSummary{}, err
		}
		if product == nil {
			return TaxSummary{}, fmt.Errorf("product %d not found", p.ProductID)
		}

		rate, err := s.taxRateRepo.GetByCode(ctx, product.TaxCode)
		if err != nil {
			return TaxSummary{}, err
		}
		if rate == nil {
			return TaxSummary{}, fmt.Errorf("tax code %q of product %d not found", product.TaxCode, p.ProductID)
		}

		lines = append(lines, TaxLine{
			Price:    product.Price,
			Quantity: p.Quantity,
			Percent:  rate.Percent,
		})
	}
	return ComputeTaxSummary(lines, s.rounding), nil
}

// GetTransaction retrieves a recorded sale with its detail rows
func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*entity.Transaction, error) {
	txn, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}
