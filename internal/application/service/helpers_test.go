package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/pos-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	service *TransactionService
	catalog *CatalogService
	logs    *observer.ObservedLogs
}

// newTestEnv wires the services to an in-memory SQLite catalog:
//
//	1 Green Tea  150.00  tax 2 (8%)
//	2 Notebook   320.00  tax 1 (10%)
//	3 Candy        0.05  tax 1 (10%)
//	4 Gift Card  500.00  tax 9 (no such rate)
func newTestEnv(t *testing.T, opts TransactionServiceOptions) *testEnv {
	t.Helper()
	nop := zap.NewNop()

	db, err := database.NewSQLiteDB(":memory:", nop, "error")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, nop))
	require.NoError(t, database.SeedDefaultData(db, nop))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	products := []entity.Product{
		{ID: 1, Code: "4901234567890", Name: "Green Tea", Price: dec("150.00"), TaxCode: "2"},
		{ID: 2, Code: "4909876543210", Name: "Notebook", Price: dec("320.00"), TaxCode: "1"},
		{ID: 3, Code: "4900000000017", Name: "Candy", Price: dec("0.05"), TaxCode: "1"},
		{ID: 4, Code: "2000000000008", Name: "Gift Card", Price: dec("500.00"), TaxCode: "9"},
	}
	require.NoError(t, db.Create(&products).Error)

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	productRepo := infraRepo.NewProductRepository(db)
	taxRateRepo := infraRepo.NewTaxRateRepository(db)
	txRepo := infraRepo.NewTransactionRepository(db)

	return &testEnv{
		db:      db,
		service: NewTransactionService(txRepo, productRepo, taxRateRepo, opts, log),
		catalog: NewCatalogService(productRepo),
		logs:    logs,
	}
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

// failNthDetailInsert makes the n-th detail insert fail.
func (e *testEnv) failNthDetailInsert(t *testing.T, n int) {
	t.Helper()
	calls := 0
	err := e.db.Callback().Raw().Before("gorm:raw").Register("test:fail_detail_insert", func(tx *gorm.DB) {
		if !strings.Contains(tx.Statement.SQL.String(), "INSERT INTO transaction_details") {
			return
		}
		calls++
		if calls == n {
			_ = tx.AddError(errors.New("injected detail failure"))
		}
	})
	require.NoError(t, err)
}
