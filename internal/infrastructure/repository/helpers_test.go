package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB returns a migrated in-memory SQLite database seeded with the
// default tax rates and a small catalog.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log := zap.NewNop()

	db, err := database.NewSQLiteDB(":memory:", log, "error")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))
	require.NoError(t, database.SeedDefaultData(db, log))

	products := []entity.Product{
		{ID: 1, Code: "4901234567890", Name: "Green Tea", Price: decimal.RequireFromString("150.00"), TaxCode: "2"},
		{ID: 2, Code: "4909876543210", Name: "Notebook", Price: decimal.RequireFromString("320.00"), TaxCode: "1"},
		{ID: 3, Code: "4900000000017", Name: "Candy", Price: decimal.RequireFromString("0.05"), TaxCode: "1"},
	}
	require.NoError(t, db.Create(&products).Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newMockDB returns a gorm DB on top of sqlmock using the postgres dialect.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}
