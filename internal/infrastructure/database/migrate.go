package database

import (
	"fmt"

	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Reference data
		&entity.TaxRate{},
		&entity.Product{},

		// Sales
		&entity.Transaction{},
		&entity.TransactionDetail{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// DefaultTaxRates are seeded into an empty taxes table.
var DefaultTaxRates = []entity.TaxRate{
	{Code: "1", Name: "Standard", Percent: decimal.RequireFromString("10.00")},
	{Code: "2", Name: "Reduced", Percent: decimal.RequireFromString("8.00")},
}

// SeedDefaultData inserts the default tax rates when none exist.
// Products are owned by the catalog and are never seeded here.
func SeedDefaultData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.TaxRate{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tax rates: %w", err)
	}
	if count > 0 {
		return nil
	}

	rates := make([]entity.TaxRate, len(DefaultTaxRates))
	copy(rates, DefaultTaxRates)
	if err := db.Create(&rates).Error; err != nil {
		return fmt.Errorf("failed to seed tax rates: %w", err)
	}

	log.Info("Seeded default tax rates", zap.Int("count", len(rates)))
	return nil
}
