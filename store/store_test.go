package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shoestore/database/sqliteext"
	"github.com/shoestore/models"
)

// newTestDB opens a fresh in-memory sqlite database with the full
// schema, on the same Unicode-aware driver production uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(&sqlite.Dialector{
		DriverName: sqliteext.DriverName,
		DSN:        ":memory:",
	}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// seedReferences creates one category, manufacturer and supplier and
// returns their ids.
func seedReferences(t *testing.T, db *gorm.DB, category, manufacturer, supplier string) (uint, uint, uint) {
	t.Helper()

	c := models.Category{Name: category}
	require.NoError(t, db.Create(&c).Error)
	m := models.Manufacturer{Name: manufacturer}
	require.NoError(t, db.Create(&m).Error)
	s := models.Supplier{Name: supplier}
	require.NoError(t, db.Create(&s).Error)
	return c.CategoryID, m.ManufacturerID, s.SupplierID
}

func mustCreateProduct(t *testing.T, store *ProductStore, f ProductFields) *models.Product {
	t.Helper()

	product, err := store.Create(f)
	require.NoError(t, err)
	return product
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
