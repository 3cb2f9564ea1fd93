package database

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shoestore/models"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Starting GORM AutoMigrate...")

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	// Relationship tags create the cascade/restrict rules on sqlite at
	// table creation time; postgres additionally gets them enforced here
	// so existing databases pick them up.
	if db.Dialector.Name() == "postgres" {
		if err := createForeignKeys(db); err != nil {
			logrus.WithError(err).Warn("Some foreign keys could not be created")
		}
	}

	if err := createIndexes(db); err != nil {
		logrus.WithError(err).Warn("Some indexes could not be created")
	}

	logrus.Info("GORM AutoMigrate completed successfully")
	return nil
}

// CheckConnection verifies the database connection
func CheckConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// createForeignKeys creates the referential rules the query layer
// relies on: order item deletion cascades from orders, and products
// referenced by order items cannot be deleted.
func createForeignKeys(db *gorm.DB) error {
	foreignKeys := []struct {
		table string
		name  string
		query string
	}{
		{"order_items", "fk_order_items_order",
			"ALTER TABLE order_items ADD CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(order_id) ON DELETE CASCADE"},
		{"order_items", "fk_order_items_product",
			"ALTER TABLE order_items ADD CONSTRAINT fk_order_items_product FOREIGN KEY (product_id) REFERENCES products(product_id) ON DELETE RESTRICT"},
		{"products", "fk_products_category",
			"ALTER TABLE products ADD CONSTRAINT fk_products_category FOREIGN KEY (category_id) REFERENCES categories(category_id)"},
		{"products", "fk_products_manufacturer",
			"ALTER TABLE products ADD CONSTRAINT fk_products_manufacturer FOREIGN KEY (manufacturer_id) REFERENCES manufacturers(manufacturer_id)"},
		{"products", "fk_products_supplier",
			"ALTER TABLE products ADD CONSTRAINT fk_products_supplier FOREIGN KEY (supplier_id) REFERENCES suppliers(supplier_id)"},
	}

	for _, fk := range foreignKeys {
		var count int64
		db.Raw(`
			SELECT COUNT(*) FROM information_schema.table_constraints
			WHERE constraint_type = 'FOREIGN KEY'
			AND table_name = ?
			AND constraint_name = ?
		`, fk.table, fk.name).Scan(&count)

		if count > 0 {
			continue
		}

		if err := db.Exec(fk.query).Error; err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				logrus.WithField("constraint", fk.name).WithError(err).Warn("Failed to create foreign key")
			}
		} else {
			logrus.WithField("constraint", fk.name).Info("Created foreign key")
		}
	}

	return nil
}

// createIndexes creates performance indexes
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_products_category", "CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)"},
		{"idx_products_supplier", "CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier_id)"},
		{"idx_products_stock", "CREATE INDEX IF NOT EXISTS idx_products_stock ON products(stock_quantity)"},
		{"idx_order_items_order", "CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)"},
		{"idx_order_items_product", "CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)"},
		{"idx_orders_status", "CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			logrus.WithField("index", idx.name).WithError(err).Warn("Failed to create index")
		}
	}

	return nil
}
