package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shoestore/auth"
	"github.com/shoestore/models"
)

// SeedData seeds initial data into empty tables
func SeedData(db *gorm.DB) error {
	logrus.Info("Checking if database needs seeding...")

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		logrus.Info("Database already has data. Skipping seed.")
		return nil
	}

	logrus.Info("Database is empty. Starting seed process...")

	// Use transaction for data integrity
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedUsers(tx); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		categoryMap, err := seedCategories(tx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		manufacturerMap, err := seedManufacturers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed manufacturers: %w", err)
		}

		supplierMap, err := seedSuppliers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed suppliers: %w", err)
		}

		if err := seedProducts(tx, categoryMap, manufacturerMap, supplierMap); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		logrus.Info("Seed completed successfully")
		return nil
	})
}

func seedUsers(tx *gorm.DB) error {
	users := []struct {
		login    string
		password string
		fullName string
		role     models.Role
	}{
		{"admin", "admin123", "System Administrator", models.RoleAdmin},
		{"manager", "manager123", "Store Manager", models.RoleManager},
		{"client", "client123", "Demo Client", models.RoleClient},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := models.User{
			Login:        u.login,
			PasswordHash: hash,
			FullName:     u.fullName,
			Role:         u.role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
	}

	logrus.Info("  Seeded users")
	return nil
}

func seedCategories(tx *gorm.DB) (map[string]uint, error) {
	names := []string{"Sneakers", "Boots", "Sandals", "Running shoes", "Dress shoes"}

	result := make(map[string]uint, len(names))
	for _, name := range names {
		category := models.Category{Name: name}
		if err := tx.Create(&category).Error; err != nil {
			return nil, err
		}
		result[name] = category.CategoryID
	}

	logrus.Info("  Seeded categories")
	return result, nil
}

func seedManufacturers(tx *gorm.DB) (map[string]uint, error) {
	names := []string{"Nike", "Adidas", "Puma", "Ecco", "Salomon"}

	result := make(map[string]uint, len(names))
	for _, name := range names {
		manufacturer := models.Manufacturer{Name: name}
		if err := tx.Create(&manufacturer).Error; err != nil {
			return nil, err
		}
		result[name] = manufacturer.ManufacturerID
	}

	logrus.Info("  Seeded manufacturers")
	return result, nil
}

func seedSuppliers(tx *gorm.DB) (map[string]uint, error) {
	names := []string{"FootTrade LLC", "ShoeWorld Distribution", "StepSupply Co"}

	result := make(map[string]uint, len(names))
	for _, name := range names {
		supplier := models.Supplier{Name: name}
		if err := tx.Create(&supplier).Error; err != nil {
			return nil, err
		}
		result[name] = supplier.SupplierID
	}

	logrus.Info("  Seeded suppliers")
	return result, nil
}

func seedProducts(tx *gorm.DB, categories, manufacturers, suppliers map[string]uint) error {
	desc := func(s string) *string { return &s }

	products := []models.Product{
		{
			Article:        "ART-0001",
			Name:           "Air Zoom Pegasus 40",
			CategoryID:     categories["Running shoes"],
			ManufacturerID: manufacturers["Nike"],
			SupplierID:     suppliers["FootTrade LLC"],
			Description:    desc("Neutral everyday running shoe"),
			Price:          decimal.NewFromFloat(129.99),
			Unit:           "pair",
			StockQuantity:  25,
		},
		{
			Article:         "ART-0002",
			Name:            "Ultraboost Light",
			CategoryID:      categories["Running shoes"],
			ManufacturerID:  manufacturers["Adidas"],
			SupplierID:      suppliers["ShoeWorld Distribution"],
			Description:     desc("Cushioned long-distance trainer"),
			Price:           decimal.NewFromFloat(179.99),
			Unit:            "pair",
			StockQuantity:   12,
			DiscountPercent: 10,
		},
		{
			Article:        "ART-0003",
			Name:           "Suede Classic XXI",
			CategoryID:     categories["Sneakers"],
			ManufacturerID: manufacturers["Puma"],
			SupplierID:     suppliers["StepSupply Co"],
			Price:          decimal.NewFromFloat(74.95),
			Unit:           "pair",
			StockQuantity:  40,
		},
		{
			Article:        "ART-0004",
			Name:           "Track 25 Hiking Boot",
			CategoryID:     categories["Boots"],
			ManufacturerID: manufacturers["Ecco"],
			SupplierID:     suppliers["FootTrade LLC"],
			Description:    desc("Waterproof leather hiking boot"),
			Price:          decimal.NewFromFloat(219.90),
			Unit:           "pair",
			StockQuantity:  8,
		},
		{
			Article:         "ART-0005",
			Name:            "Speedcross 6",
			CategoryID:      categories["Running shoes"],
			ManufacturerID:  manufacturers["Salomon"],
			SupplierID:      suppliers["ShoeWorld Distribution"],
			Description:     desc("Trail running shoe with aggressive grip"),
			Price:           decimal.NewFromFloat(144.50),
			Unit:            "pair",
			StockQuantity:   17,
			DiscountPercent: 5,
		},
	}

	for i := range products {
		if err := tx.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	// One sample order so the orders screen is not empty on first run
	order := models.Order{
		Status:        models.OrderNew,
		PickupAddress: "12 Main Street, pickup point #3",
		PickupCode:    "482913",
		OrderDate:     time.Now(),
	}
	if err := tx.Create(&order).Error; err != nil {
		return err
	}
	items := []models.OrderItem{
		{OrderID: order.OrderID, ProductID: products[0].ProductID, Quantity: 1, Price: products[0].Price},
		{OrderID: order.OrderID, ProductID: products[2].ProductID, Quantity: 2, Price: products[2].Price},
	}
	for i := range items {
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}

	logrus.Info("  Seeded products and a sample order")
	return nil
}
