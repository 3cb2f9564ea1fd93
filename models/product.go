package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents products table
type Product struct {
	ProductID       uint            `gorm:"primaryKey;column:product_id" json:"product_id"`
	Article         string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"article"`
	Name            string          `gorm:"type:varchar(200);not null" json:"name"`
	CategoryID      uint            `gorm:"not null" json:"category_id"`
	ManufacturerID  uint            `gorm:"not null" json:"manufacturer_id"`
	SupplierID      uint            `gorm:"not null" json:"supplier_id"`
	Description     *string         `gorm:"type:text" json:"description,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Unit            string          `gorm:"type:varchar(50);not null" json:"unit"`
	StockQuantity   int             `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	ImagePath       *string         `gorm:"type:varchar(500)" json:"image_path,omitempty"`
	DiscountPercent float64         `gorm:"not null;default:0;check:discount_percent >= 0 AND discount_percent <= 100" json:"discount_percent"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Category     Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Manufacturer Manufacturer `gorm:"foreignKey:ManufacturerID" json:"manufacturer,omitempty"`
	Supplier     Supplier     `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the selling price after the discount is applied.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPercent == 0 {
		return p.Price
	}
	factor := decimal.NewFromFloat(100 - p.DiscountPercent)
	return p.Price.Mul(factor).Div(decimal.NewFromInt(100)).Round(2)
}
