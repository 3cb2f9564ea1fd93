package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus type for order status
type OrderStatus string

const (
	OrderNew        OrderStatus = "new"
	OrderProcessing OrderStatus = "processing"
	OrderFulfilled  OrderStatus = "fulfilled"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderNew, OrderProcessing, OrderFulfilled, OrderCancelled:
		return true
	}
	return false
}

// Order represents orders table. Line items live in the normalized
// order_items table; the legacy flat article encoding is only used by
// the import/export path (see the codec package).
type Order struct {
	OrderID       uint        `gorm:"primaryKey;column:order_id" json:"order_id"`
	Status        OrderStatus `gorm:"type:varchar(50);not null;default:'new'" json:"status"`
	PickupAddress string      `gorm:"type:text;not null" json:"pickup_address"`
	PickupCode    string      `gorm:"type:varchar(10)" json:"pickup_code"`
	OrderDate     time.Time   `gorm:"not null" json:"order_date"`
	DeliveryDate  *time.Time  `json:"delivery_date,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents order_items table
type OrderItem struct {
	ItemID    uint            `gorm:"primaryKey;column:item_id" json:"item_id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
