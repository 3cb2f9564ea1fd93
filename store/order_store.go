package store

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoestore/codec"
	"github.com/shoestore/models"
)

// OrderItemFields carries one order line for create/update.
type OrderItemFields struct {
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
}

// OrderFields carries the writable order columns plus line items.
type OrderFields struct {
	Status        models.OrderStatus
	PickupAddress string
	PickupCode    string
	OrderDate     time.Time
	DeliveryDate  *time.Time
	Items         []OrderItemFields
}

// OrderPatch carries a partial order update. Only non-nil fields
// overwrite existing values; a non-nil Items slice replaces all lines.
type OrderPatch struct {
	Status        *models.OrderStatus
	PickupAddress *string
	PickupCode    *string
	OrderDate     *time.Time
	DeliveryDate  *time.Time
	Items         *[]OrderItemFields
}

// OrderStore implements order queries and writes on top of GORM.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an order store bound to the given database.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// List returns orders in insertion order with their items resolved.
func (s *OrderStore) List(offset, limit int) ([]models.Order, error) {
	q := s.db.Model(&models.Order{}).Order("orders.order_id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var orders []models.Order
	if err := q.Preload("Items").Preload("Items.Product").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns a single order with its items and their products.
func (s *OrderStore) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create validates and inserts an order together with its items. Either
// everything commits or nothing does.
func (s *OrderStore) Create(f OrderFields) (*models.Order, error) {
	if err := validateOrderFields(f); err != nil {
		return nil, err
	}

	order := models.Order{
		Status:        f.Status,
		PickupAddress: f.PickupAddress,
		PickupCode:    f.PickupCode,
		OrderDate:     f.OrderDate,
		DeliveryDate:  f.DeliveryDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, it := range f.Items {
			item := models.OrderItem{
				OrderID:   order.OrderID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(order.OrderID)
}

// Update applies a partial update; a supplied item list replaces the
// existing lines atomically.
func (s *OrderStore) Update(id uint, patch OrderPatch) (*models.Order, error) {
	updates, err := orderPatchUpdates(patch)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Items != nil {
			for _, it := range *patch.Items {
				if err := validateOrderItem(it); err != nil {
					return err
				}
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			for _, it := range *patch.Items {
				item := models.OrderItem{
					OrderID:   id,
					ProductID: it.ProductID,
					Quantity:  it.Quantity,
					Price:     it.Price,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes an order and cascades to its items. Referenced
// products are left untouched.
func (s *OrderStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// LegacyEncoding renders an order's items in the flat article format
// used by legacy exports. Items must be loaded with their products.
func LegacyEncoding(o *models.Order) string {
	items := make([]codec.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, codec.Item{
			Article:  it.Product.Article,
			Quantity: it.Quantity,
		})
	}
	return codec.Encode(items)
}

func validateOrderFields(f OrderFields) error {
	if !f.Status.Valid() {
		return validationErr("status", "must be one of new, processing, fulfilled, cancelled")
	}
	if strings.TrimSpace(f.PickupAddress) == "" {
		return validationErr("pickup_address", "must not be empty")
	}
	if f.OrderDate.IsZero() {
		return validationErr("order_date", "must be set")
	}
	for _, it := range f.Items {
		if err := validateOrderItem(it); err != nil {
			return err
		}
	}
	return nil
}

func validateOrderItem(it OrderItemFields) error {
	if it.ProductID == 0 {
		return validationErr("items.product_id", "must reference a product")
	}
	if it.Quantity < 1 {
		return validationErr("items.quantity", "must be at least 1")
	}
	if it.Price.IsNegative() {
		return validationErr("items.price", "must not be negative")
	}
	return nil
}

func orderPatchUpdates(patch OrderPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, validationErr("status", "must be one of new, processing, fulfilled, cancelled")
		}
		updates["status"] = *patch.Status
	}
	if patch.PickupAddress != nil {
		if strings.TrimSpace(*patch.PickupAddress) == "" {
			return nil, validationErr("pickup_address", "must not be empty")
		}
		updates["pickup_address"] = *patch.PickupAddress
	}
	if patch.PickupCode != nil {
		updates["pickup_code"] = *patch.PickupCode
	}
	if patch.OrderDate != nil {
		if patch.OrderDate.IsZero() {
			return nil, validationErr("order_date", "must be set")
		}
		updates["order_date"] = *patch.OrderDate
	}
	if patch.DeliveryDate != nil {
		updates["delivery_date"] = *patch.DeliveryDate
	}

	return updates, nil
}
