package store

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoestore/models"
)

// StockSort controls ordering of product listings by stock quantity.
type StockSort string

const (
	StockSortNone StockSort = ""
	StockSortAsc  StockSort = "asc"
	StockSortDesc StockSort = "desc"
)

// ListProductsOptions narrows and orders a product listing. Zero values
// leave the corresponding dimension untouched.
type ListProductsOptions struct {
	Search      string
	SupplierID  uint
	SortByStock StockSort
	Offset      int
	Limit       int
}

// ProductFields carries the full set of writable product columns.
type ProductFields struct {
	Article         string
	Name            string
	CategoryID      uint
	ManufacturerID  uint
	SupplierID      uint
	Description     *string
	Price           decimal.Decimal
	Unit            string
	StockQuantity   int
	ImagePath       *string
	DiscountPercent float64
}

// ProductPatch carries a partial update. Only non-nil fields overwrite
// existing values.
type ProductPatch struct {
	Article         *string
	Name            *string
	CategoryID      *uint
	ManufacturerID  *uint
	SupplierID      *uint
	Description     *string
	Price           *decimal.Decimal
	Unit            *string
	StockQuantity   *int
	ImagePath       *string
	DiscountPercent *float64
}

// ProductStore implements product queries and writes on top of GORM.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a product store bound to the given database.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// List returns products matching the options, with category,
// manufacturer and supplier resolved. Products whose related rows were
// deleted are still returned with empty relations (outer-join
// semantics), never dropped.
func (s *ProductStore) List(opts ListProductsOptions) ([]models.Product, error) {
	q := s.db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.category_id = products.category_id").
		Joins("LEFT JOIN manufacturers ON manufacturers.manufacturer_id = products.manufacturer_id").
		Joins("LEFT JOIN suppliers ON suppliers.supplier_id = products.supplier_id")

	if opts.Search != "" {
		// LOWER + LIKE is case-insensitive on both sqlite and postgres.
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		q = q.Where(
			`LOWER(products.name) LIKE ?
			OR LOWER(COALESCE(products.description, '')) LIKE ?
			OR LOWER(COALESCE(categories.name, '')) LIKE ?
			OR LOWER(COALESCE(manufacturers.name, '')) LIKE ?
			OR LOWER(COALESCE(suppliers.name, '')) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	if opts.SupplierID != 0 {
		q = q.Where("products.supplier_id = ?", opts.SupplierID)
	}

	switch opts.SortByStock {
	case StockSortAsc:
		q = q.Order("products.stock_quantity ASC")
	case StockSortDesc:
		q = q.Order("products.stock_quantity DESC")
	}
	// Insertion order as the stable tie-breaker and default order.
	q = q.Order("products.product_id ASC")

	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var products []models.Product
	err := q.
		Preload("Category").
		Preload("Manufacturer").
		Preload("Supplier").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns a single product with its relations resolved.
func (s *ProductStore) Get(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("Category").
		Preload("Manufacturer").
		Preload("Supplier").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByArticle returns the product with the given catalog article.
func (s *ProductStore) GetByArticle(article string) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("article = ?", article).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create validates and inserts a new product.
func (s *ProductStore) Create(f ProductFields) (*models.Product, error) {
	if err := validateProductFields(f); err != nil {
		return nil, err
	}

	product := models.Product{
		Article:         f.Article,
		Name:            f.Name,
		CategoryID:      f.CategoryID,
		ManufacturerID:  f.ManufacturerID,
		SupplierID:      f.SupplierID,
		Description:     f.Description,
		Price:           f.Price,
		Unit:            f.Unit,
		StockQuantity:   f.StockQuantity,
		ImagePath:       f.ImagePath,
		DiscountPercent: f.DiscountPercent,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return s.Get(product.ProductID)
}

// Update applies a partial update. Only fields set on the patch
// overwrite existing values; absent fields stay untouched.
func (s *ProductStore) Update(id uint, patch ProductPatch) (*models.Product, error) {
	updates, err := productPatchUpdates(patch)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&product).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a product unless an order item still references it.
// The reference check and the delete run in one transaction so a
// concurrently inserted order item cannot slip between them; the
// RESTRICT foreign key on order_items is the database-level backstop.
func (s *ProductStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.OrderItem{}).
			Where("product_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrReferentialConflict
		}

		return tx.Delete(&models.Product{}, id).Error
	})
}

// validateArticle keeps articles safe for the flat order-line encoding:
// a comma or surrounding whitespace would break its round trip.
func validateArticle(article string) error {
	if strings.TrimSpace(article) == "" {
		return validationErr("article", "must not be empty")
	}
	if article != strings.TrimSpace(article) {
		return validationErr("article", "must not have surrounding whitespace")
	}
	if strings.Contains(article, ",") {
		return validationErr("article", "must not contain commas")
	}
	return nil
}

func validateProductFields(f ProductFields) error {
	if err := validateArticle(f.Article); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" {
		return validationErr("name", "must not be empty")
	}
	if strings.TrimSpace(f.Unit) == "" {
		return validationErr("unit", "must not be empty")
	}
	if f.CategoryID == 0 {
		return validationErr("category_id", "must reference a category")
	}
	if f.ManufacturerID == 0 {
		return validationErr("manufacturer_id", "must reference a manufacturer")
	}
	if f.SupplierID == 0 {
		return validationErr("supplier_id", "must reference a supplier")
	}
	if f.Price.IsNegative() {
		return validationErr("price", "must not be negative")
	}
	if f.StockQuantity < 0 {
		return validationErr("stock_quantity", "must not be negative")
	}
	if f.DiscountPercent < 0 || f.DiscountPercent > 100 {
		return validationErr("discount_percent", "must be between 0 and 100")
	}
	return nil
}

func productPatchUpdates(patch ProductPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if patch.Article != nil {
		if err := validateArticle(*patch.Article); err != nil {
			return nil, err
		}
		updates["article"] = *patch.Article
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationErr("name", "must not be empty")
		}
		updates["name"] = *patch.Name
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.ManufacturerID != nil {
		updates["manufacturer_id"] = *patch.ManufacturerID
	}
	if patch.SupplierID != nil {
		updates["supplier_id"] = *patch.SupplierID
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, validationErr("price", "must not be negative")
		}
		updates["price"] = *patch.Price
	}
	if patch.Unit != nil {
		if strings.TrimSpace(*patch.Unit) == "" {
			return nil, validationErr("unit", "must not be empty")
		}
		updates["unit"] = *patch.Unit
	}
	if patch.StockQuantity != nil {
		if *patch.StockQuantity < 0 {
			return nil, validationErr("stock_quantity", "must not be negative")
		}
		updates["stock_quantity"] = *patch.StockQuantity
	}
	if patch.ImagePath != nil {
		updates["image_path"] = *patch.ImagePath
	}
	if patch.DiscountPercent != nil {
		if *patch.DiscountPercent < 0 || *patch.DiscountPercent > 100 {
			return nil, validationErr("discount_percent", "must be between 0 and 100")
		}
		updates["discount_percent"] = *patch.DiscountPercent
	}

	return updates, nil
}
