package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shoestore/models"
)

// ReferenceStore implements lookups and on-demand creation of the
// reference tables (categories, manufacturers, suppliers) that feed
// product forms and the importer.
type ReferenceStore struct {
	db *gorm.DB
}

// NewReferenceStore creates a reference store bound to the given database.
func NewReferenceStore(db *gorm.DB) *ReferenceStore {
	return &ReferenceStore{db: db}
}

// ListCategories returns all categories ordered by name.
func (s *ReferenceStore) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListManufacturers returns all manufacturers ordered by name.
func (s *ReferenceStore) ListManufacturers() ([]models.Manufacturer, error) {
	var manufacturers []models.Manufacturer
	if err := s.db.Order("name ASC").Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	return manufacturers, nil
}

// ListSuppliers returns all suppliers ordered by name.
func (s *ReferenceStore) ListSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetOrCreateCategory returns the category with the given name, creating
// it when absent.
func (s *ReferenceStore) GetOrCreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}

	var category models.Category
	err := s.db.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: name}
		err = s.db.Create(&category).Error
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetOrCreateManufacturer returns the manufacturer with the given name,
// creating it when absent.
func (s *ReferenceStore) GetOrCreateManufacturer(name string) (*models.Manufacturer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}

	var manufacturer models.Manufacturer
	err := s.db.Where("name = ?", name).First(&manufacturer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		manufacturer = models.Manufacturer{Name: name}
		err = s.db.Create(&manufacturer).Error
	}
	if err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

// GetOrCreateSupplier returns the supplier with the given name, creating
// it when absent.
func (s *ReferenceStore) GetOrCreateSupplier(name string) (*models.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}

	var supplier models.Supplier
	err := s.db.Where("name = ?", name).First(&supplier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		supplier = models.Supplier{Name: name}
		err = s.db.Create(&supplier).Error
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}
