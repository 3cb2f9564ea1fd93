package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shoestore/models"
)

// UserStore implements user lookups and provisioning on top of GORM.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store bound to the given database.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Get returns the user with the given id.
func (s *UserStore) Get(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLogin returns the user with the given login.
func (s *UserStore) GetByLogin(login string) (*models.User, error) {
	var user models.User
	err := s.db.Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create provisions a user. The password hash must already be computed
// by the auth package; plain passwords never reach the store.
func (s *UserStore) Create(login, passwordHash, fullName string, role models.Role) (*models.User, error) {
	if strings.TrimSpace(login) == "" {
		return nil, validationErr("login", "must not be empty")
	}
	if passwordHash == "" {
		return nil, validationErr("password_hash", "must not be empty")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, validationErr("full_name", "must not be empty")
	}
	if !role.Valid() {
		return nil, validationErr("role", "must be one of guest, client, manager, admin")
	}

	user := models.User{
		Login:        login,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
