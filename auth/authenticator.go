package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoestore/models"
	"github.com/shoestore/store"
)

// ErrInvalidCredentials is returned on login failure. A missing user
// and a wrong password are deliberately indistinguishable so login
// attempts cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("auth: invalid login or password")

// Authenticator verifies credentials against stored password hashes.
type Authenticator struct {
	users *store.UserStore
}

// NewAuthenticator creates an authenticator backed by the user store.
func NewAuthenticator(users *store.UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Login looks up the user and verifies the password. Both a missing
// login and a hash mismatch yield the identical ErrInvalidCredentials.
func (a *Authenticator) Login(login, password string) (*models.User, error) {
	user, err := a.users.GetByLogin(login)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword computes a bcrypt hash for provisioning and import.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
