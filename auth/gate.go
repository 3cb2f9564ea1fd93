// Package auth holds the access control gate: the capability table
// mapping operations to the roles allowed to invoke them, and the
// login/password verification against stored hashes.
package auth

import (
	"errors"

	"github.com/shoestore/models"
)

// ErrForbidden is returned when the caller's role does not grant the
// requested operation.
var ErrForbidden = errors.New("auth: operation not permitted for role")

// Operation identifies a guarded application operation.
type Operation string

const (
	OpListProducts   Operation = "products.list"
	OpSearchProducts Operation = "products.search"
	OpWriteProduct   Operation = "products.write"
	OpListOrders     Operation = "orders.list"
	OpWriteOrder     Operation = "orders.write"
)

// capabilities is the single source of truth for role permissions.
// Every handler consults it through Authorize before touching a store.
var capabilities = map[Operation]map[models.Role]bool{
	OpListProducts: {
		models.RoleGuest:   true,
		models.RoleClient:  true,
		models.RoleManager: true,
		models.RoleAdmin:   true,
	},
	OpSearchProducts: {
		models.RoleManager: true,
		models.RoleAdmin:   true,
	},
	OpWriteProduct: {
		models.RoleAdmin: true,
	},
	OpListOrders: {
		models.RoleManager: true,
		models.RoleAdmin:   true,
	},
	OpWriteOrder: {
		models.RoleAdmin: true,
	},
}

// Authorize checks the capability table. It returns ErrForbidden when
// the role does not grant the operation, including unknown roles and
// unknown operations.
func Authorize(role models.Role, op Operation) error {
	allowed, ok := capabilities[op]
	if !ok || !allowed[role] {
		return ErrForbidden
	}
	return nil
}
