package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shoestore/auth"
	"github.com/shoestore/database"
	"github.com/shoestore/store"
	"github.com/shoestore/web/middleware"
)

// Reference tables feed the product form dropdowns, so listing them is
// gated like product listing and creating them like product writes.
// Creation is get-or-create: posting an existing name returns the
// existing row, matching the importer.

type referenceRequest struct {
	Name string `json:"name" form:"name"`
}

// CategoryList returns all categories
func CategoryList(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpListProducts); err != nil {
		return fail(c, err)
	}

	refs := store.NewReferenceStore(database.GetDB())
	categories, err := refs.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CategoryCreate creates a category by name (admin only)
func CategoryCreate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	var req referenceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	refs := store.NewReferenceStore(database.GetDB())
	category, err := refs.GetOrCreateCategory(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// ManufacturerList returns all manufacturers
func ManufacturerList(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpListProducts); err != nil {
		return fail(c, err)
	}

	refs := store.NewReferenceStore(database.GetDB())
	manufacturers, err := refs.ListManufacturers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"manufacturers": manufacturers})
}

// ManufacturerCreate creates a manufacturer by name (admin only)
func ManufacturerCreate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	var req referenceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	refs := store.NewReferenceStore(database.GetDB())
	manufacturer, err := refs.GetOrCreateManufacturer(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"manufacturer": manufacturer})
}

// SupplierList returns all suppliers
func SupplierList(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpListProducts); err != nil {
		return fail(c, err)
	}

	refs := store.NewReferenceStore(database.GetDB())
	suppliers, err := refs.ListSuppliers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"suppliers": suppliers})
}

// SupplierCreate creates a supplier by name (admin only)
func SupplierCreate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	var req referenceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	refs := store.NewReferenceStore(database.GetDB())
	supplier, err := refs.GetOrCreateSupplier(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"supplier": supplier})
}
