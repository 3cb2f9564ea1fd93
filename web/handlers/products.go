package handlers

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/shoestore/auth"
	"github.com/shoestore/database"
	"github.com/shoestore/store"
	"github.com/shoestore/web/middleware"
)

// UploadDir is where product images land; the server wires it from
// configuration at startup.
var UploadDir = "images/products"

// ProductList returns products, optionally filtered, searched and
// sorted. Plain listing is open to every role including guests;
// filtering requires manager or admin.
func ProductList(c *fiber.Ctx) error {
	role := middleware.CurrentRole(c)

	sort := store.StockSort(c.Query("sort_by_stock"))
	switch sort {
	case store.StockSortNone, store.StockSortAsc, store.StockSortDesc:
	default:
		return fail(c, &store.ValidationError{Field: "sort_by_stock", Message: "must be asc or desc"})
	}

	opts := store.ListProductsOptions{
		Search:      strings.TrimSpace(c.Query("search")),
		SortByStock: sort,
		Offset:      c.QueryInt("offset", 0),
		Limit:       c.QueryInt("limit", 100),
	}
	if supplier := c.Query("supplier_id"); supplier != "" {
		id, err := strconv.ParseUint(supplier, 10, 32)
		if err != nil {
			return fail(c, &store.ValidationError{Field: "supplier_id", Message: "must be a number"})
		}
		opts.SupplierID = uint(id)
	}

	op := auth.OpListProducts
	if opts.Search != "" || opts.SupplierID != 0 || opts.SortByStock != store.StockSortNone {
		op = auth.OpSearchProducts
	}
	if err := auth.Authorize(role, op); err != nil {
		return fail(c, err)
	}

	products := store.NewProductStore(database.GetDB())
	result, err := products.List(opts)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"products": result, "count": len(result)})
}

// ProductView returns a single product with its effective price
func ProductView(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpListProducts); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	products := store.NewProductStore(database.GetDB())
	product, err := products.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"product":         product,
		"effective_price": product.EffectivePrice(),
	})
}

type productRequest struct {
	Article         string          `json:"article"`
	Name            string          `json:"name"`
	CategoryID      uint            `json:"category_id"`
	ManufacturerID  uint            `json:"manufacturer_id"`
	SupplierID      uint            `json:"supplier_id"`
	Description     *string         `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Unit            string          `json:"unit"`
	StockQuantity   int             `json:"stock_quantity"`
	DiscountPercent float64         `json:"discount_percent"`
}

// ProductCreate creates a new product (admin only)
func ProductCreate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	products := store.NewProductStore(database.GetDB())
	product, err := products.Create(store.ProductFields{
		Article:         req.Article,
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		ManufacturerID:  req.ManufacturerID,
		SupplierID:      req.SupplierID,
		Description:     req.Description,
		Price:           req.Price,
		Unit:            req.Unit,
		StockQuantity:   req.StockQuantity,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

type productPatchRequest struct {
	Article         *string          `json:"article"`
	Name            *string          `json:"name"`
	CategoryID      *uint            `json:"category_id"`
	ManufacturerID  *uint            `json:"manufacturer_id"`
	SupplierID      *uint            `json:"supplier_id"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Unit            *string          `json:"unit"`
	StockQuantity   *int             `json:"stock_quantity"`
	DiscountPercent *float64         `json:"discount_percent"`
}

// ProductUpdate partially updates a product (admin only). Only fields
// present in the request body are written.
func ProductUpdate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	var req productPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	products := store.NewProductStore(database.GetDB())
	product, err := products.Update(uint(id), store.ProductPatch{
		Article:         req.Article,
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		ManufacturerID:  req.ManufacturerID,
		SupplierID:      req.SupplierID,
		Description:     req.Description,
		Price:           req.Price,
		Unit:            req.Unit,
		StockQuantity:   req.StockQuantity,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"product": product})
}

// ProductDelete deletes a product (admin only). Deletion is refused
// while any order item references the product.
func ProductDelete(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	products := store.NewProductStore(database.GetDB())
	if err := products.Delete(uint(id)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// ProductUploadImage stores an uploaded product photo under the
// predictable images/products/product_<id>.<ext> path. Thumbnailing is
// an external concern.
func ProductUploadImage(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteProduct); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	products := store.NewProductStore(database.GetDB())
	if _, err := products.Get(uint(id)); err != nil {
		return fail(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, &store.ValidationError{Field: "image", Message: "file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return fail(c, &store.ValidationError{Field: "image", Message: "unsupported file type"})
	}

	imagePath := filepath.Join(UploadDir, fmt.Sprintf("product_%d%s", id, ext))
	if err := c.SaveFile(file, imagePath); err != nil {
		return fail(c, err)
	}

	product, err := products.Update(uint(id), store.ProductPatch{ImagePath: &imagePath})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"product": product})
}
