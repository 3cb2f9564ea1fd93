package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shoestore/auth"
	"github.com/shoestore/codec"
	"github.com/shoestore/database"
	"github.com/shoestore/models"
	"github.com/shoestore/store"
	"github.com/shoestore/web/middleware"
)

// OrderList returns orders with their items (manager and admin)
func OrderList(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpListOrders); err != nil {
		return fail(c, err)
	}

	orders := store.NewOrderStore(database.GetDB())
	result, err := orders.List(c.QueryInt("offset", 0), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"orders": result, "count": len(result)})
}

// OrderView returns a single order, including the legacy flat article
// rendering used by exports
func OrderView(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpListOrders); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	orders := store.NewOrderStore(database.GetDB())
	order, err := orders.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"order":   order,
		"article": store.LegacyEncoding(order),
	})
}

type orderItemRequest struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderRequest struct {
	Status        string             `json:"status"`
	PickupAddress string             `json:"pickup_address"`
	PickupCode    string             `json:"pickup_code"`
	OrderDate     string             `json:"order_date"`
	DeliveryDate  string             `json:"delivery_date"`
	Items         []orderItemRequest `json:"items"`
	// Article is the legacy flat item encoding; accepted as an
	// alternative to items for imported data.
	Article string `json:"article"`
}

// OrderCreate creates an order with its items (admin only)
func OrderCreate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteOrder); err != nil {
		return fail(c, err)
	}

	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	fields, err := orderFieldsFromRequest(req)
	if err != nil {
		return fail(c, err)
	}

	orders := store.NewOrderStore(database.GetDB())
	order, err := orders.Create(*fields)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
}

type orderPatchRequest struct {
	Status        *string             `json:"status"`
	PickupAddress *string             `json:"pickup_address"`
	PickupCode    *string             `json:"pickup_code"`
	OrderDate     *string             `json:"order_date"`
	DeliveryDate  *string             `json:"delivery_date"`
	Items         *[]orderItemRequest `json:"items"`
}

// OrderUpdate partially updates an order (admin only). A supplied item
// list replaces the existing lines.
func OrderUpdate(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteOrder); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	var req orderPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &store.ValidationError{Field: "body", Message: "malformed request"})
	}

	patch := store.OrderPatch{PickupAddress: req.PickupAddress, PickupCode: req.PickupCode}
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		patch.Status = &status
	}
	if req.OrderDate != nil {
		t, err := parseDate("order_date", *req.OrderDate)
		if err != nil {
			return fail(c, err)
		}
		patch.OrderDate = &t
	}
	if req.DeliveryDate != nil {
		t, err := parseDate("delivery_date", *req.DeliveryDate)
		if err != nil {
			return fail(c, err)
		}
		patch.DeliveryDate = &t
	}
	if req.Items != nil {
		items := make([]store.OrderItemFields, 0, len(*req.Items))
		for _, it := range *req.Items {
			items = append(items, store.OrderItemFields{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		patch.Items = &items
	}

	orders := store.NewOrderStore(database.GetDB())
	order, err := orders.Update(uint(id), patch)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"order": order})
}

// OrderDelete deletes an order and its items (admin only)
func OrderDelete(c *fiber.Ctx) error {
	if err := auth.Authorize(middleware.CurrentRole(c), auth.OpWriteOrder); err != nil {
		return fail(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, store.ErrNotFound)
	}

	orders := store.NewOrderStore(database.GetDB())
	if err := orders.Delete(uint(id)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

func orderFieldsFromRequest(req orderRequest) (*store.OrderFields, error) {
	fields := store.OrderFields{
		Status:        models.OrderStatus(req.Status),
		PickupAddress: req.PickupAddress,
		PickupCode:    req.PickupCode,
	}

	if req.OrderDate != "" {
		t, err := parseDate("order_date", req.OrderDate)
		if err != nil {
			return nil, err
		}
		fields.OrderDate = t
	} else {
		fields.OrderDate = time.Now()
	}
	if req.DeliveryDate != "" {
		t, err := parseDate("delivery_date", req.DeliveryDate)
		if err != nil {
			return nil, err
		}
		fields.DeliveryDate = &t
	}

	for _, it := range req.Items {
		fields.Items = append(fields.Items, store.OrderItemFields{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	// Legacy input path: decode the flat article field into items. A
	// malformed encoding is a data-quality issue, not a request error;
	// the order is accepted with zero items.
	if len(fields.Items) == 0 && req.Article != "" {
		items, err := legacyItems(req.Article)
		if err != nil {
			return nil, err
		}
		fields.Items = items
	}

	return &fields, nil
}

func legacyItems(article string) ([]store.OrderItemFields, error) {
	decoded, err := codec.Decode(article)
	if errors.Is(err, codec.ErrMalformedEncoding) {
		logrus.WithField("article", article).Warn("Malformed legacy article encoding, order created without items")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	products := store.NewProductStore(database.GetDB())
	items := make([]store.OrderItemFields, 0, len(decoded))
	for _, it := range decoded {
		product, err := products.GetByArticle(it.Article)
		if errors.Is(err, store.ErrNotFound) {
			return nil, &store.ValidationError{Field: "article", Message: "unknown product article " + it.Article}
		}
		if err != nil {
			return nil, err
		}
		items = append(items, store.OrderItemFields{
			ProductID: product.ProductID,
			Quantity:  it.Quantity,
			Price:     product.EffectivePrice(),
		})
	}
	return items, nil
}
