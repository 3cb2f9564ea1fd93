package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/models"
)

func orderTestProducts(t *testing.T, store *ProductStore, categoryID, manufacturerID, supplierID uint) (*models.Product, *models.Product) {
	t.Helper()

	first := mustCreateProduct(t, store, productFields("ART-0001", "First", categoryID, manufacturerID, supplierID, 10))
	second := mustCreateProduct(t, store, productFields("ART-0002", "Second", categoryID, manufacturerID, supplierID, 10))
	return first, second
}

func TestOrderCreateWithItems(t *testing.T) {
	db := newTestDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	first, second := orderTestProducts(t, products, categoryID, manufacturerID, supplierID)

	order, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		PickupCode:    "123456",
		OrderDate:     time.Now(),
		Items: []OrderItemFields{
			{ProductID: first.ProductID, Quantity: 3, Price: price("100.00")},
			{ProductID: second.ProductID, Quantity: 5, Price: price("80.00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderNew, order.Status)
	assert.Equal(t, "ART-0001", order.Items[0].Product.Article)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, "ART-0002", order.Items[1].Product.Article)
	assert.Equal(t, 5, order.Items[1].Quantity)
}

func TestOrderCreateValidation(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderStore(db)

	cases := []struct {
		name   string
		fields OrderFields
	}{
		{"unknown status", OrderFields{
			Status:        "shipped",
			PickupAddress: "Main St 1",
			OrderDate:     time.Now(),
		}},
		{"empty address", OrderFields{
			Status:    models.OrderNew,
			OrderDate: time.Now(),
		}},
		{"zero quantity item", OrderFields{
			Status:        models.OrderNew,
			PickupAddress: "Main St 1",
			OrderDate:     time.Now(),
			Items:         []OrderItemFields{{ProductID: 1, Quantity: 0, Price: price("10")}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orders.Create(tc.fields)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestOrderUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	first, second := orderTestProducts(t, products, categoryID, manufacturerID, supplierID)

	order, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		OrderDate:     time.Now(),
		Items: []OrderItemFields{
			{ProductID: first.ProductID, Quantity: 1, Price: price("100.00")},
		},
	})
	require.NoError(t, err)

	status := models.OrderProcessing
	updated, err := orders.Update(order.OrderID, OrderPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.OrderProcessing, updated.Status)
	// Untouched fields and items survive.
	assert.Equal(t, "Main St 1", updated.PickupAddress)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, first.ProductID, updated.Items[0].ProductID)

	// A supplied item list replaces the existing lines.
	items := []OrderItemFields{
		{ProductID: second.ProductID, Quantity: 4, Price: price("80.00")},
	}
	updated, err = orders.Update(order.OrderID, OrderPatch{Items: &items})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, second.ProductID, updated.Items[0].ProductID)
	assert.Equal(t, 4, updated.Items[0].Quantity)
}

func TestOrderUpdateRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderStore(db)

	order, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		OrderDate:     time.Now(),
	})
	require.NoError(t, err)

	bad := models.OrderStatus("shipped")
	_, err = orders.Update(order.OrderID, OrderPatch{Status: &bad})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	kept, err := orders.Get(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderNew, kept.Status)
}

func TestOrderDeleteCascadesToItems(t *testing.T) {
	db := newTestDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	first, second := orderTestProducts(t, products, categoryID, manufacturerID, supplierID)

	order, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		OrderDate:     time.Now(),
		Items: []OrderItemFields{
			{ProductID: first.ProductID, Quantity: 1, Price: price("100.00")},
			{ProductID: second.ProductID, Quantity: 2, Price: price("80.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, orders.Delete(order.OrderID))

	_, err = orders.Get(order.OrderID)
	assert.ErrorIs(t, err, ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	// The referenced products are left untouched.
	_, err = products.Get(first.ProductID)
	assert.NoError(t, err)
	_, err = products.Get(second.ProductID)
	assert.NoError(t, err)
}

func TestOrderGetNotFound(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderStore(db)

	_, err := orders.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, orders.Delete(42), ErrNotFound)
}

func TestLegacyEncodingRoundTrip(t *testing.T) {
	db := newTestDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	first, second := orderTestProducts(t, products, categoryID, manufacturerID, supplierID)

	order, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		OrderDate:     time.Now(),
		Items: []OrderItemFields{
			{ProductID: first.ProductID, Quantity: 3, Price: price("100.00")},
			{ProductID: second.ProductID, Quantity: 5, Price: price("80.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ART-0001, 3, ART-0002, 5", LegacyEncoding(order))

	empty, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		OrderDate:     time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "", LegacyEncoding(empty))
}
