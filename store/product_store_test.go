package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/models"
)

func productFields(article, name string, categoryID, manufacturerID, supplierID uint, stock int) ProductFields {
	return ProductFields{
		Article:        article,
		Name:           name,
		CategoryID:     categoryID,
		ManufacturerID: manufacturerID,
		SupplierID:     supplierID,
		Price:          price("100.00"),
		Unit:           "pair",
		StockQuantity:  stock,
	}
}

func TestProductSearchMatchesAllFields(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	sneakersID, nikeID, footTradeID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	bootsID, eccoID, shoeWorldID := seedReferences(t, db, "Boots", "Ecco", "ShoeWorld")

	desc := "Lightweight running shoe"
	byName := productFields("ART-0001", "Air Zoom", sneakersID, nikeID, footTradeID, 5)
	mustCreateProduct(t, store, byName)
	byDesc := productFields("ART-0002", "Pegasus", sneakersID, nikeID, footTradeID, 5)
	byDesc.Description = &desc
	mustCreateProduct(t, store, byDesc)
	other := productFields("ART-0003", "Track 25", bootsID, eccoID, shoeWorldID, 5)
	mustCreateProduct(t, store, other)

	cases := []struct {
		name     string
		search   string
		expected []string
	}{
		{"product name", "air zoom", []string{"ART-0001"}},
		{"description", "LIGHTWEIGHT", []string{"ART-0002"}},
		{"category name", "sNeAkErS", []string{"ART-0001", "ART-0002"}},
		{"manufacturer name", "ecco", []string{"ART-0003"}},
		{"supplier name", "foottrade", []string{"ART-0001", "ART-0002"}},
		{"no match", "sandals", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := store.List(ListProductsOptions{Search: tc.search})
			require.NoError(t, err)

			var articles []string
			for _, p := range result {
				articles = append(articles, p.Article)
			}
			assert.Equal(t, tc.expected, articles)
		})
	}
}

// Legacy data is Russian; search must fold Cyrillic case, not just
// ASCII.
func TestProductSearchFoldsCyrillic(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Кроссовки", "Найк", "ОбувьТорг")
	mustCreateProduct(t, store, productFields("ART-0001", "Кроссовки Найк", categoryID, manufacturerID, supplierID, 5))

	for _, search := range []string{"найк", "НАЙК", "кроссовки", "обувьторг"} {
		t.Run(search, func(t *testing.T) {
			result, err := store.List(ListProductsOptions{Search: search})
			require.NoError(t, err)
			require.Len(t, result, 1)
			assert.Equal(t, "ART-0001", result[0].Article)
		})
	}
}

func TestProductListSupplierFilter(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierA := seedReferences(t, db, "Sneakers", "Nike", "Supplier A")
	supplierB := models.Supplier{Name: "Supplier B"}
	require.NoError(t, db.Create(&supplierB).Error)

	mustCreateProduct(t, store, productFields("ART-0001", "One", categoryID, manufacturerID, supplierA, 1))
	mustCreateProduct(t, store, productFields("ART-0002", "Two", categoryID, manufacturerID, supplierB.SupplierID, 1))
	mustCreateProduct(t, store, productFields("ART-0003", "Three", categoryID, manufacturerID, supplierA, 1))

	result, err := store.List(ListProductsOptions{SupplierID: supplierA})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "ART-0001", result[0].Article)
	assert.Equal(t, "ART-0003", result[1].Article)
}

func TestProductListStockSort(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	mustCreateProduct(t, store, productFields("A", "Product A", categoryID, manufacturerID, supplierID, 5))
	mustCreateProduct(t, store, productFields("B", "Product B", categoryID, manufacturerID, supplierID, 2))
	mustCreateProduct(t, store, productFields("C", "Product C", categoryID, manufacturerID, supplierID, 8))

	asc, err := store.List(ListProductsOptions{SortByStock: StockSortAsc})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{asc[0].Article, asc[1].Article, asc[2].Article})

	desc, err := store.List(ListProductsOptions{SortByStock: StockSortDesc})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{desc[0].Article, desc[1].Article, desc[2].Article})

	unsorted, err := store.List(ListProductsOptions{})
	require.NoError(t, err)
	require.Len(t, unsorted, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{unsorted[0].Article, unsorted[1].Article, unsorted[2].Article})
}

func TestProductListKeepsOrphanedRows(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	mustCreateProduct(t, store, productFields("ART-0001", "Orphan", categoryID, manufacturerID, supplierID, 1))

	// Remove the referenced supplier directly; the product must still be
	// listed, with the relation left empty.
	require.NoError(t, db.Exec("DELETE FROM suppliers WHERE supplier_id = ?", supplierID).Error)

	result, err := store.List(ListProductsOptions{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ART-0001", result[0].Article)
	assert.Empty(t, result[0].Supplier.Name)
}

func TestProductGetNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	_, err := store.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetByArticle("NO-SUCH")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductCreateValidation(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	valid := productFields("ART-0001", "Valid", categoryID, manufacturerID, supplierID, 1)

	cases := []struct {
		name   string
		mutate func(*ProductFields)
	}{
		{"empty article", func(f *ProductFields) { f.Article = " " }},
		{"article with comma", func(f *ProductFields) { f.Article = "ART,0001" }},
		{"article with surrounding space", func(f *ProductFields) { f.Article = " ART-0001" }},
		{"empty name", func(f *ProductFields) { f.Name = "" }},
		{"negative price", func(f *ProductFields) { f.Price = price("-1") }},
		{"negative stock", func(f *ProductFields) { f.StockQuantity = -1 }},
		{"discount above 100", func(f *ProductFields) { f.DiscountPercent = 101 }},
		{"missing category", func(f *ProductFields) { f.CategoryID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			_, err := store.Create(f)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestProductUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	f := productFields("ART-0001", "Original", categoryID, manufacturerID, supplierID, 7)
	f.DiscountPercent = 10
	created := mustCreateProduct(t, store, f)

	newName := "Renamed"
	newStock := 3
	updated, err := store.Update(created.ProductID, ProductPatch{
		Name:          &newName,
		StockQuantity: &newStock,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 3, updated.StockQuantity)
	// Untouched fields keep their values.
	assert.Equal(t, "ART-0001", updated.Article)
	assert.Equal(t, 10.0, updated.DiscountPercent)
	assert.True(t, price("100.00").Equal(updated.Price))
}

func TestProductUpdateValidation(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	created := mustCreateProduct(t, store, productFields("ART-0001", "Product", categoryID, manufacturerID, supplierID, 1))

	bad := price("-5")
	_, err := store.Update(created.ProductID, ProductPatch{Price: &bad})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	badArticle := "ART,0001"
	_, err = store.Update(created.ProductID, ProductPatch{Article: &badArticle})
	assert.ErrorAs(t, err, &verr)

	name := "Name"
	_, err = store.Update(999, ProductPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDeleteBlockedByOrderItem(t *testing.T) {
	db := newTestDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	product := mustCreateProduct(t, products, productFields("ART-0001", "Referenced", categoryID, manufacturerID, supplierID, 5))

	order, err := orders.Create(OrderFields{
		Status:        models.OrderNew,
		PickupAddress: "Main St 1",
		OrderDate:     time.Now(),
		Items: []OrderItemFields{
			{ProductID: product.ProductID, Quantity: 2, Price: price("100.00")},
		},
	})
	require.NoError(t, err)

	err = products.Delete(product.ProductID)
	assert.ErrorIs(t, err, ErrReferentialConflict)

	// Both sides of the reference survive the refused delete.
	_, err = products.Get(product.ProductID)
	assert.NoError(t, err)
	kept, err := orders.Get(order.OrderID)
	require.NoError(t, err)
	assert.Len(t, kept.Items, 1)
}

func TestProductDeleteUnreferenced(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	product := mustCreateProduct(t, store, productFields("ART-0001", "Unreferenced", categoryID, manufacturerID, supplierID, 5))

	require.NoError(t, store.Delete(product.ProductID))
	_, err := store.Get(product.ProductID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(product.ProductID), ErrNotFound)
}

func TestProductListPagination(t *testing.T) {
	db := newTestDB(t)
	store := NewProductStore(db)

	categoryID, manufacturerID, supplierID := seedReferences(t, db, "Sneakers", "Nike", "FootTrade LLC")
	for _, article := range []string{"ART-0001", "ART-0002", "ART-0003"} {
		mustCreateProduct(t, store, productFields(article, "Product "+article, categoryID, manufacturerID, supplierID, 1))
	}

	page, err := store.List(ListProductsOptions{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ART-0002", page[0].Article)
}
