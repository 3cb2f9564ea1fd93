package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceListsOrderedByName(t *testing.T) {
	db := newTestDB(t)
	refs := NewReferenceStore(db)

	for _, name := range []string{"Sneakers", "Boots", "Sandals"} {
		_, err := refs.GetOrCreateCategory(name)
		require.NoError(t, err)
	}

	categories, err := refs.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Boots", categories[0].Name)
	assert.Equal(t, "Sandals", categories[1].Name)
	assert.Equal(t, "Sneakers", categories[2].Name)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	refs := NewReferenceStore(db)

	first, err := refs.GetOrCreateManufacturer("Nike")
	require.NoError(t, err)
	again, err := refs.GetOrCreateManufacturer("Nike")
	require.NoError(t, err)
	assert.Equal(t, first.ManufacturerID, again.ManufacturerID)

	manufacturers, err := refs.ListManufacturers()
	require.NoError(t, err)
	assert.Len(t, manufacturers, 1)

	supplier, err := refs.GetOrCreateSupplier("FootTrade LLC")
	require.NoError(t, err)
	assert.NotZero(t, supplier.SupplierID)
}

func TestGetOrCreateRejectsEmptyName(t *testing.T) {
	db := newTestDB(t)
	refs := NewReferenceStore(db)

	var verr *ValidationError
	_, err := refs.GetOrCreateCategory("  ")
	assert.ErrorAs(t, err, &verr)
	_, err = refs.GetOrCreateManufacturer("")
	assert.ErrorAs(t, err, &verr)
	_, err = refs.GetOrCreateSupplier("")
	assert.ErrorAs(t, err, &verr)
}
