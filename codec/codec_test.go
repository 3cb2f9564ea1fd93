package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	items := []Item{
		{Article: "ART1", Quantity: 3},
		{Article: "ART2", Quantity: 5},
	}
	assert.Equal(t, "ART1, 3, ART2, 5", Encode(items))
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]Item{}))
}

func TestDecode(t *testing.T) {
	items, err := Decode("ART1, 3, ART2, 5")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Item{Article: "ART1", Quantity: 3}, items[0])
	assert.Equal(t, Item{Article: "ART2", Quantity: 5}, items[1])
}

func TestDecodeEmpty(t *testing.T) {
	items, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = Decode("   ")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"odd token count", "ART1, 3, ART2"},
		{"quantity not a number", "ART1, three"},
		{"quantity below one", "ART1, 0"},
		{"missing article", ", 3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := Decode(tc.input)
			assert.ErrorIs(t, err, ErrMalformedEncoding)
			assert.Empty(t, items)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cases := [][]Item{
		{{Article: "A", Quantity: 1}},
		{{Article: "ART-0001", Quantity: 12}, {Article: "ART-0002", Quantity: 1}},
		{{Article: "X1", Quantity: 7}, {Article: "X2", Quantity: 3}, {Article: "X3", Quantity: 99}},
	}

	for _, items := range cases {
		decoded, err := Decode(Encode(items))
		require.NoError(t, err)
		assert.Equal(t, items, decoded)
	}
}
