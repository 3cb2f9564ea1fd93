// Package codec implements the legacy flat encoding of order line items.
// Older order rows store their items as a single comma-separated text
// field alternating article and quantity ("ART1, 3, ART2, 5"). The
// normalized order_items table is the source of truth; this encoding
// survives only as an import/export format.
package codec

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedEncoding is returned when an article field cannot be
// decoded. Callers treat it as a recoverable data-quality issue and
// proceed with zero items.
var ErrMalformedEncoding = errors.New("codec: malformed article encoding")

// Item is a single order line in the flat encoding. Article must be
// non-empty and must not contain commas or surrounding whitespace, or
// the encoded field no longer decodes back to the same items; the
// product store rejects such articles at the source.
type Item struct {
	Article  string `json:"article"`
	Quantity int    `json:"quantity"`
}

// Encode serializes items into the flat article field. Articles must be
// non-empty and quantities >= 1 for the round-trip guarantee to hold.
// An empty list encodes to the empty string.
func Encode(items []Item) string {
	if len(items) == 0 {
		return ""
	}
	tokens := make([]string, 0, len(items)*2)
	for _, it := range items {
		tokens = append(tokens, it.Article, strconv.Itoa(it.Quantity))
	}
	return strings.Join(tokens, ", ")
}

// Decode parses the flat article field back into items. A malformed or
// odd-length token list yields ErrMalformedEncoding and no items.
func Decode(s string) ([]Item, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	tokens := strings.Split(s, ",")
	if len(tokens)%2 != 0 {
		return nil, ErrMalformedEncoding
	}

	items := make([]Item, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		article := strings.TrimSpace(tokens[i])
		qty, err := strconv.Atoi(strings.TrimSpace(tokens[i+1]))
		if err != nil || article == "" || qty < 1 {
			return nil, ErrMalformedEncoding
		}
		items = append(items, Item{Article: article, Quantity: qty})
	}
	return items, nil
}
