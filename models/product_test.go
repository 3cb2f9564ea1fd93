package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount float64
		expected string
	}{
		{"no discount", "100.00", 0, "100.00"},
		{"round discount", "100.00", 25, "75.00"},
		{"rounded to cents", "99.99", 15, "84.99"},
		{"full discount", "50.00", 100, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{
				Price:           decimal.RequireFromString(tc.price),
				DiscountPercent: tc.discount,
			}
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(p.EffectivePrice()),
				"got %s", p.EffectivePrice())
		})
	}
}
