package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_UnmarshalUpstreamShapes(t *testing.T) {
	raw := `[
		{"id": 1, "name": "Liner", "price": "9.5", "image_link": "//img/1.png"},
		{"id": 2, "name": "Kohl", "price": 12, "image_link": "//img/2.png"},
		{"id": 3, "name": "Pencil", "price": null, "image_link": "//img/3.png"},
		{"id": 4, "name": "Pen", "price": "", "image_link": "//img/4.png"}
	]`

	var products []Product
	require.NoError(t, json.Unmarshal([]byte(raw), &products))
	require.Len(t, products, 4)

	assert.True(t, products[0].Price.Decimal.Equal(decimal.RequireFromString("9.5")))
	assert.True(t, products[1].Price.Valid)
	assert.False(t, products[2].Price.Valid)
	assert.False(t, products[3].Price.Valid)

	assert.True(t, products[0].Present())
	assert.False(t, products[2].Present())
}

func TestProduct_PresentRequiresImage(t *testing.T) {
	p := Product{ID: 9, Name: "Liner", Price: NewPrice("3")}
	assert.False(t, p.Present())
	p.ImageLink = "https://img.test/9.png"
	assert.True(t, p.Present())
}

func TestCartItem_Line(t *testing.T) {
	item := CartItem{ID: "1", Name: "Producto 1", Price: decimal.NewFromInt(10)}
	assert.Equal(t, "Producto 1 - $10", item.Line())
}
