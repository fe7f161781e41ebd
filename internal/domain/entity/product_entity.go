package entity

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a catalog record as served by the upstream API. Never mutated.
type Product struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Price         Price          `json:"price"`
	ImageLink     string         `json:"image_link"`
	Description   string         `json:"description,omitempty"`
	ProductColors []ProductColor `json:"product_colors,omitempty"`
}

type ProductColor struct {
	HexValue   string `json:"hex_value"`
	ColourName string `json:"colour_name"`
}

// Price is a lenient decimal: the upstream sends quoted strings, numbers,
// empty strings or null. Anything unparseable is an absent price.
type Price struct {
	decimal.NullDecimal
}

func NewPrice(s string) Price {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}
	}
	return Price{decimal.NullDecimal{Decimal: d, Valid: true}}
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		p.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		p.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	p.NullDecimal = decimal.NullDecimal{Decimal: d, Valid: true}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Decimal.String())
}

// Present reports whether the product carries everything needed to show it.
func (p Product) Present() bool {
	return p.Name != "" && p.Price.Valid && p.ImageLink != ""
}
