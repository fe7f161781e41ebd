package entity

import "github.com/shopspring/decimal"

// CartItem is one line of the persisted cart. Repeated adds of the same
// product produce separate lines.
type CartItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Line renders the item the way the cart list shows it.
func (i CartItem) Line() string {
	return i.Name + " - $" + i.Price.String()
}
