package application

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
)

const placeholderBase = "https://placehold.co/400x192/00522c/ffffff?text="

// Card is the view model of one product tile.
type Card struct {
	ElementID      string       `json:"element_id"`
	ProductID      int64        `json:"product_id"`
	Name           string       `json:"name"`
	ImageURL       string       `json:"image_url"`
	ImageAlt       string       `json:"image_alt"`
	PlaceholderURL string       `json:"placeholder_url"`
	ImageFallback  bool         `json:"image_fallback"`
	PriceText      string       `json:"price_text"`
	Color          *ColorSwatch `json:"color,omitempty"`
	Description    string       `json:"description,omitempty"`
	Actions        []CardAction `json:"actions"`
}

type ColorSwatch struct {
	Hex   string `json:"hex"`
	Label string `json:"label"`
}

type CardAction struct {
	Kind      string `json:"kind"` // details, buy
	Label     string `json:"label"`
	FullWidth bool   `json:"full_width"`
}

// ImageFailed swaps the image for the name placeholder. It fires at most once,
// so a failing placeholder does not loop. Reports whether the card changed.
func (c *Card) ImageFailed() bool {
	if c.ImageFallback {
		return false
	}
	c.ImageURL = c.PlaceholderURL
	c.ImageFallback = true
	return true
}

// CardRenderer turns products into cards.
type CardRenderer struct {
	Logger *logrus.Logger
}

func NewCardRenderer(logger *logrus.Logger) *CardRenderer {
	return &CardRenderer{Logger: logger}
}

// Render builds the card for p. Products missing a name, price or image are
// skipped (false) and logged; callers keep rendering the rest of the batch.
func (r *CardRenderer) Render(p entity.Product) (Card, bool) {
	if !p.Present() {
		if r.Logger != nil {
			r.Logger.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name}).Warn("product skipped: missing essential data")
		}
		return Card{}, false
	}

	card := Card{
		ElementID:      fmt.Sprintf("product-%d", p.ID),
		ProductID:      p.ID,
		Name:           p.Name,
		ImageURL:       p.ImageLink,
		ImageAlt:       "Image of " + p.Name,
		PlaceholderURL: PlaceholderURL(p.Name),
		PriceText:      "Price: $" + p.Price.Decimal.StringFixed(2),
	}

	if len(p.ProductColors) > 0 {
		first := p.ProductColors[0]
		hex, name := first.HexValue, first.ColourName
		if hex == "" {
			hex = "#000000"
		}
		if name == "" {
			name = "N/A"
		}
		card.Color = &ColorSwatch{Hex: hex, Label: "Color: " + name}
	}

	hasDetails := strings.TrimSpace(p.Description) != ""
	if hasDetails {
		card.Description = p.Description
		card.Actions = append(card.Actions, CardAction{Kind: "details", Label: "View details"})
	}
	card.Actions = append(card.Actions, CardAction{Kind: "buy", Label: "Buy", FullWidth: !hasDetails})
	return card, true
}

// PlaceholderURL is the generated image shown when a product image fails to load.
func PlaceholderURL(name string) string {
	return placeholderBase + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
