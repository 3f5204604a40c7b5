// Package cart keeps one shopping cart per pricing mode.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/dekoratoriai/storefront/internal/catalog"
)

// Item is a product snapshot taken when it was first added. Price is the
// unit price captured at that moment, discount included.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Code     string   `json:"code,omitempty"`
	Category string   `json:"category,omitempty"`
	Material string   `json:"sudetis,omitempty"`
	URL      string   `json:"url,omitempty"`
	Images   []string `json:"images"`

	Price            decimal.Decimal `json:"price"`
	BusinessDiscount *int            `json:"businessDiscount,omitempty"`
	Quantity         int             `json:"quantity"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// newItem prices p for a first add. A missing list price counts as zero.
func newItem(p catalog.Product, business bool, rate int) Item {
	price := decimal.Zero
	if p.Price != nil {
		price = *p.Price
	}

	var discount *int
	if business {
		r := rate
		discount = &r
		if !price.IsZero() {
			factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(rate)).Div(decimal.NewFromInt(100)))
			price = price.Mul(factor)
		}
	}

	images := p.Images
	if images == nil {
		images = []string{}
	}

	return Item{
		ID:               p.ID,
		Name:             p.Name,
		Title:            p.Title,
		Code:             p.Code,
		Category:         p.Category,
		Material:         p.Material,
		URL:              p.URL,
		Images:           append([]string(nil), images...),
		Price:            price,
		BusinessDiscount: discount,
		Quantity:         1,
	}
}
