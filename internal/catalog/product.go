// Package catalog loads category documents and turns raw records into
// display-ready products.
package catalog

import (
	"github.com/shopspring/decimal"
)

// DefaultMaterial is assumed for records that do not state a composition.
const DefaultMaterial = "Poliuretanas"

// MissingDimension stands in for absent length, width and height values.
const MissingDimension = "—"

// Product is a normalized catalog entry. It is read-only once loaded.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Code     string `json:"code"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Material string `json:"sudetis"`
	Notes    string `json:"papildoma_informacija"`
	Details  Details `json:"details"`
	Images   []string `json:"images"`

	// Price is nil for "price on request" products.
	Price *decimal.Decimal `json:"price,omitempty"`

	// HasPricePerMetre is set whenever the record carries a numeric price.
	HasPricePerMetre bool `json:"hasPricePerMetre"`

	Reviews []Review `json:"-"`
}

// Details holds raw dimension strings with their units, e.g. "1200mm".
type Details struct {
	Length   string `json:"Ilgis,omitempty"`
	Width    string `json:"Plotis,omitempty"`
	Height   string `json:"Aukštis,omitempty"`
	Diameter string `json:"Skersmuo,omitempty"`
}

// PriceOnRequest reports whether the product has no list price.
func (p Product) PriceOnRequest() bool {
	return p.Price == nil
}
