// Package listing filters category products and pages through them in
// fixed-size batches.
package listing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dekoratoriai/storefront/internal/catalog"
)

// All disables a filter.
const All = "all"

// Filters narrows a product list. Every field is either All or a value.
type Filters struct {
	PriceRange string `json:"priceRange"`
	Material   string `json:"material"`
	Style      string `json:"style"`
}

// DefaultFilters matches every product.
func DefaultFilters() Filters {
	return Filters{PriceRange: All, Material: All, Style: All}
}

// Normalize maps empty values to All.
func (f Filters) Normalize() Filters {
	if strings.TrimSpace(f.PriceRange) == "" {
		f.PriceRange = All
	}
	if strings.TrimSpace(f.Material) == "" {
		f.Material = All
	}
	if strings.TrimSpace(f.Style) == "" {
		f.Style = All
	}
	return f
}

// Apply returns the products matching f, in their original order.
//
// Material is a case-insensitive substring match on the composition and
// Style one on the title. PriceRange accepts "lt:<n>", "gt:<n>" and
// "<min>-<max>"; products without a price never match a price range. An
// unparsable range is ignored.
func Apply(products []catalog.Product, f Filters) []catalog.Product {
	f = f.Normalize()

	pr, _ := parsePriceRange(f.PriceRange)

	material := strings.ToLower(f.Material)
	style := strings.ToLower(f.Style)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if material != All && !strings.Contains(strings.ToLower(p.Material), material) {
			continue
		}
		if style != All && !strings.Contains(strings.ToLower(p.Title), style) {
			continue
		}
		if !pr.match(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ValidPriceRange reports whether s is All or a price range Apply understands.
func ValidPriceRange(s string) bool {
	_, ok := parsePriceRange(s)
	return ok
}

// priceRange is inclusive on both ends; a nil bound is open.
type priceRange struct {
	any      bool
	min, max *decimal.Decimal
}

func (r priceRange) match(price *decimal.Decimal) bool {
	if r.any {
		return true
	}
	if price == nil {
		return false
	}
	if r.min != nil && price.LessThan(*r.min) {
		return false
	}
	if r.max != nil && price.GreaterThan(*r.max) {
		return false
	}
	return true
}

func parsePriceRange(s string) (priceRange, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == All {
		return priceRange{any: true}, true
	}

	if v, found := strings.CutPrefix(s, "lt:"); found {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return priceRange{any: true}, false
		}
		return priceRange{max: &d}, true
	}
	if v, found := strings.CutPrefix(s, "gt:"); found {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return priceRange{any: true}, false
		}
		return priceRange{min: &d}, true
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return priceRange{any: true}, false
	}
	lower, err := decimal.NewFromString(lo)
	if err != nil {
		return priceRange{any: true}, false
	}
	upper, err := decimal.NewFromString(hi)
	if err != nil || upper.LessThan(lower) {
		return priceRange{any: true}, false
	}
	return priceRange{min: &lower, max: &upper}, true
}
