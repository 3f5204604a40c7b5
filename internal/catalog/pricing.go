package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Price-per-metre categories list a price for the whole piece that is shown
// per linear metre.
var pricePerMetreCategories = map[string]bool{
	"lubu-apvadai":   true,
	"moulding":       true,
	"grindjuostes":   true,
	"grindu-apvadai": true,
}

// DimensionLayout tells the presentation layer which dimensions to show.
type DimensionLayout string

const (
	LayoutLength         DimensionLayout = "length"
	LayoutDiameterHeight DimensionLayout = "diameter-height"
	LayoutDiameterWidth  DimensionLayout = "diameter-width"
)

func DimensionLayoutFor(category string) DimensionLayout {
	switch category {
	case "balustrai", "kolonos-liemuo":
		return LayoutDiameterHeight
	case "rozetes", "ziedas":
		return LayoutDiameterWidth
	default:
		return LayoutLength
	}
}

func IsPricePerMetre(category string) bool {
	return pricePerMetreCategories[category]
}

var nonNumeric = regexp.MustCompile(`[^\d.,]`)

// ParseLengthMM extracts millimetres from a raw dimension like "1 200 mm"
// or "2000,5mm".
func ParseLengthMM(raw string) (decimal.Decimal, bool) {
	digits := strings.Replace(nonNumeric.ReplaceAllString(raw, ""), ",", ".", 1)
	if digits == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(digits)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// UnitPricePerMetre divides the piece price by its length in metres. It
// returns nil when the product is not sold per metre, has no price, or its
// length cannot be parsed; callers then show "price on request".
func UnitPricePerMetre(p Product) *decimal.Decimal {
	if p.PriceOnRequest() || !IsPricePerMetre(p.Category) {
		return nil
	}
	mm, ok := ParseLengthMM(p.Details.Length)
	if !ok {
		return nil
	}
	perMetre := p.Price.Div(mm.Div(decimal.NewFromInt(1000))).Round(2)
	return &perMetre
}

var ErrInvalidMetres = errors.New("catalog: metres must be a positive multiple of 2")

// QuoteMetres prices an order of metres at pricePerMetre. Mouldings are
// cut in two-metre pieces, so metres must be a positive multiple of 2.
func QuoteMetres(pricePerMetre decimal.Decimal, metres decimal.Decimal) (decimal.Decimal, error) {
	if !metres.IsPositive() || !metres.Mod(decimal.NewFromInt(2)).IsZero() {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrInvalidMetres, metres)
	}
	return pricePerMetre.Mul(metres).Round(2), nil
}
