package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Document is one category data file.
type Document struct {
	Products []RawProduct `json:"products"`
}

// RawProduct is a record exactly as it appears in a data file.
type RawProduct struct {
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Code                 string          `json:"code"`
	Price                json.RawMessage `json:"price"`
	Material             *string         `json:"sudetis"`
	MountingInstructions string          `json:"mounting_instructions"`
	Details              map[string]any  `json:"details"`
	Reviews              []Review        `json:"reviews"`
}

// NumericPrice returns the record's price when it is a JSON number. Strings,
// null and missing values all mean "price on request".
func (r RawProduct) NumericPrice() *decimal.Decimal {
	raw := bytes.TrimSpace(r.Price)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil
	}
	return &d
}

func (r RawProduct) detail(key string) string {
	v, ok := r.Details[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Loader reads the document of a single category.
type Loader interface {
	Load(ctx context.Context) (*Document, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Document, error)

func (f LoaderFunc) Load(ctx context.Context) (*Document, error) { return f(ctx) }

// FileLoader reads a JSON document from disk.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", l.Path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode %q: %w", l.Path, err)
	}
	return &doc, nil
}
