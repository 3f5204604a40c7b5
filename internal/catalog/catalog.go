package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// codePattern finds a dotted product code such as "1.50.192" in a name.
var codePattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// imageWorkers bounds concurrent image lookups per category load.
const imageWorkers = 8

// Catalog serves normalized products for registered categories.
type Catalog struct {
	registry *Registry
	images   ImageResolver
	tracer   trace.Tracer
	logger   *slog.Logger
}

func New(registry *Registry, images ImageResolver) *Catalog {
	if images == nil {
		images = NoImages{}
	}
	return &Catalog{
		registry: registry,
		images:   images,
		tracer:   otel.Tracer("github.com/dekoratoriai/storefront/internal/catalog"),
		logger:   slog.Default().With("component", "catalog"),
	}
}

func (c *Catalog) Categories() []Category {
	return c.registry.Categories()
}

// Category returns the registered category for key.
func (c *Catalog) Category(key string) (Category, error) {
	cat, _, err := c.registry.Lookup(key)
	return cat, err
}

// Products loads and normalizes every product of a category.
//
// An unknown category is an error. A document that cannot be read or decoded
// is logged and yields an empty list so the storefront still renders. When
// ctx is cancelled the load is abandoned and ctx.Err() is returned.
func (c *Catalog) Products(ctx context.Context, key string) ([]Product, error) {
	cat, loader, err := c.registry.Lookup(key)
	if err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "catalog.Products", trace.WithAttributes(attribute.String("category", key)))
	defer span.End()

	doc, err := loader.Load(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		span.RecordError(err)
		c.logger.ErrorContext(ctx, "catalog load failed", "category", key, "error", err)
		return []Product{}, nil
	}

	products := make([]Product, len(doc.Products))
	for i, raw := range doc.Products {
		products[i] = Normalize(raw, cat)
	}

	if err := c.resolveImages(ctx, cat, doc.Products, products); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("products", len(products)))
	return products, nil
}

// Product finds a product by dotted code or id within a category.
func (c *Catalog) Product(ctx context.Context, key, code string) (Product, error) {
	products, err := c.Products(ctx, key)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.Code == code || p.ID == code {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s/%s", ErrProductNotFound, key, code)
}

// resolveImages fills Images for every product. Individual failures are
// logged and leave an empty list; only cancellation aborts the load.
func (c *Catalog) resolveImages(ctx context.Context, cat Category, raws []RawProduct, products []Product) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageWorkers)

	for i := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			images, err := c.images.Resolve(gctx, raws[i].Name, raws[i].Category, cat.ImageSuffixes, cat.MaxImages)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				c.logger.WarnContext(gctx, "image resolution failed", "product", raws[i].Name, "error", err)
				images = nil
			}
			if images == nil {
				images = []string{}
			}
			products[i].Images = images
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("catalog: resolve images: %w", err)
	}
	return nil
}

// Normalize turns a raw record into a display-ready product.
func Normalize(raw RawProduct, cat Category) Product {
	code := raw.Code
	if code == "" && raw.Name != "" {
		if m := codePattern.FindStringSubmatch(raw.Name); m != nil {
			code = m[1]
		}
	}

	id := code
	if id == "" {
		id = raw.Name
	}

	url := ""
	if code != "" {
		url = cat.BaseURL + "/" + code
	}

	material := DefaultMaterial
	if raw.Material != nil {
		material = *raw.Material
	}

	p := Product{
		ID:       id,
		Name:     raw.Name,
		Title:    raw.Name,
		Code:     code,
		URL:      url,
		Category: raw.Category,
		Material: material,
		Notes:    raw.MountingInstructions,
		Details: Details{
			Length:   orMissing(raw.detail("Ilgis")),
			Width:    orMissing(raw.detail("Plotis")),
			Height:   orMissing(raw.detail("Aukštis")),
			Diameter: raw.detail("Skersmuo"),
		},
		Images:  []string{},
		Reviews: raw.Reviews,
	}

	if price := raw.NumericPrice(); price != nil {
		p.Price = price
		p.HasPricePerMetre = true
	}
	return p
}

func orMissing(s string) string {
	if s == "" {
		return MissingDimension
	}
	return s
}
