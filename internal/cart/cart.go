package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/pkg/telemetry"
	"github.com/dekoratoriai/storefront/internal/storage"
)

// Storage slots, one per pricing mode.
const (
	StandardSlot = "standardCart"
	BusinessSlot = "businessCart"
)

var ErrInvalidProduct = errors.New("cart: product has no id")

// Pricing is read on every add to decide the unit price.
type Pricing interface {
	IsBusinessMode() bool
	DiscountRate() int
}

// Cart is the cart of the active pricing mode. Every mutation writes the
// whole slot before the in-memory items change.
type Cart struct {
	kv      storage.Store
	pricing Pricing
	logger  *slog.Logger
	tracer  trace.Tracer

	mu    sync.Mutex
	slot  string
	items []Item
}

// Load reads the slot of the current pricing mode.
func Load(ctx context.Context, kv storage.Store, pricing Pricing) (*Cart, error) {
	c := &Cart{
		kv:      kv,
		pricing: pricing,
		logger:  slog.Default().With("component", "cart"),
		tracer:  otel.Tracer("github.com/dekoratoriai/storefront/internal/cart"),
	}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload discards the in-memory cart and reads the slot of the current
// pricing mode. It is called after a mode switch; the other slot stays
// persisted untouched.
func (c *Cart) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot := slotFor(c.pricing.IsBusinessMode())
	items, err := c.read(ctx, slot)
	if err != nil {
		return err
	}
	c.slot = slot
	c.items = items
	return nil
}

func (c *Cart) read(ctx context.Context, slot string) ([]Item, error) {
	raw, err := c.kv.Get(ctx, slot)
	if errors.Is(err, storage.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: load %s: %w", slot, err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.WarnContext(ctx, "ignoring corrupt cart", "slot", slot, "error", err)
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Add puts p in the cart. A product already present gets one more unit at
// its originally captured price; a new one is priced with the discount in
// force right now.
func (c *Cart) Add(ctx context.Context, p catalog.Product) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}

	ctx, span := c.tracer.Start(ctx, "cart.Add", trace.WithAttributes(attribute.String("product.id", p.ID)))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.clone()
	if i := indexOf(next, p.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, newItem(p, c.pricing.IsBusinessMode(), c.pricing.DiscountRate()))
	}

	if err := c.commit(ctx, "add", next); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Remove drops the item with id; an absent id is a no-op.
func (c *Cart) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remove(ctx, id)
}

func (c *Cart) remove(ctx context.Context, id string) error {
	next := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return c.commit(ctx, "remove", next)
}

// UpdateQuantity sets the quantity of id. Zero or less removes the item.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		return c.remove(ctx, id)
	}

	next := c.clone()
	if i := indexOf(next, id); i >= 0 {
		next[i].Quantity = qty
	}
	return c.commit(ctx, "update", next)
}

// Clear empties the cart and deletes its slot.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(ctx, c.slot); err != nil {
		return fmt.Errorf("cart: clear %s: %w", c.slot, err)
	}
	c.items = []Item{}
	c.count("clear")
	return nil
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone()
}

// Total is the sum of price times quantity over all items.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Slot names the storage slot the cart is bound to.
func (c *Cart) Slot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot
}

func (c *Cart) commit(ctx context.Context, op string, next []Item) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("cart: encode %s: %w", c.slot, err)
	}
	if err := c.kv.Set(ctx, c.slot, raw); err != nil {
		return fmt.Errorf("cart: save %s: %w", c.slot, err)
	}
	c.items = next
	c.count(op)
	return nil
}

func (c *Cart) count(op string) {
	mode := "standard"
	if c.slot == BusinessSlot {
		mode = "business"
	}
	telemetry.CartMutations.WithLabelValues(op, mode).Inc()
}

func (c *Cart) clone() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func indexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func slotFor(business bool) string {
	if business {
		return BusinessSlot
	}
	return StandardSlot
}
