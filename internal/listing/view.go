package listing

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dekoratoriai/storefront/internal/catalog"
)

// BatchSize is how many products each page step reveals.
const BatchSize = 10

// DefaultLoadMoreDelay is the pause before a further batch is revealed.
const DefaultLoadMoreDelay = 300 * time.Millisecond

var (
	ErrLoadInFlight = errors.New("listing: load already in progress")
	ErrNoMore       = errors.New("listing: no more products")
)

// Page is the visible state of a View.
type Page struct {
	Products  []catalog.Product `json:"products"`
	Displayed int               `json:"displayed"`
	Total     int               `json:"total"`
	HasMore   bool              `json:"hasMore"`
	Filters   Filters           `json:"filters"`
}

// View holds one category listing: the full product set, the active
// filters and how much of the filtered set is displayed. The displayed
// products are always a prefix of the filtered set.
type View struct {
	delay time.Duration

	mu         sync.Mutex
	all        []catalog.Product
	filtered   []catalog.Product
	displayed  int
	filters    Filters
	loading    bool
	generation uint64
}

// NewView returns an empty view. A non-positive delay reveals batches
// immediately.
func NewView(delay time.Duration) *View {
	return &View{delay: delay, filters: DefaultFilters()}
}

// SetProducts replaces the full set and shows the first batch.
func (v *View) SetProducts(products []catalog.Product) Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.all = products
	v.recompute()
	return v.page()
}

// SetFilters recomputes the filtered set from the full set and shows its
// first batch.
func (v *View) SetFilters(f Filters) Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setFilters(f)
	v.recompute()
	return v.page()
}

// setFilters installs f. An unparsable price range is reported once, when it
// is set, and then matches everything.
func (v *View) setFilters(f Filters) {
	f = f.Normalize()
	if f.PriceRange != v.filters.PriceRange && !ValidPriceRange(f.PriceRange) {
		slog.Warn("ignoring unparsable price range", "priceRange", f.PriceRange)
	}
	v.filters = f
}

// Reset installs products and filters together.
func (v *View) Reset(products []catalog.Product, f Filters) Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.all = products
	v.setFilters(f)
	v.recompute()
	return v.page()
}

// LoadMore reveals the next batch after the configured delay.
//
// It fails with ErrLoadInFlight while another call is waiting and with
// ErrNoMore once every filtered product is displayed. When ctx ends during
// the delay nothing changes and ctx.Err() is returned. A reset that lands
// during the delay wins; the stale batch is dropped.
func (v *View) LoadMore(ctx context.Context) (Page, error) {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return Page{}, ErrLoadInFlight
	}
	if v.displayed >= len(v.filtered) {
		p := v.page()
		v.mu.Unlock()
		return p, ErrNoMore
	}
	v.loading = true
	gen := v.generation
	v.mu.Unlock()

	err := v.wait(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false

	if err != nil {
		return Page{}, err
	}
	if gen == v.generation {
		v.displayed = min(v.displayed+BatchSize, len(v.filtered))
	}
	return v.page(), nil
}

func (v *View) Page() Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page()
}

func (v *View) wait(ctx context.Context) error {
	if v.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(v.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (v *View) recompute() {
	v.filtered = Apply(v.all, v.filters)
	v.displayed = min(BatchSize, len(v.filtered))
	v.generation++
}

func (v *View) page() Page {
	shown := make([]catalog.Product, v.displayed)
	copy(shown, v.filtered[:v.displayed])
	return Page{
		Products:  shown,
		Displayed: v.displayed,
		Total:     len(v.filtered),
		HasMore:   v.displayed < len(v.filtered),
		Filters:   v.filters,
	}
}
