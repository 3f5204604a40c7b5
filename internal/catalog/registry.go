package catalog

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrUnknownCategory = errors.New("catalog: unknown category")
	ErrProductNotFound = errors.New("catalog: product not found")
)

// Category describes one browsable product category.
type Category struct {
	Key           string   `json:"key"`
	Title         string   `json:"title"`
	BaseURL       string   `json:"baseUrl"`
	ImageSuffixes []string `json:"-"`
	MaxImages     int      `json:"-"`
}

type registration struct {
	category Category
	loader   Loader
}

// Registry maps category keys to their loaders. It is filled once at
// startup; lookups never build file paths from request input.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

func (r *Registry) Register(cat Category, loader Loader) error {
	if cat.Key == "" {
		return errors.New("catalog: category key is required")
	}
	if loader == nil {
		return fmt.Errorf("catalog: category %q has no loader", cat.Key)
	}
	if cat.BaseURL == "" {
		cat.BaseURL = "/produktai/" + cat.Key
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.entries[cat.Key]; dup {
		return fmt.Errorf("catalog: category %q registered twice", cat.Key)
	}
	r.entries[cat.Key] = registration{category: cat, loader: loader}
	r.order = append(r.order, cat.Key)
	return nil
}

func (r *Registry) Lookup(key string) (Category, Loader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return Category{}, nil, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	return e.category, e.loader, nil
}

// Categories lists categories in registration order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key].category)
	}
	return out
}
