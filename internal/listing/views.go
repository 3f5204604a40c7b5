package listing

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// Views keeps the listing of every recent session and category so a
// follow-up "load more" continues where the first page left off. The
// least recently used views are evicted once size is reached.
type Views struct {
	delay time.Duration

	mu    sync.Mutex
	cache *lru.Cache
}

func NewViews(size int, delay time.Duration) (*Views, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("listing: views cache: %w", err)
	}
	return &Views{delay: delay, cache: cache}, nil
}

// Open returns the view for a session and category, creating it if needed.
func (vs *Views) Open(session, category string) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	key := viewKey(session, category)
	if v, ok := vs.cache.Get(key); ok {
		return v.(*View)
	}
	v := NewView(vs.delay)
	vs.cache.Add(key, v)
	return v
}

// Get returns an existing view.
func (vs *Views) Get(session, category string) (*View, bool) {
	v, ok := vs.cache.Get(viewKey(session, category))
	if !ok {
		return nil, false
	}
	return v.(*View), true
}

func (vs *Views) Len() int {
	return vs.cache.Len()
}

func viewKey(session, category string) string {
	return session + "/" + category
}
