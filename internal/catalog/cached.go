package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dekoratoriai/storefront/internal/pkg/cache"
)

// CachedLoader keeps decoded documents in a shared cache for TTL. Cache
// failures fall back to the wrapped loader.
type CachedLoader struct {
	Loader Loader
	Cache  cache.Cache
	Key    string
	TTL    time.Duration
}

func (l CachedLoader) Load(ctx context.Context) (*Document, error) {
	key := l.Cache.GenerateKey("catalog", l.Key)

	raw, found, err := l.Cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
	}
	if found {
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err == nil {
			return &doc, nil
		}
		slog.WarnContext(ctx, "dropping undecodable catalog cache entry", "key", key)
	}

	doc, err := l.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(doc); err == nil {
		if err := l.Cache.Set(ctx, key, string(encoded), l.TTL); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
		}
	}
	return doc, nil
}
