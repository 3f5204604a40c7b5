package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/pkg/cache"
	"github.com/dekoratoriai/storefront/internal/pkg/config"
	"github.com/dekoratoriai/storefront/internal/storage"
	"github.com/dekoratoriai/storefront/internal/storage/redisstore"
	"github.com/dekoratoriai/storefront/internal/storage/sqlitestore"
)

const (
	keyPrefix    = "storefront"
	cacheService = "storefront-cache"
)

// backend bundles the session store and the shared cache built for the
// configured driver.
type backend struct {
	store   storage.Store
	cache   cache.Cache
	closers []io.Closer
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			slog.Warn("close backend", "error", err)
		}
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		rs := redisstore.New(cfg.Storage.RedisAddr, keyPrefix)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, err
		}
		return &backend{
			store:   rs,
			cache:   cache.NewRedisCacheFromClient(rs.Client(), cacheService),
			closers: []io.Closer{rs},
		}, nil

	case config.DriverSQLite:
		ss, err := sqlitestore.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:   ss,
			cache:   cache.NewMemoryCache(cacheService),
			closers: []io.Closer{ss},
		}, nil

	default:
		return &backend{
			store: storage.NewMemory(),
			cache: cache.NewMemoryCache(cacheService),
		}, nil
	}
}

// buildCatalog registers every configured category with a file loader,
// wrapped in the shared cache when caching is enabled.
func buildCatalog(cfg *config.Config, c cache.Cache) (*catalog.Catalog, error) {
	registry := catalog.NewRegistry()

	for _, cat := range categories(cfg) {
		var loader catalog.Loader = catalog.FileLoader{
			Path: filepath.Join(cfg.Catalog.DataDir, dataFile(cfg, cat.Key)),
		}
		if cfg.Catalog.CacheTTL > 0 && c != nil {
			loader = catalog.CachedLoader{Loader: loader, Cache: c, Key: cat.Key, TTL: cfg.Catalog.CacheTTL}
		}
		if err := registry.Register(cat, loader); err != nil {
			return nil, fmt.Errorf("register category %q: %w", cat.Key, err)
		}
	}

	images := catalog.FSImageResolver{Root: cfg.Catalog.ImageDir, URLPrefix: "/images"}
	return catalog.New(registry, images), nil
}

func categories(cfg *config.Config) []catalog.Category {
	if len(cfg.Catalog.Categories) == 0 {
		return catalog.DefaultCategories()
	}

	cats := make([]catalog.Category, 0, len(cfg.Catalog.Categories))
	for _, cc := range cfg.Catalog.Categories {
		suffixes := cc.ImageSuffixes
		if len(suffixes) == 0 {
			suffixes = catalog.DefaultImageSuffixes
		}
		maxImages := cc.MaxImages
		if maxImages <= 0 {
			maxImages = len(suffixes)
		}
		title := cc.Title
		if title == "" {
			title = cc.Key
		}
		cats = append(cats, catalog.Category{
			Key:           cc.Key,
			Title:         title,
			BaseURL:       "/produktai/" + cc.Key,
			ImageSuffixes: suffixes,
			MaxImages:     maxImages,
		})
	}
	return cats
}

func dataFile(cfg *config.Config, key string) string {
	for _, cc := range cfg.Catalog.Categories {
		if cc.Key == key && cc.DataFile != "" {
			return cc.DataFile
		}
	}
	return key + ".json"
}
