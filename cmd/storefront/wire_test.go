package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/pkg/config"
)

func TestCategoriesDefaultsToCarousel(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, catalog.DefaultCategories(), categories(cfg))
	assert.Equal(t, "rozetes.json", dataFile(cfg, "rozetes"))
}

func TestCategoriesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Categories = []config.CategoryConfig{
		{Key: "rozetes", Title: "Rozetės", DataFile: "rozetes-2024.json", MaxImages: 2},
		{Key: "ziedai"},
	}

	cats := categories(cfg)
	require.Len(t, cats, 2)

	assert.Equal(t, "/produktai/rozetes", cats[0].BaseURL)
	assert.Equal(t, 2, cats[0].MaxImages)
	assert.Equal(t, catalog.DefaultImageSuffixes, cats[0].ImageSuffixes)
	assert.Equal(t, "ziedai", cats[1].Title)
	assert.Equal(t, len(catalog.DefaultImageSuffixes), cats[1].MaxImages)

	assert.Equal(t, "rozetes-2024.json", dataFile(cfg, "rozetes"))
	assert.Equal(t, "ziedai.json", dataFile(cfg, "ziedai"))
}

func TestBuildCatalogReadsSampleData(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.DataDir = "../../data/catalog"
	cfg.Catalog.ImageDir = t.TempDir()

	cat, err := buildCatalog(cfg, nil)
	require.NoError(t, err)

	products, err := cat.Products(context.Background(), "rozetes")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1.56.001", products[0].Code)
	assert.Empty(t, products[0].Images)
}

func TestOpenBackendMemory(t *testing.T) {
	cfg := config.Default()

	be, err := openBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer be.Close()

	require.NoError(t, be.store.Set(context.Background(), "k", []byte("v")))
	got, err := be.store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
	assert.NotNil(t, be.cache)
}

func TestOpenBackendSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.SQLitePath = t.TempDir() + "/store.db"

	be, err := openBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer be.Close()

	require.NoError(t, be.store.Set(context.Background(), "k", []byte("v")))
}
