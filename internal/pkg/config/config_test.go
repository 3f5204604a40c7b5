package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 300*time.Millisecond, cfg.LoadMoreDelay)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	data := []byte(`
http_addr: ":9000"
load_more_delay: 50ms
storage:
  driver: sqlite
  sqlite_path: /tmp/a.db
catalog:
  categories:
    - key: lubu-apvadai
      title: Lubų apvadai
      data_file: lubu-apvadai.json
      max_images: 3
mail:
  user: shop@example.com
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("STORAGE_DRIVER", "redis")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 50*time.Millisecond, cfg.LoadMoreDelay)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver, "env wins over file")
	assert.Equal(t, "/tmp/a.db", cfg.Storage.SQLitePath)
	require.Len(t, cfg.Catalog.Categories, 1)
	assert.Equal(t, 3, cfg.Catalog.Categories[0].MaxImages)
	assert.Equal(t, "shop@example.com", cfg.Mail.MailFrom())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "etcd")

	_, err := Load("")
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestMailFrom_PrefersExplicitSender(t *testing.T) {
	m := MailConfig{User: "relay@example.com", From: "Dekoratoriai <info@example.com>"}
	assert.Equal(t, "Dekoratoriai <info@example.com>", m.MailFrom())
}
