// Package config loads the storefront configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, and environment variables. Environment variables always win so that
// the same file can be shipped to every environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the persistence adapter.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`

	// JWTSecret signs the bearer tokens issued by the identity provider.
	JWTSecret string `yaml:"jwt_secret"`

	TracingEnabled bool `yaml:"tracing_enabled"`

	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Mail    MailConfig    `yaml:"mail"`

	// InquiryLogPath is the SQLite file that records appointment requests.
	// Empty disables the log.
	InquiryLogPath string `yaml:"inquiry_log_path"`

	// LoadMoreDelay is the artificial latency of a listing "load more".
	LoadMoreDelay time.Duration `yaml:"load_more_delay"`

	// ListingSessions caps the number of open listings kept in memory.
	ListingSessions int `yaml:"listing_sessions"`

	// IdempotencyTTL is how long a processed X-Idempotency-Key is remembered.
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl"`
}

type StorageConfig struct {
	Driver     string `yaml:"driver"`
	RedisAddr  string `yaml:"redis_addr"`
	SQLitePath string `yaml:"sqlite_path"`
}

type CatalogConfig struct {
	DataDir  string `yaml:"data_dir"`
	ImageDir string `yaml:"image_dir"`

	// CacheTTL keeps decoded category documents in the shared cache.
	// Zero disables caching.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// Categories overrides the built-in category list when non-empty.
	Categories []CategoryConfig `yaml:"categories"`
}

type CategoryConfig struct {
	Key           string   `yaml:"key"`
	Title         string   `yaml:"title"`
	DataFile      string   `yaml:"data_file"`
	ImageSuffixes []string `yaml:"image_suffixes"`
	MaxImages     int      `yaml:"max_images"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		HTTPAddr:    ":8080",
		ServiceName: "storefront",
		LogLevel:    "info",
		JWTSecret:   "dev-secret",
		Storage: StorageConfig{
			Driver:     DriverMemory,
			RedisAddr:  "localhost:6379",
			SQLitePath: "./data/storefront.db",
		},
		Catalog: CatalogConfig{
			DataDir:  "./data/catalog",
			ImageDir: "./public/images",
			CacheTTL: 5 * time.Minute,
		},
		Mail: MailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		LoadMoreDelay:   300 * time.Millisecond,
		ListingSessions: 4096,
		IdempotencyTTL:  24 * time.Hour,
	}
}

// Load reads the YAML file at path (if any) over the defaults and applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.ServiceName = getEnv("OTEL_SERVICE_NAME", c.ServiceName)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.TracingEnabled = getEnvBool("TRACING_ENABLED", c.TracingEnabled)

	c.Storage.Driver = getEnv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.RedisAddr = getEnv("REDIS_ADDR", c.Storage.RedisAddr)
	c.Storage.SQLitePath = getEnv("SQLITE_PATH", c.Storage.SQLitePath)

	c.Catalog.DataDir = getEnv("CATALOG_DATA_DIR", c.Catalog.DataDir)
	c.Catalog.ImageDir = getEnv("CATALOG_IMAGE_DIR", c.Catalog.ImageDir)

	c.Mail.Host = getEnv("EMAIL_HOST", c.Mail.Host)
	c.Mail.Port = getEnvInt("EMAIL_PORT", c.Mail.Port)
	c.Mail.User = getEnv("EMAIL_USER", c.Mail.User)
	c.Mail.Password = getEnv("EMAIL_PASSWORD", c.Mail.Password)
	c.Mail.From = getEnv("EMAIL_FROM", c.Mail.From)

	c.InquiryLogPath = getEnv("INQUIRY_LOG_PATH", c.InquiryLogPath)
	c.LoadMoreDelay = getEnvDuration("LOAD_MORE_DELAY", c.LoadMoreDelay)
	c.Catalog.CacheTTL = getEnvDuration("CATALOG_CACHE_TTL", c.Catalog.CacheTTL)
	c.IdempotencyTTL = getEnvDuration("IDEMPOTENCY_TTL", c.IdempotencyTTL)
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.JWTSecret == "" {
		return errors.New("config: jwt_secret must not be empty")
	}
	if c.LoadMoreDelay < 0 {
		return errors.New("config: load_more_delay must not be negative")
	}
	if c.Catalog.CacheTTL < 0 || c.IdempotencyTTL < 0 {
		return errors.New("config: cache ttls must not be negative")
	}
	if c.ListingSessions <= 0 {
		return errors.New("config: listing_sessions must be positive")
	}
	for i, cat := range c.Catalog.Categories {
		if cat.Key == "" {
			return fmt.Errorf("config: catalog category #%d has no key", i)
		}
	}
	return nil
}

// MailFrom is the sender address; it falls back to the relay user.
func (m MailConfig) MailFrom() string {
	if m.From != "" {
		return m.From
	}
	return m.User
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}
