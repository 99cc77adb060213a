// Package config loads menulink settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default] with environment
// overrides applied. Example file:
//
//	base_url   = "https://menu.example.com"
//	output_dir = "qr-codes"
//
//	[restaurant]
//	id   = "R1"
//	name = "Trattoria Uno"
//	logo = "https://cdn.example.com/logo.png"
//
//	[qr]
//	export_size = 400
//	timeout     = "10s"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[[categories]]
//	id = "C9"
//	name = "Drinks"
package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/integrations/qrserver"
	"github.com/matzehuels/menulink/pkg/restaurant"
)

const (
	appName = "menulink"

	// EnvRestaurantID overrides restaurant.id.
	EnvRestaurantID = "MENULINK_RESTAURANT_ID"

	// EnvBaseURL overrides base_url.
	EnvBaseURL = "MENULINK_BASE_URL"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	BaseURL    string             `toml:"base_url"`
	OutputDir  string             `toml:"output_dir"`
	QR         QRConfig           `toml:"qr"`
	Cache      CacheConfig        `toml:"cache"`
	Restaurant restaurant.Context `toml:"restaurant"`
	Categories []restaurant.Entry `toml:"categories"`
	Items      []restaurant.Entry `toml:"items"`
}

// QRConfig configures the QR rendering endpoint.
type QRConfig struct {
	Endpoint    string        `toml:"endpoint"`
	ExportSize  int           `toml:"export_size"`
	PreviewSize int           `toml:"preview_size"`
	Margin      int           `toml:"margin"`
	Timeout     time.Duration `toml:"timeout"`
}

// CacheConfig selects and configures the fetch cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		QR: QRConfig{
			Endpoint:    qrserver.DefaultEndpoint,
			ExportSize:  qrserver.ExportSize,
			PreviewSize: qrserver.PreviewSize,
			Margin:      qrserver.DefaultMargin,
			Timeout:     10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     7 * 24 * time.Hour,
		},
	}
}

// Catalog returns the configured menu catalog.
func (c *Config) Catalog() *restaurant.Catalog {
	return &restaurant.Catalog{Categories: c.Categories, Items: c.Items}
}

// DefaultPath returns $XDG_CONFIG_HOME/menulink/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/menulink, falling back to ~/.cache.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads path (or the default location when empty), applies defaults and
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve config path")
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvRestaurantID)); v != "" {
		c.Restaurant.ID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
}

// Validate fills zero values with defaults and rejects invalid settings.
// The restaurant id is not required here; commands that encode links check it.
func (c *Config) Validate() error {
	d := Default()
	if c.QR.Endpoint == "" {
		c.QR.Endpoint = d.QR.Endpoint
	}
	if c.QR.ExportSize == 0 {
		c.QR.ExportSize = d.QR.ExportSize
	}
	if c.QR.PreviewSize == 0 {
		c.QR.PreviewSize = d.QR.PreviewSize
	}
	if c.QR.Timeout == 0 {
		c.QR.Timeout = d.QR.Timeout
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = d.Cache.Backend
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = d.Cache.TTL
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}

	if c.BaseURL != "" {
		if err := errors.ValidateURL(c.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "base_url")
		}
	}
	if err := errors.ValidateURL(c.QR.Endpoint); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "qr.endpoint")
	}
	if c.QR.ExportSize < 0 || c.QR.PreviewSize < 0 || c.QR.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "qr sizes and margin must not be negative")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Restaurant.ID != "" {
		if err := c.Restaurant.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "restaurant.id")
		}
	}
	return c.Catalog().Validate()
}

// Save writes c as TOML to path, creating parent directories.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "write %s", path)
	}
	return nil
}
