package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvRestaurantID, "")
	t.Setenv(EnvBaseURL, "")
	path := writeConfig(t, `
base_url = "https://menu.example.com"
output_dir = "out"

[restaurant]
id = "R1"
name = "Trattoria Uno"
logo = "logo.png"

[qr]
margin = 2
timeout = "3s"

[cache]
backend = "none"

[[categories]]
id = "C9"
name = "Drinks"

[[items]]
id = "I3"
name = "Lemonade"
category = "C9"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "https://menu.example.com" || cfg.OutputDir != "out" {
		t.Errorf("top-level = %q %q", cfg.BaseURL, cfg.OutputDir)
	}
	if cfg.Restaurant.ID != "R1" || cfg.Restaurant.LogoRef() != "logo.png" {
		t.Errorf("restaurant = %+v", cfg.Restaurant)
	}
	if cfg.QR.Margin != 2 || cfg.QR.Timeout != 3*time.Second {
		t.Errorf("qr = %+v", cfg.QR)
	}
	if cfg.QR.ExportSize != 400 || cfg.QR.PreviewSize != 300 {
		t.Errorf("qr sizes not defaulted: %+v", cfg.QR)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
	target, err := cfg.Catalog().Target(link.ScopeItem, "I3", true)
	if err != nil || target.DisplayName != "Lemonade" {
		t.Errorf("catalog item = %+v, %v", target, err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvRestaurantID, "")
	t.Setenv(EnvBaseURL, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != CacheFile || cfg.QR.Endpoint == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvRestaurantID, "R42")
	t.Setenv(EnvBaseURL, "https://env.example")
	path := writeConfig(t, "base_url = \"https://file.example\"\n[restaurant]\nid = \"R1\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Restaurant.ID != "R42" || cfg.BaseURL != "https://env.example" {
		t.Errorf("env overrides not applied: id=%q base=%q", cfg.Restaurant.ID, cfg.BaseURL)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv(EnvRestaurantID, "")
	t.Setenv(EnvBaseURL, "")
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "base_url = "},
		{"base url scheme", `base_url = "ftp://x"`},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"negative margin", "[qr]\nmargin = -1"},
		{"restaurant id", "[restaurant]\nid = \"a/b\""},
		{"duplicate category", "[[categories]]\nid = \"C1\"\n[[categories]]\nid = \"C1\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvRestaurantID, "")
	t.Setenv(EnvBaseURL, "")
	cfg := Default()
	cfg.BaseURL = "https://menu.example.com"
	cfg.Restaurant.ID = "R1"

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.BaseURL != cfg.BaseURL || got.Restaurant.ID != "R1" || got.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("round trip = %+v", got)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if p, _ := DefaultPath(); p != filepath.Join("/xdg/config", "menulink", "config.toml") {
		t.Errorf("DefaultPath() = %q", p)
	}
	if p, _ := DefaultCacheDir(); p != filepath.Join("/xdg/cache", "menulink") {
		t.Errorf("DefaultCacheDir() = %q", p)
	}
}
