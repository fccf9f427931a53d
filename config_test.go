package piranha_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	piranha "github.com/hfz-r/piranha.core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := piranha.DefaultConfig()

	if cfg.DatabaseURL == "" {
		t.Error("expected a default database URL")
	}
	if !cfg.CacheEnabled {
		t.Error("expected caching enabled by default")
	}
	if cfg.CacheTTL <= 0 {
		t.Errorf("expected a positive default cache TTL, got %v", cfg.CacheTTL)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piranha.yaml")
	data := []byte("database_url: postgres://db.internal:5432/cms\ncache_ttl: 1m\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := piranha.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db.internal:5432/cms" {
		t.Errorf("database URL = %q", cfg.DatabaseURL)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("cache TTL = %v, want 1m", cfg.CacheTTL)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Redis.Addr != piranha.DefaultConfig().Redis.Addr {
		t.Errorf("redis addr = %q, want default", cfg.Redis.Addr)
	}
	if !cfg.CacheEnabled {
		t.Error("cache_enabled default lost")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := piranha.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
