package piranha

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for the data layer.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string used by the SQL stores.
	DatabaseURL string `yaml:"database_url"`

	// Redis configures the optional Redis cache backend.
	Redis RedisConfig `yaml:"redis"`

	// CacheEnabled toggles model caching in the repository layer.
	CacheEnabled bool `yaml:"cache_enabled"`

	// CacheTTL is how long cached models live before expiring.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// RedisConfig holds connection settings for the Redis cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DatabaseURL:  "postgres://localhost:5432/piranha?sslmode=disable",
		Redis:        RedisConfig{Addr: "localhost:6379"},
		CacheEnabled: true,
		CacheTTL:     10 * time.Minute,
	}
}

// fileConfig mirrors Config with pointer fields so that keys absent from
// the file can be told apart from zero values. Durations are parsed from
// strings ("10m", "1h30m").
type fileConfig struct {
	DatabaseURL *string `yaml:"database_url"`
	Redis       struct {
		Addr     *string `yaml:"addr"`
		Password *string `yaml:"password"`
		DB       *int    `yaml:"db"`
	} `yaml:"redis"`
	CacheEnabled *bool   `yaml:"cache_enabled"`
	CacheTTL     *string `yaml:"cache_ttl"`
}

// LoadConfig reads a YAML configuration file, overlaying it on top of
// DefaultConfig. Missing keys keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("piranha: read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("piranha: parse config %s: %w", path, err)
	}

	if fc.DatabaseURL != nil {
		cfg.DatabaseURL = *fc.DatabaseURL
	}
	if fc.Redis.Addr != nil {
		cfg.Redis.Addr = *fc.Redis.Addr
	}
	if fc.Redis.Password != nil {
		cfg.Redis.Password = *fc.Redis.Password
	}
	if fc.Redis.DB != nil {
		cfg.Redis.DB = *fc.Redis.DB
	}
	if fc.CacheEnabled != nil {
		cfg.CacheEnabled = *fc.CacheEnabled
	}
	if fc.CacheTTL != nil {
		ttl, parseErr := time.ParseDuration(*fc.CacheTTL)
		if parseErr != nil {
			return cfg, fmt.Errorf("piranha: parse config %s: cache_ttl: %w", path, parseErr)
		}
		cfg.CacheTTL = ttl
	}
	return cfg, nil
}
