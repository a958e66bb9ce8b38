package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"
)

const (
	CatalogSQLite = "sqlite"
	CatalogStatic = "static"
	CatalogFile   = "file"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env            string `env:"APP_ENV"         envDefault:"development"`
	DBPath         string `env:"DB_PATH"         envDefault:"./dev.db"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"$"`
	Server         ServerConfig
	Catalog        CatalogConfig
	CORS           CORSConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"15"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
}

// CatalogConfig selects where materials, sizes and feature costs come from.
type CatalogConfig struct {
	Source string `env:"CATALOG_SOURCE" envDefault:"sqlite"`
	File   string `env:"CATALOG_FILE"   envDefault:"./catalog.yaml"`
}

// CORSConfig contains CORS policy settings for the JSON API.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// DepConfig exposes the sub-configs to the dig container.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CatalogConfig
	*CORSConfig
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// Missing .env is fine; production injects real environment variables.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	switch cfg.Catalog.Source {
	case CatalogSQLite, CatalogStatic, CatalogFile:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be one of sqlite, static, file; got %q", cfg.Catalog.Source)
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.Catalog,
		&cfg.CORS,
	}
}

// IsDev reports whether the process runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "" || strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// UsesDatabase reports whether the configured catalog is backed by SQLite.
func (c *Config) UsesDatabase() bool {
	return c.Catalog.Source == CatalogSQLite
}
