// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto the Stamtavla runtime settings.

It uses 'caarlos0/env' so every setting is declared once, next to its
variable name and default:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The loaded [Config] is passed to constructors and never stored globally.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Stamtavla API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Export cache (Redis)
	RedisURL       string        `env:"REDIS_URL,required,notEmpty"`
	ExportCacheTTL time.Duration `env:"EXPORT_CACHE_TTL" envDefault:"10m"`

	// Editor tokens are verified with the public key. The private key is only
	// needed by the CLI that issues them.
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// GEDCOM interchange
	TreeName       string `env:"TREE_NAME"        envDefault:"Stamtavla"`
	GedcomSource   string `env:"GEDCOM_SOURCE"    envDefault:"STAMTAVLA"`
	ImportMaxBytes int64  `env:"IMPORT_MAX_BYTES" envDefault:"20971520"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.ImportMaxBytes <= 0 {
		return nil, fmt.Errorf("config: IMPORT_MAX_BYTES must be positive, got %d", cfg.ImportMaxBytes)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the origins accepted by CORS outside development.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
