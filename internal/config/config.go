// Package config holds the server configuration, parsed from environment
// variables (optionally seeded from a .env file).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Storage backend names accepted in BYTEBANK_STORAGE.
const (
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	Backend string `env:"BYTEBANK_STORAGE" envDefault:"jsonfile"`

	// DataDir is the jsonfile backend's directory; DBPath the sqlite file.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`
	DBPath  string `env:"DB_PATH" envDefault:"./data/bytebank.db"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load reads .env if present, then parses the environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Backend != BackendJSONFile && cfg.Backend != BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return cfg, nil
}
