package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// DatabaseURL selects Postgres when set; otherwise the server falls
	// back to a local SQLite file at SQLitePath.
	DatabaseURL string `env:"DB_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"studysets.db"`

	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// AllowSeed gates GET /init. The reseed wipes every collection, so it
	// stays off unless explicitly enabled for the environment.
	AllowSeed bool `env:"ALLOW_SEED"`
}

func Load() (*Config, error) {
	// Load .env file if present; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
