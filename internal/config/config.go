package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"levelup/internal/storage"
)

// Config is loaded from the environment. Every field has a workable default
// so `lvl` runs with no setup.
type Config struct {
	// DBPath is the SQLite file; defaults to ~/.levelup.db.
	DBPath string `env:"LVL_DB"`

	// Addr is the HTTP listen address for `lvl serve`.
	Addr string `env:"LVL_ADDR" envDefault:":8097"`

	// User is the implicit user id for CLI commands.
	User string `env:"LVL_USER" envDefault:"local"`

	// LogLevel is the zap level for the server: debug, info, warn, error.
	LogLevel string `env:"LVL_LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}
