// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the POS server.
type Config struct {
	Port         int           `env:"POS_PORT"          envDefault:"8080"`
	DBPath       string        `env:"POS_DB_PATH"       envDefault:"./data/pos.db"`
	SettingsPath string        `env:"POS_SETTINGS_PATH" envDefault:"./data/settings.yaml"`
	JWTSecret    string        `env:"POS_JWT_SECRET"    envDefault:"dev-secret-change-in-production"`
	TokenTTL     time.Duration `env:"POS_TOKEN_TTL"     envDefault:"12h"`
	LoginRate    float64       `env:"POS_LOGIN_RATE"    envDefault:"1"`
	LoginBurst   int           `env:"POS_LOGIN_BURST"   envDefault:"5"`
	SeedDefaults bool          `env:"POS_SEED_DEFAULTS" envDefault:"true"`
	LogLevel     string        `env:"LOG_LEVEL"         envDefault:"info"`
}

// Load reads optional .env files, then parses the environment into a
// Config. Missing .env files are ignored; variables already set in the
// process environment win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid POS_PORT %d", c.Port)
	case c.DBPath == "":
		return errors.New("POS_DB_PATH is required")
	case c.JWTSecret == "":
		return errors.New("POS_JWT_SECRET is required")
	case c.TokenTTL <= 0:
		return errors.New("POS_TOKEN_TTL must be positive")
	case c.LoginRate <= 0:
		return errors.New("POS_LOGIN_RATE must be positive")
	case c.LoginBurst < 1:
		return errors.New("POS_LOGIN_BURST must be at least 1")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
