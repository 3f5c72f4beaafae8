// Package config reads console settings from the environment, after loading
// a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "autek-console-dev-secret"

type Config struct {
	Port string

	// Two API hosts serve the catalog: most resources live on the primary
	// one, colors and product images on the media one.
	APIBaseURL      string
	MediaAPIBaseURL string
	AuthLoginPath   string
	APITimeout      time.Duration

	// DatabaseURL selects PostgreSQL session storage; empty keeps sessions in memory.
	DatabaseURL   string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	LogLevel slog.Level
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:            orDefault(getenv("APP_PORT"), "8080"),
		APIBaseURL:      orDefault(getenv("API_BASE_URL"), "http://3.120.39.1:3000/api"),
		MediaAPIBaseURL: orDefault(getenv("MEDIA_API_BASE_URL"), "http://3.66.28.183:3333/api"),
		AuthLoginPath:   orDefault(getenv("AUTH_LOGIN_PATH"), "/auth/login"),
		DatabaseURL:     getenv("DATABASE_URL"),
		SessionSecret:   orDefault(getenv("SESSION_SECRET"), devSessionSecret),
	}

	var err error
	if cfg.APITimeout, err = duration(getenv("API_TIMEOUT"), 15*time.Second); err != nil {
		return nil, fmt.Errorf("API_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = duration(getenv("SESSION_TTL"), 24*time.Hour); err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if v := getenv("COOKIE_SECURE"); v != "" {
		if cfg.CookieSecure, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("COOKIE_SECURE: %w", err)
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

// UsesDevSecret reports whether cookies are sealed with the built-in development key.
func (c *Config) UsesDevSecret() bool { return c.SessionSecret == devSessionSecret }

func (c *Config) Addr() string { return ":" + c.Port }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func duration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
