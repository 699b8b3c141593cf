// Package config loads the generatepdfs CLI settings from the environment
// and an optional .env file.
package config

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds CLI configuration.
type Config struct {
	APIToken  string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	LogLevel  string
	LogFormat string
}

// ErrMissingToken is returned when GENERATEPDFS_API_TOKEN is unset.
var ErrMissingToken = errors.New("config: GENERATEPDFS_API_TOKEN is required")

// Load reads configuration from the environment. Variables found in the
// given env files (default ".env") are added without overriding the
// environment; missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GENERATEPDFS_BASE_URL", "https://api.generatepdfs.com")
	v.SetDefault("GENERATEPDFS_TIMEOUT_SECONDS", 30)
	v.SetDefault("GENERATEPDFS_RATE_LIMIT", 0)
	v.SetDefault("GENERATEPDFS_RATE_BURST", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	cfg := &Config{
		APIToken:  strings.TrimSpace(v.GetString("GENERATEPDFS_API_TOKEN")),
		BaseURL:   v.GetString("GENERATEPDFS_BASE_URL"),
		Timeout:   time.Duration(v.GetInt("GENERATEPDFS_TIMEOUT_SECONDS")) * time.Second,
		RateLimit: v.GetFloat64("GENERATEPDFS_RATE_LIMIT"),
		RateBurst: v.GetInt("GENERATEPDFS_RATE_BURST"),
		LogLevel:  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
	}
	if cfg.APIToken == "" {
		return nil, ErrMissingToken
	}
	return cfg, nil
}

// Level maps LogLevel to a slog level. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds a text or JSON logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
