// Package config provides environment-driven configuration for the dotwalk server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all server configuration values.
type Config struct {
	Port            string
	ListenHost      string
	CORSOrigins     []string
	GraphSource     string
	AllowedSources  []string
	LogLevel        string
	LogFormat       string
	DefaultMaxDepth int
	MaxDepthLimit   int
	WatchSource     bool
	SourceTimeout   time.Duration
	TraversalRate   int
}

// LoadDotEnv seeds the process environment from a .env file. Variables already set
// in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOrDefault("PORT", "3040"),
		ListenHost:  envOrDefault("LISTEN_HOST", "127.0.0.1"),
		GraphSource: envOrDefault("GRAPH_SOURCE", ""),
		LogLevel:    strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(envOrDefault("LOG_FORMAT", "text")),
		WatchSource: envOrDefault("WATCH_SOURCE", "false") == "true",
	}

	var err error

	if cfg.DefaultMaxDepth, err = envInt("DEFAULT_MAX_DEPTH", 5); err != nil {
		return nil, err
	}

	if cfg.MaxDepthLimit, err = envInt("MAX_DEPTH_LIMIT", 100); err != nil {
		return nil, err
	}

	if cfg.TraversalRate, err = envInt("TRAVERSAL_RATE", 20); err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(envOrDefault("SOURCE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("SOURCE_TIMEOUT must be a duration like 30s: %w", err)
	}
	cfg.SourceTimeout = timeout

	cfg.AllowedSources = allowedSources(cfg.GraphSource, os.Getenv("ALLOWED_SOURCES"))

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:8000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// NewLogger builds a logrus logger from the configured level and format.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// allowedSources lists the sources requests may name: the configured graph source plus
// the comma-separated extra entries.
func allowedSources(graphSource, extra string) []string {
	var out []string
	if graphSource != "" {
		out = append(out, graphSource)
	}

	for e := range strings.SplitSeq(extra, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}

	return out
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return v, nil
}
