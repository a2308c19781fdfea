package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

func (c *Config) validate() error {
	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateTraversal(); err != nil {
		return err
	}

	return c.validateSource()
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Loopback for local use; 0.0.0.0/:: when a container boundary fronts the server.
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", c.LogFormat)
	}

	return nil
}

func (c *Config) validateTraversal() error {
	if c.MaxDepthLimit < 1 || c.MaxDepthLimit > 10000 {
		return fmt.Errorf("MAX_DEPTH_LIMIT must be between 1 and 10000")
	}

	if c.DefaultMaxDepth < 0 || c.DefaultMaxDepth > c.MaxDepthLimit {
		return fmt.Errorf("DEFAULT_MAX_DEPTH must be between 0 and MAX_DEPTH_LIMIT (%d)", c.MaxDepthLimit)
	}

	if c.TraversalRate < 1 || c.TraversalRate > 10000 {
		return fmt.Errorf("TRAVERSAL_RATE must be between 1 and 10000")
	}

	return nil
}

func (c *Config) validateSource() error {
	if c.SourceTimeout <= 0 || c.SourceTimeout > 10*time.Minute {
		return fmt.Errorf("SOURCE_TIMEOUT must be between 0s and 10m")
	}

	for _, e := range c.AllowedSources {
		if strings.ContainsAny(e, "*?[]") {
			return fmt.Errorf("ALLOWED_SOURCES entries are exact locators or prefixes ending in '/', got %q", e)
		}
	}

	if c.WatchSource && c.GraphSource == "" {
		return fmt.Errorf("WATCH_SOURCE requires GRAPH_SOURCE")
	}

	if c.WatchSource && isRemote(c.GraphSource) {
		return fmt.Errorf("WATCH_SOURCE only supports file sources, got %q", c.GraphSource)
	}

	return nil
}

// isRemote reports whether locator is fetched over HTTP.
func isRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}
