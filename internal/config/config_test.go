package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/internal/config"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GRAPH_SOURCE", "testdata/lineage.dot")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000")
	t.Setenv("ALLOWED_SOURCES", "")
}

func TestLoad_ValidConfig(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != "3040" {
		t.Errorf("expected default port 3040, got %s", cfg.Port)
	}

	if cfg.Addr() != "127.0.0.1:3040" {
		t.Errorf("expected addr 127.0.0.1:3040, got %s", cfg.Addr())
	}

	if cfg.GraphSource != "testdata/lineage.dot" {
		t.Errorf("unexpected GraphSource: %s", cfg.GraphSource)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DefaultMaxDepth != 5 || cfg.MaxDepthLimit != 100 {
		t.Errorf("unexpected depth defaults: %d/%d", cfg.DefaultMaxDepth, cfg.MaxDepthLimit)
	}

	if cfg.SourceTimeout != 30*time.Second {
		t.Errorf("unexpected SourceTimeout default: %s", cfg.SourceTimeout)
	}

	if cfg.WatchSource {
		t.Error("expected WatchSource=false by default")
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_CORSOriginsTrimmed(t *testing.T) {
	setValidEnv(t)
	t.Setenv("CORS_ORIGINS", "http://a.test, https://b.test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.test" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_AllowedSources(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.AllowedSources) != 1 || cfg.AllowedSources[0] != "testdata/lineage.dot" {
		t.Errorf("expected only GRAPH_SOURCE by default, got %v", cfg.AllowedSources)
	}

	t.Setenv("ALLOWED_SOURCES", " graphs/ , https://models.example.com/lineage.dot,")

	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"testdata/lineage.dot", "graphs/", "https://models.example.com/lineage.dot"}
	if strings.Join(cfg.AllowedSources, "|") != strings.Join(want, "|") {
		t.Errorf("AllowedSources = %v, want %v", cfg.AllowedSources, want)
	}
}

func TestLoad_ErrorCases(t *testing.T) {
	tests := []struct {
		name         string
		envOverrides map[string]string
		envClear     []string
		wantErr      string
	}{
		{
			name:         "invalid PORT zero",
			envOverrides: map[string]string{"PORT": "0"},
			wantErr:      "PORT must be between 1 and 65535",
		},
		{
			name:         "invalid PORT non-numeric",
			envOverrides: map[string]string{"PORT": "abc"},
			wantErr:      "PORT must be a valid integer",
		},
		{
			name:         "invalid LISTEN_HOST",
			envOverrides: map[string]string{"LISTEN_HOST": "192.168.1.1"},
			wantErr:      "LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers",
		},
		{
			name:         "CORS wildcard",
			envOverrides: map[string]string{"CORS_ORIGINS": "*"},
			wantErr:      "CORS_ORIGINS must not contain wildcard",
		},
		{
			name:         "CORS invalid origin",
			envOverrides: map[string]string{"CORS_ORIGINS": "not-a-url"},
			wantErr:      "CORS_ORIGINS contains invalid origin",
		},
		{
			name:         "bad log level",
			envOverrides: map[string]string{"LOG_LEVEL": "loud"},
			wantErr:      "LOG_LEVEL must be one of",
		},
		{
			name:         "bad log format",
			envOverrides: map[string]string{"LOG_FORMAT": "xml"},
			wantErr:      "LOG_FORMAT must be 'text' or 'json'",
		},
		{
			name:         "default depth non-numeric",
			envOverrides: map[string]string{"DEFAULT_MAX_DEPTH": "deep"},
			wantErr:      "DEFAULT_MAX_DEPTH must be an integer",
		},
		{
			name:         "default depth above limit",
			envOverrides: map[string]string{"DEFAULT_MAX_DEPTH": "20", "MAX_DEPTH_LIMIT": "10"},
			wantErr:      "DEFAULT_MAX_DEPTH must be between 0 and MAX_DEPTH_LIMIT",
		},
		{
			name:         "depth limit zero",
			envOverrides: map[string]string{"MAX_DEPTH_LIMIT": "0"},
			wantErr:      "MAX_DEPTH_LIMIT must be between 1 and 10000",
		},
		{
			name:         "traversal rate zero",
			envOverrides: map[string]string{"TRAVERSAL_RATE": "0"},
			wantErr:      "TRAVERSAL_RATE must be between 1 and 10000",
		},
		{
			name:         "bad timeout",
			envOverrides: map[string]string{"SOURCE_TIMEOUT": "soon"},
			wantErr:      "SOURCE_TIMEOUT must be a duration",
		},
		{
			name:         "allowed sources glob",
			envOverrides: map[string]string{"ALLOWED_SOURCES": "/srv/*.dot"},
			wantErr:      "ALLOWED_SOURCES entries are exact locators",
		},
		{
			name:         "watch without source",
			envOverrides: map[string]string{"WATCH_SOURCE": "true"},
			envClear:     []string{"GRAPH_SOURCE"},
			wantErr:      "WATCH_SOURCE requires GRAPH_SOURCE",
		},
		{
			name:         "watch remote source",
			envOverrides: map[string]string{"WATCH_SOURCE": "true", "GRAPH_SOURCE": "https://example.com/g.dot"},
			wantErr:      "WATCH_SOURCE only supports file sources",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setValidEnv(t)
			for _, k := range tc.envClear {
				t.Setenv(k, "")
			}
			for k, v := range tc.envOverrides {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "DOTWALK_DOTENV_PROBE"

	t.Run("missing file is ignored", func(t *testing.T) {
		if err := config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("seeds unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Unsetenv(key) })

		if err := config.LoadDotEnv(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := os.Getenv(key); got != "from-file" {
			t.Errorf("expected value from file, got %q", got)
		}
	})

	t.Run("existing environment wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(key, "from-env")

		if err := config.LoadDotEnv(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := os.Getenv(key); got != "from-env" {
			t.Errorf("expected environment to win, got %q", got)
		}
	})
}

func TestNewLogger(t *testing.T) {
	setValidEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log := cfg.NewLogger()
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", log.GetLevel())
	}

	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", log.Formatter)
	}
}
