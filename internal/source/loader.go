// Package source reads graph descriptions from files or HTTP endpoints.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/persistorai/dotwalk/internal/models"
)

// maxSourceBytes caps how much of a graph source is read.
const maxSourceBytes = 64 << 20

// Loader reads graph sources. Concurrent loads of the same locator share one read.
type Loader struct {
	client *http.Client
	group  singleflight.Group
	log    *logrus.Logger
}

// NewLoader creates a Loader whose remote fetches time out after timeout.
func NewLoader(timeout time.Duration, log *logrus.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Load returns the text behind locator. Locators starting with http:// or https:// are
// fetched; anything else is read from disk, with an optional file:// prefix stripped.
// Failures are returned as *models.SourceError.
func (l *Loader) Load(ctx context.Context, locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", &models.SourceError{Locator: locator, Err: models.ErrMissingSource}
	}

	v, err, shared := l.group.Do(locator, func() (any, error) {
		return l.read(ctx, locator)
	})
	if err != nil {
		return "", &models.SourceError{Locator: locator, Err: err}
	}

	text, _ := v.(string)

	l.log.WithFields(logrus.Fields{
		"source": locator,
		"bytes":  len(text),
		"shared": shared,
	}).Debug("source.load")

	return text, nil
}

func (l *Loader) read(ctx context.Context, locator string) (string, error) {
	if IsRemote(locator) {
		return l.fetch(ctx, locator)
	}

	path := strings.TrimPrefix(locator, "file://")

	f, err := os.Open(path) //nolint:gosec // operator-supplied graph path.
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only file.

	return readLimited(f)
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // response body.

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return readLimited(resp.Body)
}

func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return "", err
	}

	if len(data) > maxSourceBytes {
		return "", errors.New("graph source exceeds 64 MiB")
	}

	return string(data), nil
}

// IsRemote reports whether locator is fetched over HTTP.
func IsRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}
