package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for writes to settle before reloading.
const DefaultDebounce = 250 * time.Millisecond

// ChangeHandler is called once per settled burst of changes to the watched file.
type ChangeHandler func(ctx context.Context)

// Watcher reloads a graph file when it changes on disk. It watches the parent
// directory so editors that replace files by rename are still seen.
type Watcher struct {
	path     string
	handler  ChangeHandler
	debounce time.Duration
	log      *logrus.Logger
}

// NewWatcher creates a Watcher for the file at locator.
func NewWatcher(locator string, handler ChangeHandler, debounce time.Duration, log *logrus.Logger) (*Watcher, error) {
	if IsRemote(locator) {
		return nil, fmt.Errorf("cannot watch remote source %q", locator)
	}

	abs, err := filepath.Abs(strings.TrimPrefix(locator, "file://"))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", locator, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{path: abs, handler: handler, debounce: debounce, log: log}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close() //nolint:errcheck // shutdown path.

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	w.log.WithField("source", w.path).Info("watching graph source")

	var timer *time.Timer
	var timerC <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.log.WithField("source", w.path).Info("graph source changed")
			w.handler(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watching graph source")
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
