package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for request validation.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingStart   = errors.New("start node is required")
	ErrMissingSource  = errors.New("graph source is required")
	ErrNegativeDepth  = errors.New("max depth must not be negative")
	ErrDepthLimit     = errors.New("max depth exceeds limit")
)

// Sentinel errors for request outcomes.
var (
	ErrSourceUnavailable = errors.New("graph source unavailable")
	ErrStartNodeNotFound = errors.New("start node not found")
	ErrNoGraphLoaded     = errors.New("no graph loaded")
)

// ErrSourceNotAllowed rejects a request-supplied source outside the configured allowlist.
var ErrSourceNotAllowed = fmt.Errorf("%w: graph source is not allowed", ErrInvalidRequest)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%w: %s exceeds maximum length of %d", ErrInvalidRequest, field, maxLen)
}

// SourceError reports that a graph source could not be read.
type SourceError struct {
	Locator string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading graph source %q: %v", e.Locator, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is matches ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }

// StartNodeError reports that no node matched the requested start node.
// Candidates holds the first known identifiers in enumeration order.
type StartNodeError struct {
	Requested  string
	Direction  Direction
	Candidates []NodeID
}

func (e *StartNodeError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, string(c))
	}
	return fmt.Sprintf("start node %q not found in %s graph; examples: %s", e.Requested, e.Direction, strings.Join(names, ", "))
}

// Is matches ErrStartNodeNotFound.
func (e *StartNodeError) Is(target error) bool { return target == ErrStartNodeNotFound }
