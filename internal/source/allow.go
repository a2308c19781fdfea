package source

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Allowlist decides which locators a request may name. Entries are exact locators,
// or directory and URL prefixes when they end in "/".
type Allowlist struct {
	exact    map[string]struct{}
	dirs     []string
	prefixes []string
}

// NewAllowlist builds an Allowlist from entries. Blank entries are skipped.
func NewAllowlist(entries ...string) *Allowlist {
	a := &Allowlist{exact: make(map[string]struct{}, len(entries))}

	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}

		prefix := strings.HasSuffix(e, "/")

		switch {
		case IsRemote(e) && prefix:
			a.prefixes = append(a.prefixes, e)
		case IsRemote(e):
			a.exact[e] = struct{}{}
		case prefix:
			if dir, ok := localPath(e); ok {
				a.dirs = append(a.dirs, dir+string(filepath.Separator))
			}
		default:
			if p, ok := localPath(e); ok {
				a.exact[p] = struct{}{}
			}
		}
	}

	return a
}

// Allows reports whether locator matches an entry.
func (a *Allowlist) Allows(locator string) bool {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return false
	}

	if IsRemote(locator) {
		return a.allowsRemote(locator)
	}

	p, ok := localPath(locator)
	if !ok {
		return false
	}

	if _, ok := a.exact[p]; ok {
		return true
	}

	for _, dir := range a.dirs {
		if strings.HasPrefix(p, dir) {
			return true
		}
	}

	return false
}

func (a *Allowlist) allowsRemote(locator string) bool {
	if _, ok := a.exact[locator]; ok {
		return true
	}

	u, err := url.Parse(locator)
	if err != nil || u.User != nil || hasDotSegment(u.Path) || hasDotSegment(u.RawPath) {
		return false
	}

	for _, prefix := range a.prefixes {
		if strings.HasPrefix(locator, prefix) {
			return true
		}
	}

	return false
}

// localPath returns the absolute, cleaned form of a file locator.
func localPath(locator string) (string, bool) {
	p, err := filepath.Abs(strings.TrimPrefix(locator, "file://"))
	if err != nil {
		return "", false
	}

	return p, true
}

func hasDotSegment(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." || strings.EqualFold(seg, "%2e%2e") {
			return true
		}
	}

	return false
}
