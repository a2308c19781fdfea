package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GraphService exposes the loaded graph's raw forms.
type GraphService struct {
	c *Client
}

// Source returns the raw DOT text of the loaded graph and the locator it was read from.
func (s *GraphService) Source(ctx context.Context) (text, locator string, err error) {
	body, header, err := s.c.raw(ctx, http.MethodGet, "/api/v1/graph/source", nil)
	if err != nil {
		return "", "", err
	}
	return string(body), header.Get("X-Graph-Source"), nil
}

// Cypher returns a Cypher import script for the first limit edges (0 for all).
func (s *GraphService) Cypher(ctx context.Context, limit int) (string, error) {
	path := "/api/v1/graph/cypher"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	body, _, err := s.c.raw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
