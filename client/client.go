// Package client provides a typed Go SDK for the dotwalk REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the top-level dotwalk API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client

	Graph *GraphService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a dotwalk client for the given base URL (e.g. "http://localhost:3040").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "dotwalk-go",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	c.Graph = &GraphService{c: c}
	return c
}

// Health returns the liveness check response.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/api/v1/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats returns node and edge counts for the loaded graph.
func (c *Client) Stats(ctx context.Context) (*GraphStats, error) {
	var resp GraphStats
	if err := c.get(ctx, "/api/v1/graph/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reload asks the server to re-read its graph. An empty source re-reads the current one.
func (c *Client) Reload(ctx context.Context, source string) (*GraphStats, error) {
	var resp GraphStats
	if err := c.post(ctx, "/api/v1/graph/reload", &ReloadRequest{Source: source}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Traverse runs a traversal and returns the full report.
func (c *Client) Traverse(ctx context.Context, req *TraversalRequest) (*TraversalReport, error) {
	var resp TraversalReport
	if err := c.post(ctx, "/api/v1/traversals", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TraverseDOT runs a traversal and returns only the rendered DOT and its suggested filename.
func (c *Client) TraverseDOT(ctx context.Context, req *TraversalRequest) (dotText, filename string, err error) {
	params := url.Values{}
	params.Set("start", req.Start)
	if req.Algorithm != "" {
		params.Set("algorithm", req.Algorithm)
	}
	if req.Direction != "" {
		params.Set("direction", req.Direction)
	}
	if req.MaxDepth != nil {
		params.Set("max_depth", strconv.Itoa(*req.MaxDepth))
	}
	if req.Source != "" {
		params.Set("source", req.Source)
	}

	body, header, err := c.raw(ctx, http.MethodGet, "/api/v1/traversals/dot?"+params.Encode(), nil)
	if err != nil {
		return "", "", err
	}

	return string(body), attachmentName(header.Get("Content-Disposition")), nil
}

// attachmentName extracts filename from a Content-Disposition header.
func attachmentName(cd string) string {
	_, name, ok := strings.Cut(cd, "filename=")
	if !ok {
		return ""
	}
	if unq, err := strconv.Unquote(name); err == nil {
		return unq
	}
	return name
}

// raw executes an HTTP request and returns the response body and headers.
func (c *Client) raw(ctx context.Context, method, path string, body any) ([]byte, http.Header, error) {
	u := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, nil, parseAPIError(resp.StatusCode, respBody)
	}

	return respBody, resp.Header, nil
}

// do executes an HTTP request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	respBody, _, err := c.raw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}
