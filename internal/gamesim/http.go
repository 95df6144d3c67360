package gamesim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/benchcoach/internal/domain/types"
)

const idempotencyHeader = "Idempotency-Key"

// HTTPClient wraps http.Client with the service base URL.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

type kindsResponse struct {
	Kinds []types.KindView `json:"kinds"`
}

type eventsResponse struct {
	Events []types.EventView `json:"events"`
	Count  int               `json:"count"`
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do sends a request; mutations carry a fresh idempotency key.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	key := ""
	if method != http.MethodGet {
		key = uuid.NewString()
	}
	return c.send(ctx, method, path, key, body, out)
}

// send sends body as JSON (when non-nil) and decodes the response into out (when non-nil).
func (c *HTTPClient) send(ctx context.Context, method, path, key string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

// view sends a mutation and returns the resulting game view.
func (c *HTTPClient) view(ctx context.Context, method, path string, body any) (types.GameView, error) {
	var v types.GameView
	err := c.do(ctx, method, path, body, &v)
	return v, err
}

// keyed sends a mutation under a caller-chosen idempotency key.
func (c *HTTPClient) keyed(ctx context.Context, method, path, key string, body any) (types.GameView, error) {
	var v types.GameView
	err := c.send(ctx, method, path, key, body, &v)
	return v, err
}

func (c *HTTPClient) health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) game(ctx context.Context) (types.GameView, error) {
	return c.view(ctx, http.MethodGet, "/game", nil)
}

func (c *HTTPClient) stats(ctx context.Context) (types.StatsView, error) {
	var s types.StatsView
	err := c.do(ctx, http.MethodGet, "/stats", nil, &s)
	return s, err
}

func (c *HTTPClient) events(ctx context.Context) (eventsResponse, error) {
	var e eventsResponse
	err := c.do(ctx, http.MethodGet, "/events", nil, &e)
	return e, err
}

func (c *HTTPClient) kinds(ctx context.Context) ([]types.KindView, error) {
	var k kindsResponse
	err := c.do(ctx, http.MethodGet, "/kinds", nil, &k)
	return k.Kinds, err
}
