package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every backend call, a request either completes
// or fails within it - never hangs. There is no automatic retry, retry
// is always an explicit re-invocation by the caller.
const DefaultTimeout = 15 * time.Second

// Client is the fitrack backend API client. All calls return *APIError
// on failure. A 401 response clears the stored token and fires the
// OnUnauthorized callback, so the owner can route back to login.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokenStore TokenStore

	// OnUnauthorized gets called (if set) whenever the backend rejects
	// the credential. The token is already cleared at that point.
	OnUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithOnUnauthorized(onUnauthorized func()) Option {
	return func(c *Client) {
		c.OnUnauthorized = onUnauthorized
	}
}

func NewClient(baseURL string, tokenStore TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokenStore: tokenStore,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one request against the backend. A nil out means the caller
// does not care about the response body. Returns the response status
// code alongside the error so callers can special-case e.g. 204.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out any) (int, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		reqJson, err := json.Marshal(reqBody)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(reqJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokenStore.Token()
	if err != nil {
		return 0, fmt.Errorf("get token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, transportError(path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, transportError(path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokenStore.Clear(); err != nil {
			log.Errorf("failed to clear token after 401: %s", err)
		}
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return resp.StatusCode, apiErrorFromResponse(path, resp.StatusCode, respBytes)
	}

	if resp.StatusCode >= 400 {
		return resp.StatusCode, apiErrorFromResponse(path, resp.StatusCode, respBytes)
	}

	if out != nil && len(respBytes) > 0 && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return resp.StatusCode, fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
