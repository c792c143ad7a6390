package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is used when Config.BaseURL is empty.
	DefaultBaseURL = "http://localhost:8080/api/v1"

	// maxResponseSize is the maximum allowed response body size (10MB)
	maxResponseSize = 10 * 1024 * 1024
)

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

type tokenSourceKey struct{}

// WithTokenSource returns a context whose requests authenticate with ts. The
// console installs the browser session here so one Client serves every user.
func WithTokenSource(ctx context.Context, ts TokenSource) context.Context {
	return context.WithValue(ctx, tokenSourceKey{}, ts)
}

func tokenSourceFrom(ctx context.Context) TokenSource {
	ts, _ := ctx.Value(tokenSourceKey{}).(TokenSource)
	return ts
}

// ErrorHook observes every failed call before the error is returned to the
// caller. It must not block.
type ErrorHook func(ctx context.Context, err *Error)

// Config holds Client construction parameters.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Debug     bool
	OnError   ErrorHook
	Transport http.RoundTripper
}

// Client is the HTTP client for the inventory REST API. Resource groups hang
// off it as fields.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
	onError    ErrorHook

	Auth       *AuthAPI
	Products   *ProductAPI
	Categories *CategoryAPI
	Suppliers  *SupplierAPI
	Orders     *OrderAPI
}

// NewClient constructs a Client with sane defaults.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: cfg.Transport},
		baseURL:    baseURL,
		debug:      cfg.Debug,
		onError:    cfg.OnError,
	}
	c.Auth = &AuthAPI{c: c}
	c.Products = &ProductAPI{c: c}
	c.Categories = &CategoryAPI{c: c}
	c.Suppliers = &SupplierAPI{c: c}
	c.Orders = &OrderAPI{c: c}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// doRequest sends one JSON request and decodes a 2xx body into result (which
// may be nil). Every failure is returned as *Error after the hook has seen it.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	err := c.send(ctx, method, path, query, body, result)
	if err != nil {
		if c.onError != nil {
			c.onError(ctx, err)
		}
		return err
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, result any) *Error {
	setupErr := func(err error) *Error {
		return &Error{Kind: KindSetup, Method: method, Path: path, Err: err}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return setupErr(fmt.Errorf("failed to marshal request: %w", err))
		}
	}

	if c.debug {
		ev := log.Debug().Str("method", method).Str("endpoint", endpoint)
		if payload != nil {
			ev = ev.RawJSON("request", sanitizeForLog(payload))
		}
		ev.Msg("[INVENTORY] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return setupErr(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if ts := tokenSourceFrom(ctx); ts != nil {
		token, err := ts.Token(ctx)
		if err != nil {
			return setupErr(fmt.Errorf("failed to read token: %w", err))
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNoResponse, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{Kind: KindNoResponse, Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", path).
			Int("status_code", resp.StatusCode).
			RawJSON("response", sanitizeForLog(respBody)).
			Msg("[INVENTORY] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(method, path, resp.StatusCode, respBody)
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return setupErr(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// sanitizeForLog masks credentials in a JSON payload. Non-object bodies are
// replaced by a short marker so RawJSON stays valid.
func sanitizeForLog(data []byte) []byte {
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte(`null`)
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return []byte(`{"_error": "failed to parse for sanitization"}`)
	}
	sanitizeValue(obj, []string{"password", "token", "secret"})
	sanitized, err := json.Marshal(obj)
	if err != nil {
		return []byte(`{"_error": "failed to marshal sanitized data"}`)
	}
	return sanitized
}

func sanitizeValue(v any, sensitive []string) {
	switch t := v.(type) {
	case map[string]any:
		for key, value := range t {
			lower := strings.ToLower(key)
			masked := false
			for _, s := range sensitive {
				if strings.Contains(lower, s) {
					t[key] = "***MASKED***"
					masked = true
					break
				}
			}
			if !masked {
				sanitizeValue(value, sensitive)
			}
		}
	case []any:
		for _, item := range t {
			sanitizeValue(item, sensitive)
		}
	}
}
