// Package httpclient provides the HTTP client shared by registry and download adapters.
package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxErrorBody = 512

// Client issues GET requests with a fixed user agent and maps HTTP failures to domain errors.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client with the given user agent and per-request timeout.
func New(userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	return NewWithHTTPClient(userAgent, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a Client around an existing http.Client (used for testing).
func NewWithHTTPClient(userAgent string, client *http.Client) *Client {
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	return &Client{http: client, userAgent: userAgent}
}

// Get performs a GET request. The caller must close the body of a successful response.
// A 404 fails with ErrNotFound and any other non-2xx status with ErrNetwork.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", url)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", url)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp, nil
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "remote resource does not exist"), "url", url)
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := zerr.With(zerr.Wrap(domain.ErrNetwork, "unexpected status"), "status_code", resp.StatusCode)
	apiErr = zerr.With(apiErr, "url", url)
	if body := strings.TrimSpace(string(snippet)); body != "" {
		apiErr = zerr.With(apiErr, "body", body)
	}
	return nil, apiErr
}

// GetJSON performs a GET request and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrNetwork, "failed to decode response"), "url", url)
	}
	return nil
}

// GetString performs a GET request and returns the trimmed body.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrNetwork, "failed to read response"), "url", url)
	}
	return strings.TrimSpace(string(body)), nil
}
