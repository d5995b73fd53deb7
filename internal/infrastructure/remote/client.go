// Package remote implements the client side of the remote resource service.
// It is the only place that knows the wire contract; everything above it works
// with normalised domain slices.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/core/domain"
)

// Client carries the shared HTTP transport and base URL for all collections.
type Client struct {
	base  string
	httpc *http.Client
	log   zerolog.Logger
}

// NewClient returns a Client for the service at baseURL. No authentication
// headers are sent; the remote contract does not require any.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{Timeout: timeout},
		log:   log,
	}
}

// Ping issues a GET against path and reports reachability. Used by the
// readiness probe only.
func (c *Client) Ping(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodGet, path, nil)
	return err
}

// do runs one request and returns the response body. Every failure mode —
// transport error, non-2xx status, unreadable body — collapses into
// domain.ErrRemote; response status codes are not interpreted beyond
// success/failure. Context cancellation is passed through untouched so callers
// can tell an abandoned call from a failed one.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s %s: %v", domain.ErrRemote, method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s %s: %v", domain.ErrRemote, method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrRemote, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", domain.ErrRemote, method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).
			Msg("remote call rejected")
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrRemote, method, path, resp.StatusCode)
	}

	return data, nil
}
