// Package archive is the outbound REST client for the archive backend. All
// response decoding happens here, at the boundary, into explicit record
// structs so the rest of the system is isolated from backend shape drift.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend request client-side.
const DefaultTimeout = 15 * time.Second

// ErrNotFound indicates the backend has no record for the requested id.
var ErrNotFound = errors.New("record not found")

// ErrUnavailable indicates the backend failed or answered with an
// unexpected status. List callers degrade to empty results on it.
var ErrUnavailable = errors.New("archive backend unavailable")

// Client issues JSON requests against the archive backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:5000". A non-positive timeout falls back to
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetJSON fetches path (plus optional query) and decodes the body into out.
// The request is bounded by the client timeout and aborts when ctx is
// cancelled, so a navigated-away caller tears down its in-flight fetches.
// PRE: path starts with "/"
// POST: 404 maps to ErrNotFound; other non-2xx statuses, transport failures
// and malformed bodies map to ErrUnavailable
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s: status %d", ErrUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrUnavailable, path, err)
	}
	return nil
}
