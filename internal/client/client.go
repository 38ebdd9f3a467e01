// Package client implements the outbound HTTP contract between services:
// one attempt per logical call, a fixed per-client timeout, optional
// verbatim bearer-token forwarding, and a single *PeerError for every
// way a peer can fail. Callers decide explicitly whether to propagate
// or swallow; nothing here retries.
package client

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

	"github.com/estatehub/realty-platform/internal/api/metrics"
)

// DefaultTimeout applies when a caller passes a non-positive timeout.
const DefaultTimeout = 5 * time.Second

// PeerError is the uniform failure type for any call to a sibling
// service: timeouts, refused connections, and non-2xx responses all
// collapse into it. StatusCode is zero for transport-level failures.
type PeerError struct {
	Peer       string
	Op         string
	StatusCode int
	// Message is the peer's {"error": ...} body when one was decodable.
	Message string
	Err     error
}

func (e *PeerError) Error() string {
	if e.StatusCode > 0 {
		if e.Message != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Peer, e.Op, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s %s: status %d", e.Peer, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Peer, e.Op, e.Err)
}

func (e *PeerError) Unwrap() error { return e.Err }

// Client is a minimal HTTP client bound to one peer service.
type Client struct {
	peer    string
	baseURL string
	http    *http.Client
}

// New creates a Client for the peer reachable at baseURL.
func New(peer, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		peer:    peer,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Do performs a single request. body (when non-nil) is JSON-encoded;
// token (when non-empty) is forwarded verbatim as a bearer credential.
// A 2xx response is decoded into out when out is non-nil; anything else
// returns a *PeerError.
func (c *Client) Do(ctx context.Context, method, path string, body any, token string, out any) error {
	_, err := c.do(ctx, method, path, nil, body, token, out)
	return err
}

// DoQuery is Do with URL query parameters attached.
func (c *Client) DoQuery(ctx context.Context, method, path string, query url.Values, out any, token string) error {
	_, err := c.do(ctx, method, path, query, nil, token, out)
	return err
}

// DoStatus is Do but also reports the HTTP status the peer answered
// with, letting wrappers map specific statuses (e.g. 404) to domain
// errors before collapsing the rest into *PeerError.
func (c *Client) DoStatus(ctx context.Context, method, path string, body any, token string, out any) (int, error) {
	return c.do(ctx, method, path, nil, body, token, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, token string, out any) (status int, err error) {
	op := method + " " + path
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.PeerCallsTotal.WithLabelValues(c.peer, op, outcome).Inc()
		metrics.PeerCallDuration.WithLabelValues(c.peer).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, &PeerError{Peer: c.peer, Op: op, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, &PeerError{Peer: c.peer, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &PeerError{Peer: c.peer, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &PeerError{
			Peer:       c.peer,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, &PeerError{Peer: c.peer, Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return resp.StatusCode, nil
}

func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Error
}
