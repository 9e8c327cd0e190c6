// Package api is the sole egress to the remote task service. It owns the
// cookie session, echoes the anti-forgery token, and normalizes every wire
// shape and every failure before anything above it sees them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL points at the service's /api root; override with
	// TASKDECK_BASE_URL or --base-url.
	DefaultBaseURL = "http://157.245.237.73:8085/api"

	csrfCookieName = "XSRF-TOKEN"
	csrfHeaderName = "X-XSRF-TOKEN"
	csrfBootPath   = "/sanctum/csrf-cookie"

	// SessionExpiredMessage supersedes any server-provided detail on a 401.
	SessionExpiredMessage = "Your session has expired. Please log in again."

	genericErrorMessage = "An unknown API error occurred."
)

// ErrUnauthorized is wrapped by every 401 failure so callers can test with
// errors.Is without string matching.
var ErrUnauthorized = errors.New("unauthorized")

// Error is the single failure shape the adapter returns. Raw transport
// errors never cross the adapter boundary.
type Error struct {
	Status  int // HTTP status, 0 for transport failures
	Message string
	err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.err }

// Client talks to the remote service over a cookie-based session held in an
// in-memory jar. It is safe for use from multiple goroutines.
type Client struct {
	base *url.URL
	http *http.Client

	// onUnauthorized is invoked once per 401 response. The adapter does not
	// navigate anywhere itself; a single top-level listener owns that.
	onUnauthorized func()
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: u,
		http: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// OnUnauthorized registers the listener invoked on any 401 response.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// BaseURL reports the configured /api root.
func (c *Client) BaseURL() string { return c.base.String() }

// csrfToken reads the anti-forgery token the server planted in a
// client-visible cookie. Empty when the cookie is absent.
func (c *Client) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == csrfCookieName {
			if v, err := url.QueryUnescape(ck.Value); err == nil {
				return v
			}
			return ck.Value
		}
	}
	return ""
}

// bootstrapCSRF asks the server to set the anti-forgery cookie. Called
// before login/register; the session endpoints reject requests without it.
func (c *Client) bootstrapCSRF(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, csrfBootPath, nil, nil, nil)
}

// do performs one request/response cycle: JSON out, JSON in, failures
// normalized to *Error. out may be nil for operations with no payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: err.Error(), err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return &Error{Message: err.Error(), err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.csrfToken(); tok != "" {
		req.Header.Set(csrfHeaderName, tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = genericErrorMessage
		}
		return &Error{Message: msg, err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: genericErrorMessage, err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Status: resp.StatusCode, Message: SessionExpiredMessage, err: ErrUnauthorized}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: genericErrorMessage, err: err}
	}
	return nil
}

// errorMessage extracts the server's message field; falls back to the HTTP
// status text, then to the generic message.
func errorMessage(raw []byte, status string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if m := strings.TrimSpace(body.Message); m != "" {
			return m
		}
	}
	if s := strings.TrimSpace(status); s != "" {
		return s
	}
	return genericErrorMessage
}

// Ptr is a convenience for building partial task drafts.
func Ptr[T any](v T) *T { return &v }
