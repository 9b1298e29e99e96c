// Package remote is the HTTP client for the gridboard layout store.
//
// [Client] implements the Remote leg of the persistence chain against the
// API served by `gridboard serve`:
//
//	GET    /api/layouts/{breakpoint}  -> {"layout": [...], "revision": "...", "updatedAt": "..."}
//	PUT    /api/layouts/{breakpoint}  <- [...]
//	DELETE /api/layouts/{breakpoint}
//
// Requests carry the owner in the X-Gridboard-User header.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/httputil"
	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/persist"
)

// OwnerHeader names the request header that carries the layout owner.
const OwnerHeader = "X-Gridboard-User"

// Defaults for a new Client.
const (
	DefaultAttempts   = 1
	DefaultRetryDelay = 200 * time.Millisecond
	DefaultOwner      = "local"
)

// maxResponseSize bounds the layout document a server may return.
const maxResponseSize = 1 << 20

// Client talks to one layout store on behalf of one owner.
type Client struct {
	baseURL    string
	owner      string
	http       *http.Client
	attempts   int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAttempts sets how many times a transient failure is tried.
func WithAttempts(n int) Option {
	return func(c *Client) { c.attempts = max(n, 1) }
}

// WithRetryDelay sets the first backoff delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// New creates a client for the store at baseURL. An empty owner means
// DefaultOwner.
func New(baseURL, owner string, opts ...Option) (*Client, error) {
	if err := apperr.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if owner == "" {
		owner = DefaultOwner
	}
	if err := apperr.ValidateOwner(owner); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		owner:      owner,
		http:       http.DefaultClient,
		attempts:   DefaultAttempts,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Owner returns the owner the client acts for.
func (c *Client) Owner() string { return c.owner }

// BaseURL returns the store URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Document is a stored layout as returned by GET.
type Document struct {
	Layout    layout.Layout `json:"layout"`
	Revision  string        `json:"revision,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt,omitzero"`
}

type document struct {
	Layout    json.RawMessage `json:"layout"`
	Revision  string          `json:"revision"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Load returns the stored layout for bp. A store without a document for bp
// returns an empty layout.
func (c *Client) Load(ctx context.Context, bp layout.Breakpoint) (layout.Layout, error) {
	doc, err := c.Get(ctx, bp)
	if err != nil {
		return nil, err
	}
	return doc.Layout, nil
}

// Get returns the stored document for bp, including its revision.
func (c *Client) Get(ctx context.Context, bp layout.Breakpoint) (*Document, error) {
	var doc *Document
	err := c.do(ctx, http.MethodGet, bp, nil, func(body []byte) error {
		var raw document
		if err := json.Unmarshal(body, &raw); err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidLayout, err, "decode layout document")
		}
		l := layout.Layout{}
		if len(raw.Layout) > 0 {
			var err error
			if l, err = layout.Unmarshal(raw.Layout); err != nil {
				return err
			}
		}
		doc = &Document{Layout: l, Revision: raw.Revision, UpdatedAt: raw.UpdatedAt}
		return nil
	})
	return doc, err
}

// Save replaces the stored layout for bp.
func (c *Client) Save(ctx context.Context, bp layout.Breakpoint, l layout.Layout) error {
	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, bp, data, nil)
}

// Delete removes the stored layout for bp, so the next load falls back to
// the local cache or the defaults.
func (c *Client) Delete(ctx context.Context, bp layout.Breakpoint) error {
	return c.do(ctx, http.MethodDelete, bp, nil, nil)
}

// do sends one request, retrying transient failures. decode, if set, gets
// the body of a successful response.
func (c *Client) do(ctx context.Context, method string, bp layout.Breakpoint, payload []byte, decode func([]byte) error) error {
	endpoint := c.baseURL + "/api/layouts/" + url.PathEscape(bp.String())
	u, err := url.Parse(endpoint)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "bad store URL")
	}

	return httputil.Retry(ctx, c.attempts, c.retryDelay, func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return err
		}
		req.Header.Set(OwnerHeader, c.owner)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, method, u.Host, u.Path)
		start := time.Now()

		resp, err := c.http.Do(req)
		if err != nil {
			hooks.OnError(ctx, method, u.Host, u.Path, err)
			return transportError(ctx, method, endpoint, err)
		}
		defer resp.Body.Close()
		hooks.OnResponse(ctx, method, u.Host, u.Path, resp.StatusCode, time.Since(start))

		if err := httputil.CheckResponse(resp); err != nil {
			return statusError(err)
		}
		if decode == nil {
			return nil
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return &httputil.RetryableError{Err: apperr.Wrap(apperr.ErrCodeNetwork, err, "read response")}
		}
		return decode(data)
	})
}

func transportError(ctx context.Context, method, endpoint string, err error) error {
	if ctx.Err() != nil {
		// The caller gave up; retrying cannot help.
		return apperr.Wrap(apperr.ErrCodeTimeout, err, "%s %s", method, endpoint)
	}
	return &httputil.RetryableError{Err: apperr.Wrap(apperr.ErrCodeNetwork, err, "%s %s", method, endpoint)}
}

// statusError maps a non-2xx response to a coded error, keeping the
// retryable marker on transient statuses.
func statusError(err error) error {
	var se *httputil.StatusError
	if !errors.As(err, &se) {
		return err
	}
	code := apperr.ErrCodeNetwork
	switch {
	case se.StatusCode == http.StatusNotFound:
		code = apperr.ErrCodeNotFound
	case se.StatusCode == http.StatusTooManyRequests:
		code = apperr.ErrCodeRateLimited
	case se.StatusCode == http.StatusRequestEntityTooLarge:
		code = apperr.ErrCodeQuotaExceeded
	case se.StatusCode >= 400 && se.StatusCode < 500:
		code = apperr.ErrCodeInvalidInput
	}
	wrapped := apperr.Wrap(code, se, "layout store returned %d", se.StatusCode)
	var re *httputil.RetryableError
	if errors.As(err, &re) {
		return &httputil.RetryableError{Err: wrapped}
	}
	return wrapped
}

var _ persist.Remote = (*Client)(nil)
