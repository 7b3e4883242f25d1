// Package client talks to the lawlens backend: form-encoded POSTs in, JSON out.
package client

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

	"github.com/google/uuid"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/pkg/logger"
	"github.com/oakwood-commons/lawlens/pkg/settings"
)

const (
	autocompletePath = "/autocomplete"
	explainPath      = "/explain_term"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 4 << 20
)

// ErrTransport marks failures where no decodable response was received:
// connection errors, timeouts and non-JSON bodies.
var ErrTransport = errors.New("transport error")

// APIError is a JSON response with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
	newID     func() string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRequestIDs replaces the X-Request-ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", baseURL)
	}
	c := &Client{
		base:      u,
		http:      http.DefaultClient,
		timeout:   DefaultTimeout,
		userAgent: settings.CliBinaryName + "/" + settings.VersionInformation.BuildVersion,
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL is the server root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ShareLink is the page URL that deep-links to section.
func (c *Client) ShareLink(section string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawQuery = url.Values{"section": {section}}.Encode()
	return u.String()
}

type suggestResponse struct {
	Suggestions []law.Suggestion `json:"suggestions"`
	Error       string           `json:"error"`
}

// Suggest fetches autocomplete suggestions for query.
func (c *Client) Suggest(ctx context.Context, query string, mode law.SearchMode) ([]law.Suggestion, error) {
	var out suggestResponse
	status, err := c.post(ctx, autocompletePath, url.Values{
		"query":       {query},
		"search_mode": {string(mode)},
	}, &out)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Status: status, Message: out.Error}
	}
	if out.Suggestions == nil {
		return []law.Suggestion{}, nil
	}
	return out.Suggestions, nil
}

type explainResponse struct {
	law.Result
	Error string `json:"error"`
}

// Explain submits a query for a full explanation. selectedTitle is an
// optional hint naming a suggestion the user picked.
func (c *Client) Explain(ctx context.Context, query, selectedTitle string, mode law.SearchMode) (*law.Result, error) {
	var out explainResponse
	status, err := c.post(ctx, explainPath, url.Values{
		"query":          {query},
		"selected_title": {selectedTitle},
		"search_mode":    {string(mode)},
	}, &out)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Status: status, Message: out.Error}
	}
	res := out.Result
	return &res, nil
}

// post sends form and decodes the JSON body into out regardless of status.
func (c *Client) post(ctx context.Context, path string, form url.Values, out any) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := c.newID()
	lgr := logger.FromContext(ctx).WithValues(logger.RequestIDKey, reqID, "path", path)

	endpoint := c.base.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		lgr.V(1).Info("request failed", "error", err.Error())
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: reading response: %w", ErrTransport, err)
	}
	lgr.V(1).Info("response received", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start).String())

	if err := json.Unmarshal(body, out); err != nil {
		return 0, fmt.Errorf("%w: parsing response (status %d): %w", ErrTransport, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
