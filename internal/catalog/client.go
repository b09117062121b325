// Package catalog reads products and taxonomies from the product backend's
// REST API and turns a product plus the user's choices into generator input.
package catalog

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

	"go.uber.org/zap"
)

// Client defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultPageLimit = 25
	apiPrefix        = "/api/v1"
	maxErrorBody     = 512
	maxPages         = 1000
)

// Client is a product backend client. Safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = strings.TrimSpace(token)
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for the backend at baseURL, e.g.
// "https://api.example.com". The "/api/v1" prefix is added by the client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL, used to resolve relative asset URLs.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Product fetches one product by id.
func (c *Client) Product(ctx context.Context, id string) (*ProductDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}

	var env envelope[*ProductDTO]
	if err := c.do(ctx, http.MethodGet, "/product/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return env.Data, nil
}

// Products fetches one page of products. page starts at 1.
func (c *Client) Products(ctx context.Context, page, limit int) ([]ProductDTO, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	var env envelope[[]ProductDTO]
	body := listRequest{Page: page, Limit: limit, Sort: "asc"}
	if err := c.do(ctx, http.MethodPost, "/product/all", body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// AllProducts walks every page until a short page is returned.
func (c *Client) AllProducts(ctx context.Context) ([]ProductDTO, error) {
	var all []ProductDTO
	for page := 1; page <= maxPages; page++ {
		items, err := c.Products(ctx, page, DefaultPageLimit)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, items...)
		if len(items) < DefaultPageLimit {
			break
		}
	}
	return all, nil
}

// Types lists product types.
func (c *Client) Types(ctx context.Context) ([]Taxon, error) {
	return c.taxonomy(ctx, "/product-types")
}

// Categories lists product categories.
func (c *Client) Categories(ctx context.Context) ([]Taxon, error) {
	return c.taxonomy(ctx, "/product-categories")
}

// Groups lists product groups.
func (c *Client) Groups(ctx context.Context) ([]Taxon, error) {
	return c.taxonomy(ctx, "/product-groups")
}

// Specifications lists specification groups.
func (c *Client) Specifications(ctx context.Context) ([]Taxon, error) {
	return c.taxonomy(ctx, "/product-specifications")
}

// Ping checks that the API answers. Used by doctor.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Types(ctx)
	return err
}

func (c *Client) taxonomy(ctx context.Context, path string) ([]Taxon, error) {
	var env envelope[[]Taxon]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	endpoint := c.baseURL.JoinPath(apiPrefix, path).String()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("catalog request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrUpstream, method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
