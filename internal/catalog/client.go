package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const (
	defaultEndpoint             = "https://fakestoreapi.com/products"
	errorBodyReadLimit    int64 = 1024
	defaultRequestTimeout       = 10 * time.Second
)

var errEndpointRequired = errors.New("catalog endpoint is required")

// Product mirrors the upstream catalog payload. Nothing here is persisted;
// entries are fetched on demand and relayed to the client application.
type Product struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Rating      ProductRating `json:"rating"`
}

// ProductRating carries the upstream aggregate rating verbatim.
type ProductRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Client wraps the upstream product API.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds the catalog client for the given upstream endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if trimmed == "" {
		return nil, errEndpointRequired
	}

	client := &Client{
		endpoint:   trimmed,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	return client, nil
}

// FetchAll retrieves the full upstream listing.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "catalog client not configured")
	}

	body, err := c.get(ctx, c.endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	var products []Product
	if err := json.NewDecoder(body).Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode product listing")
	}
	return products, nil
}

// FetchByID retrieves a single product. The upstream body is relayed
// verbatim; a malformed or empty upstream response is the caller's problem
// to surface.
func (c *Client) FetchByID(ctx context.Context, id int) (*Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "catalog client not configured")
	}

	body, err := c.get(ctx, c.endpoint+"/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	var product Product
	if err := json.NewDecoder(body).Decode(&product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode product")
	}
	return &product, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "execute catalog request")
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		_ = resp.Body.Close()
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeUpstream,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"catalog request failed",
		)
	}

	return resp.Body, nil
}
