// Package storefront provides a Go client for the storefront HTTP API:
// product browsing, cart management, authentication, and order checkout.
//
// Use NewClient to create a client pointed at an API origin:
//
//	client := storefront.NewClient("https://shop.example.com/api")
//	products, err := client.Products.List(ctx, nil)
package storefront

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client is the storefront API client.
//
// Read endpoints are cached and tagged; successful mutations invalidate the
// tags they affect so dependent reads refetch. Auth state lives in Session
// and, across restarts, in the configured TokenStore.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	tokens  TokenStore
	session *Session
	cache   *tagCache

	// Services
	Auth     *AuthService
	Products *ProductsService
	Cart     *CartService
	Orders   *OrdersService
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithTokenStore sets the persistent token store. Defaults to an in-memory
// store; use NewFileTokenStore to survive restarts, or NoopTokenStore when
// no persistent storage is available.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.tokens = store
	}
}

// WithLogger sets the structured logger used for request-level debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new storefront API client for the given base URL.
// A trailing slash on baseURL is stripped before paths are joined.
//
// The session token is seeded from the token store, so a client built with
// a file-backed store resumes the previous login without a fresh Login call.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
		tokens: NewMemoryTokenStore(),
		cache:  newTagCache(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.session = NewSession(c.tokens.Get())

	// Initialize services
	c.Auth = &AuthService{client: c}
	c.Products = &ProductsService{client: c}
	c.Cart = &CartService{client: c}
	c.Orders = &OrdersService{client: c}

	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the client's session state.
func (c *Client) Session() *Session {
	return c.session
}

// token returns the credential attached to outgoing requests: the session
// token when set, else whatever the persistent store holds.
func (c *Client) token() string {
	if tok := c.session.Token(); tok != "" {
		return tok
	}
	return c.tokens.Get()
}
