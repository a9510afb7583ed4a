// Package client is a Go gateway to the ordering API. It fetches menu items in
// the backend contract shape and submits configured selections to carts.
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

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/contract"
	"restaurant-ordering/internal/domain"
)

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one ordering API base URL.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	token      string
	userAgent  string
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sends the access token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "orderctl",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchMenuItem loads a menu item and converts it to the domain model.
func (c *Client) FetchMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item contract.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu-items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	out := item.ToDomain()
	return &out, nil
}

func (c *Client) FetchCategory(ctx context.Context, id string) (*contract.Category, error) {
	var cat contract.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Orderable checks the item flags and the active state of its category.
func (c *Client) Orderable(ctx context.Context, item domain.MenuItem) (bool, error) {
	if item.CategoryID == "" {
		return item.Orderable(true), nil
	}
	cat, err := c.FetchCategory(ctx, item.CategoryID)
	if err != nil {
		return false, err
	}
	return item.Orderable(cat.IsActive), nil
}

// Quote asks the API to price a submission without adding it to a cart.
func (c *Client) Quote(ctx context.Context, sub configurator.CartSubmission) (*contract.Quote, error) {
	var q contract.Quote
	if err := c.do(ctx, http.MethodPost, "/menu-items/"+url.PathEscape(sub.MenuItemID)+"/quote", sub, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) ActiveCart(ctx context.Context) (*contract.Cart, error) {
	var cart contract.Cart
	if err := c.do(ctx, http.MethodGet, "/carts/active", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) CreateCart(ctx context.Context, currency string) (*contract.Cart, error) {
	var cart contract.Cart
	body := map[string]string{"currency": currency}
	if err := c.do(ctx, http.MethodPost, "/carts", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart posts one configured item to the cart.
func (c *Client) AddToCart(ctx context.Context, cartID string, sub configurator.CartSubmission) (*contract.Cart, error) {
	var cart contract.Cart
	if err := c.do(ctx, http.MethodPost, "/carts/"+url.PathEscape(cartID)+"/line-items", sub, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// CartSubmitter returns a configurator.Submitter that adds to cartID.
func (c *Client) CartSubmitter(cartID string) configurator.Submitter {
	return configurator.SubmitterFunc(func(ctx context.Context, sub configurator.CartSubmission) error {
		_, err := c.AddToCart(ctx, cartID, sub)
		return err
	})
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token. The client keeps using it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	rawURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamRequestError{Method: method, URL: rawURL, Cause: err}
	}
	defer func() {
		_ = res.Body.Close()
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Cause:      fmt.Errorf("read response body: %w", err),
		}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(raw),
			Detail:     decodeErrorBody(raw),
		}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &UpstreamRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(raw),
			Cause:      fmt.Errorf("decode response body: %w", err),
		}
	}
	return nil
}
