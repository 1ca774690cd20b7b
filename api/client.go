// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/danielhkuo/transit-routes/catalog"
	"github.com/danielhkuo/transit-routes/models"
)

const (
	// ProductFields is the select list sent with GET /products.
	ProductFields = "id,title,description,thumbnail,price,category"

	DefaultLimit = 30

	loginFailedMessage        = "Login failed. Please try again."
	invalidCredentialsMessage = "Invalid username or password"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnexpectedResponse = errors.New("unexpected response from API")
)

// APIError is a non-2xx response from the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned %d", e.StatusCode)
}

type ListOptions struct {
	Limit int
	Skip  int
}

type Client struct {
	baseURL string
	http    *http.Client

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

// NewClient creates a client for the API rooted at baseURL.
// A zero timeout leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// WithSeed makes route numbers reproducible
func (c *Client) WithSeed(seed uint64) *Client {
	c.mu.Lock()
	c.rnd = rand.New(rand.NewPCG(seed, seed))
	c.mu.Unlock()
	return c
}

// GetRoutes fetches products and maps them to transit routes
func (c *Client) GetRoutes(ctx context.Context, opts ListOptions) ([]models.Route, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	q.Set("select", ProductFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	var list models.ProductList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if list.Products == nil {
		return nil, fmt.Errorf("%w: missing products", ErrUnexpectedResponse)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.FromProducts(list.Products, c.rnd), nil
}

// Login exchanges credentials for a profile and session token
func (c *Client) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if auth.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrUnexpectedResponse)
	}

	return &auth, nil
}

// UserMessage returns the text shown to the user for a failed login
func UserMessage(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return invalidCredentialsMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return loginFailedMessage
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
