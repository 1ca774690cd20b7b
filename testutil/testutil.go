// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/transit-routes/models"
)

// Demo credentials accepted by the fake API, same as the public one
const (
	DemoUsername = "emilys"
	DemoPassword = "emilyspass"
)

// FakeAPI is an in-process stand-in for the remote DummyJSON API
type FakeAPI struct {
	Server *httptest.Server

	mu            sync.Mutex
	products      []models.Product
	failProducts  int
	failLogin     int
	productCalls  int
	loginCalls    int
	lastLimit     string
	lastSkip      string
	lastSelect    string
	tokenLifetime time.Duration
}

// NewFakeAPI starts a fake API serving n products. It is closed with the test.
func NewFakeAPI(t *testing.T, n int) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		products:      MakeProducts(n),
		tokenLifetime: time.Hour,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", f.handleProducts)
	mux.HandleFunc("POST /auth/login", f.handleLogin)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake API
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// FailProducts makes GET /products answer with status for subsequent calls.
// Zero restores normal behaviour.
func (f *FakeAPI) FailProducts(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failProducts = status
}

// FailLogin makes POST /auth/login answer with status. Zero restores it.
func (f *FakeAPI) FailLogin(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failLogin = status
}

// SetProducts replaces the served product list
func (f *FakeAPI) SetProducts(products []models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
}

func (f *FakeAPI) ProductCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.productCalls
}

func (f *FakeAPI) LoginCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

// LastQuery returns the limit, skip and select parameters of the last product request
func (f *FakeAPI) LastQuery() (limit, skip, sel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastLimit, f.lastSkip, f.lastSelect
}

func (f *FakeAPI) handleProducts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.productCalls++
	f.lastLimit = r.URL.Query().Get("limit")
	f.lastSkip = r.URL.Query().Get("skip")
	f.lastSelect = r.URL.Query().Get("select")

	if f.failProducts != 0 {
		writeJSON(w, f.failProducts, map[string]string{"message": "products unavailable"})
		return
	}

	limit := len(f.products)
	if l, err := strconv.Atoi(f.lastLimit); err == nil && l < limit {
		limit = l
	}
	skip, _ := strconv.Atoi(f.lastSkip)
	if skip > len(f.products) {
		skip = len(f.products)
	}
	end := skip + limit
	if end > len(f.products) {
		end = len(f.products)
	}

	writeJSON(w, http.StatusOK, models.ProductList{
		Products: f.products[skip:end],
		Total:    len(f.products),
		Skip:     skip,
		Limit:    limit,
	})
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loginCalls++

	if f.failLogin != 0 {
		writeJSON(w, f.failLogin, map[string]string{"message": "auth service unavailable"})
		return
	}

	var creds models.LoginCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON"})
		return
	}
	if creds.Username != DemoUsername || creds.Password != DemoPassword {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}

	token, err := MakeToken(time.Now().Add(f.tokenLifetime))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		ID:           1,
		Username:     DemoUsername,
		Email:        "emily.johnson@x.dummyjson.com",
		FirstName:    "Emily",
		LastName:     "Johnson",
		Gender:       "female",
		Image:        "https://dummyjson.com/icon/emilys/128",
		AccessToken:  token,
		RefreshToken: "refresh-" + token,
	})
}

// MakeProducts returns n products with ids 1..n and rising prices
func MakeProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:          i + 1,
			Title:       fmt.Sprintf("Product %d", i+1),
			Description: "test product",
			Price:       float64((i + 1) * 100),
			Category:    "test",
		}
	}
	return products
}

// MakeToken signs a JWT expiring at exp with a throwaway key
func MakeToken(exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
