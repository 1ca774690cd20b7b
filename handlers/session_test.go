// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/transit-routes/api"
	"github.com/danielhkuo/transit-routes/cliparse"
	"github.com/danielhkuo/transit-routes/kv"
	"github.com/danielhkuo/transit-routes/models"
	"github.com/danielhkuo/transit-routes/store"
	"github.com/danielhkuo/transit-routes/testutil"
)

// setupTestStore wires a store to a fake API serving n products and to
// in-memory storage
func setupTestStore(t *testing.T, n int) (*store.Store, *testutil.FakeAPI, *kv.Memory) {
	t.Helper()
	fake := testutil.NewFakeAPI(t, n)
	storage := kv.NewMemory()
	client := api.NewClient(fake.URL(), 5*time.Second).WithSeed(42)
	return store.New(client, storage, api.ListOptions{Limit: 30}), fake, storage
}

func getTestConfig() cliparse.Config {
	return cliparse.Config{
		StoreType:   cliparse.StoreMemory,
		RouteLimit:  30,
		HTTPTimeout: 5 * time.Second,
	}
}

// signIn logs the demo user in directly through the store
func signIn(t *testing.T, st *store.Store) {
	t.Helper()
	creds := models.LoginCredentials{Username: testutil.DemoUsername, Password: testutil.DemoPassword}
	if _, err := st.Login(context.Background(), creds); err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name           string
		body           interface{}
		failLogin      int
		expectedStatus int
		expectedMsg    string
		expectedFields []string
	}{
		{
			name:           "demo credentials",
			body:           models.LoginCredentials{Username: testutil.DemoUsername, Password: testutil.DemoPassword},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           models.LoginCredentials{Username: testutil.DemoUsername, Password: "nope-nope"},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid username or password",
		},
		{
			name:           "validation errors",
			body:           models.LoginCredentials{Username: "ab"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid credentials",
			expectedFields: []string{"username", "password"},
		},
		{
			name:           "auth service down",
			body:           models.LoginCredentials{Username: testutil.DemoUsername, Password: testutil.DemoPassword},
			failLogin:      http.StatusServiceUnavailable,
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "auth service unavailable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, fake, _ := setupTestStore(t, 0)
			fake.FailLogin(tc.failLogin)
			handler := NewSessionHandler(st)

			w := httptest.NewRecorder()
			handler.Login(w, testutil.MakeRequest("POST", "/session", tc.body, nil))

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusOK {
				var resp models.SessionResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.IsAuthenticated || resp.User == nil || resp.User.Username != testutil.DemoUsername {
					t.Errorf("Unexpected session response: %+v", resp)
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tc.expectedMsg {
				t.Errorf("Expected message '%s', got '%s'", tc.expectedMsg, resp.Message)
			}
			for _, field := range tc.expectedFields {
				if resp.Fields[field] == "" {
					t.Errorf("Expected field error for %s, got %v", field, resp.Fields)
				}
			}
			if st.IsAuthenticated() {
				t.Error("Expected to stay signed out")
			}
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	st, fake, _ := setupTestStore(t, 0)
	handler := NewSessionHandler(st)

	req := httptest.NewRequest("POST", "/session", nil)
	w := httptest.NewRecorder()
	handler.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if fake.LoginCalls() != 0 {
		t.Errorf("Expected no remote login, got %d", fake.LoginCalls())
	}
}

func TestGetSession(t *testing.T) {
	st, _, _ := setupTestStore(t, 0)
	handler := NewSessionHandler(st)

	w := httptest.NewRecorder()
	handler.Get(w, httptest.NewRequest("GET", "/session", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SessionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.IsAuthenticated || resp.User != nil {
		t.Errorf("Expected signed-out session, got %+v", resp)
	}

	signIn(t, st)

	w = httptest.NewRecorder()
	handler.Get(w, httptest.NewRequest("GET", "/session", nil))
	testutil.AssertJSON(t, w, &resp)
	if !resp.IsAuthenticated || resp.User.FirstName != "Emily" {
		t.Errorf("Expected signed-in session, got %+v", resp)
	}
}

func TestLogout(t *testing.T) {
	st, _, storage := setupTestStore(t, 0)
	handler := NewSessionHandler(st)
	signIn(t, st)

	w := httptest.NewRecorder()
	handler.Logout(w, httptest.NewRequest("DELETE", "/session", nil))

	testutil.AssertStatus(t, w, http.StatusNoContent)
	if st.IsAuthenticated() {
		t.Error("Expected signed-out state")
	}
	for _, key := range []string{models.KeyUser, models.KeyToken} {
		if _, ok, _ := storage.GetItem(context.Background(), key); ok {
			t.Errorf("Expected %s to be removed", key)
		}
	}
}
