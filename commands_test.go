// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/transit-routes/api"
	"github.com/danielhkuo/transit-routes/kv"
	"github.com/danielhkuo/transit-routes/store"
	"github.com/danielhkuo/transit-routes/testutil"
)

// newCLI mimics one process start: a fresh store over the given storage,
// hydrated before the command runs
func newCLI(t *testing.T, fake *testutil.FakeAPI, storage kv.Storage) *store.Store {
	t.Helper()
	client := api.NewClient(fake.URL(), 5*time.Second).WithSeed(3)
	st := store.New(client, storage, api.ListOptions{Limit: 30})
	st.Hydrate(context.Background())
	return st
}

func run(t *testing.T, fake *testutil.FakeAPI, storage kv.Storage, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runCommand(context.Background(), newCLI(t, fake, storage), &out, args)
	return out.String(), err
}

func TestCommands_RequireSession(t *testing.T) {
	fake := testutil.NewFakeAPI(t, 3)
	storage := kv.NewMemory()

	for _, cmd := range [][]string{{"logout"}, {"whoami"}, {"routes"}, {"show", "1"}, {"fav", "1"}, {"favs"}} {
		t.Run(cmd[0], func(t *testing.T) {
			out, err := run(t, fake, storage, cmd...)
			if !errors.Is(err, store.ErrNotAuthenticated) {
				t.Errorf("Expected ErrNotAuthenticated, got %v", err)
			}
			if !strings.Contains(out, "Sign in first") {
				t.Errorf("Expected sign-in hint, got %q", out)
			}
		})
	}

	if fake.ProductCalls() != 0 {
		t.Errorf("Expected no remote calls while signed out, got %d", fake.ProductCalls())
	}
}

func TestCommands_SessionAcrossRuns(t *testing.T) {
	fake := testutil.NewFakeAPI(t, 8)
	storage, err := kv.OpenSQL(context.Background(), kv.DialectSQLite, filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { storage.Close() })

	out, err := run(t, fake, storage, "login", testutil.DemoUsername, testutil.DemoPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(out, "Emily Johnson") || !strings.Contains(out, "expires") {
		t.Errorf("Unexpected login output:\n%s", out)
	}

	out, err = run(t, fake, storage, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(out, "@emilys") {
		t.Errorf("Expected restored profile, got:\n%s", out)
	}

	out, err = run(t, fake, storage, "routes")
	if err != nil {
		t.Fatalf("routes failed: %v", err)
	}
	if !strings.Contains(out, "Transport Routes") || strings.Count(out, "\n") != 9 {
		t.Errorf("Expected header and 8 routes, got:\n%s", out)
	}

	if out, err = run(t, fake, storage, "fav", "6"); err != nil || !strings.Contains(out, "Added") {
		t.Fatalf("fav failed: %v\n%s", err, out)
	}

	out, err = run(t, fake, storage, "favs")
	if err != nil {
		t.Fatalf("favs failed: %v", err)
	}
	if !strings.Contains(out, "1 route saved") {
		t.Errorf("Expected one saved route, got:\n%s", out)
	}

	if out, err = run(t, fake, storage, "fav", "6"); err != nil || !strings.Contains(out, "Removed") {
		t.Fatalf("second fav failed: %v\n%s", err, out)
	}

	if _, err = run(t, fake, storage, "logout"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err = run(t, fake, storage, "whoami"); !errors.Is(err, store.ErrNotAuthenticated) {
		t.Errorf("Expected signed out after logout, got %v", err)
	}
}

func TestCommands_LoginFailure(t *testing.T) {
	fake := testutil.NewFakeAPI(t, 0)

	out, err := run(t, fake, kv.NewMemory(), "login", testutil.DemoUsername, "wrong-password")
	if err == nil {
		t.Fatal("Expected login to fail")
	}
	if !strings.Contains(out, "Invalid username or password") {
		t.Errorf("Expected user message, got %q", out)
	}
}

func TestCommands_ShowAndFetchFailure(t *testing.T) {
	fake := testutil.NewFakeAPI(t, 4)
	storage := kv.NewMemory()

	if _, err := run(t, fake, storage, "login", testutil.DemoUsername, testutil.DemoPassword); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	out, err := run(t, fake, storage, "show", "2")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Status:") || !strings.Contains(out, "Operating hours:") {
		t.Errorf("Expected route detail, got:\n%s", out)
	}

	if _, err := run(t, fake, storage, "show", "40"); !errors.Is(err, store.ErrRouteNotFound) {
		t.Errorf("Expected ErrRouteNotFound, got %v", err)
	}

	if _, err := run(t, fake, storage, "show", "two"); !errors.Is(err, errUsage) {
		t.Errorf("Expected usage error, got %v", err)
	}

	fake.FailProducts(http.StatusInternalServerError)
	out, err = run(t, fake, storage, "routes")
	if err == nil {
		t.Fatal("Expected routes to fail")
	}
	if !strings.Contains(out, "Unable to load transport routes.") {
		t.Errorf("Expected fetch error message, got %q", out)
	}
}

func TestCommands_Theme(t *testing.T) {
	fake := testutil.NewFakeAPI(t, 0)
	storage := kv.NewMemory()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "Dark mode off"},
		{[]string{"theme", "toggle"}, "Dark mode on"},
		{[]string{"theme"}, "Dark mode on"},
		{[]string{"theme", "light"}, "Dark mode off"},
		{[]string{"theme", "dark"}, "Dark mode on"},
	}

	for _, tt := range tests {
		out, err := run(t, fake, storage, tt.args...)
		if err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("%v: got %q, want %q", tt.args, out, tt.want)
		}
	}

	if _, err := run(t, fake, storage, "theme", "blue"); !errors.Is(err, errUsage) {
		t.Errorf("Expected usage error, got %v", err)
	}
}

func TestCommands_Usage(t *testing.T) {
	fake := testutil.NewFakeAPI(t, 0)

	for _, args := range [][]string{{}, {"login", "emilys"}, {"unknown"}} {
		if _, err := run(t, fake, kv.NewMemory(), args...); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}
