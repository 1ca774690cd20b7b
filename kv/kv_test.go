// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-redis/redis/v8"

	"github.com/danielhkuo/transit-routes/cliparse"
)

// exerciseStorage runs the behaviour every backend must share
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.GetItem(ctx, "missing"); err != nil || ok {
		t.Fatalf("GetItem(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := s.SetItem(ctx, "user", `{"username":"emilys"}`); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	v, ok, err := s.GetItem(ctx, "user")
	if err != nil || !ok || v != `{"username":"emilys"}` {
		t.Fatalf("GetItem(user) = %q, %v, %v", v, ok, err)
	}

	// Overwrite
	if err := s.SetItem(ctx, "user", `{"username":"michaelw"}`); err != nil {
		t.Fatalf("SetItem() overwrite error = %v", err)
	}
	v, _, _ = s.GetItem(ctx, "user")
	if v != `{"username":"michaelw"}` {
		t.Errorf("expected overwritten value, got %q", v)
	}

	// Empty values are still present
	if err := s.SetItem(ctx, "token", ""); err != nil {
		t.Fatalf("SetItem(empty) error = %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, "token"); !ok {
		t.Error("expected empty value to be present")
	}

	if err := s.RemoveItem(ctx, "user"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, "user"); ok {
		t.Error("expected user to be removed")
	}

	// Removing twice is fine
	if err := s.RemoveItem(ctx, "user"); err != nil {
		t.Errorf("RemoveItem(missing) error = %v", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.SetItem(ctx, "k", "v"); err == nil {
		t.Error("expected error for canceled context")
	}
	if _, _, err := m.GetItem(ctx, "k"); err == nil {
		t.Error("expected error for canceled context")
	}
}

func openTestSQLite(t *testing.T) *SQL {
	t.Helper()
	s, err := OpenSQL(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite(t *testing.T) {
	exerciseStorage(t, openTestSQLite(t))
}

func TestSQLite_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := OpenSQL(ctx, DialectSQLite, path)
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	if err := s.SetItem(ctx, "favourites", "[1,2,3]"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	s.Close()

	s, err = OpenSQL(ctx, DialectSQLite, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	v, ok, err := s.GetItem(ctx, "favourites")
	if err != nil || !ok || v != "[1,2,3]" {
		t.Errorf("expected persisted value, got %q, %v, %v", v, ok, err)
	}
}

func TestSQLite_ConcurrentWrites(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.SetItem(ctx, fmt.Sprintf("key-%d", i), "v"); err != nil {
				t.Errorf("SetItem(%d) error = %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		if _, ok, _ := s.GetItem(ctx, fmt.Sprintf("key-%d", i)); !ok {
			t.Errorf("key-%d missing", i)
		}
	}
}

func TestOpenSQL_UnknownDialect(t *testing.T) {
	if _, err := OpenSQL(context.Background(), Dialect("oracle"), "x"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, cliparse.Config{StoreType: cliparse.StoreMemory})
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("expected *Memory, got %T", s)
	}

	s, err = Open(ctx, cliparse.Config{StoreType: cliparse.StoreSQLite, StoreURL: filepath.Join(t.TempDir(), "open.db")})
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQL); !ok {
		t.Errorf("expected *SQL, got %T", s)
	}

	if _, err := Open(ctx, cliparse.Config{StoreType: "etcd"}); err == nil {
		t.Error("expected error for unknown store type")
	}
}

func TestOpenRedis_BadURL(t *testing.T) {
	if _, err := OpenRedis(context.Background(), "not a url"); err == nil {
		t.Error("expected error for malformed redis URL")
	}
}

// clearKeys removes the keys exerciseStorage touches so shared servers start clean
func clearKeys(t *testing.T, s Storage) {
	t.Helper()
	for _, key := range []string{"missing", "user", "token"} {
		if err := s.RemoveItem(context.Background(), key); err != nil {
			t.Fatalf("RemoveItem(%s) error = %v", key, err)
		}
	}
}

func TestPostgres(t *testing.T) {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	s, err := OpenSQL(context.Background(), DialectPostgres, url)
	if err != nil {
		t.Fatalf("OpenSQL(postgres) error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clearKeys(t, s)
	t.Cleanup(func() { clearKeys(t, s) })

	exerciseStorage(t, s)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	s, err := OpenRedis(ctx, url)
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clearKeys(t, s)
	t.Cleanup(func() { clearKeys(t, s) })

	exerciseStorage(t, s)

	// Items live under the prefix, not the bare key
	if err := s.SetItem(ctx, "token", "abc"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL() error = %v", err)
	}
	raw := redis.NewClient(opt)
	defer raw.Close()

	if v, err := raw.Get(ctx, KeyPrefix+"token").Result(); err != nil || v != "abc" {
		t.Errorf("prefixed key = %q, %v; want abc", v, err)
	}
	if n, err := raw.Exists(ctx, "token").Result(); err != nil || n != 0 {
		t.Errorf("bare key exists = %d, %v; want 0", n, err)
	}
}
