// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kv

import (
	"context"
	"fmt"

	"github.com/danielhkuo/transit-routes/cliparse"
)

// Storage is a string key-value store for persisted client state
type Storage interface {
	// GetItem returns the value for key and whether it was present.
	GetItem(ctx context.Context, key string) (string, bool, error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Open returns the storage backend selected by cfg
func Open(ctx context.Context, cfg cliparse.Config) (Storage, error) {
	switch cfg.StoreType {
	case cliparse.StoreMemory:
		return NewMemory(), nil
	case cliparse.StoreSQLite:
		return OpenSQL(ctx, DialectSQLite, cfg.StoreURL)
	case cliparse.StorePostgres:
		return OpenSQL(ctx, DialectPostgres, cfg.StoreURL)
	case cliparse.StoreRedis:
		return OpenRedis(ctx, cfg.StoreURL)
	}
	return nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
}
