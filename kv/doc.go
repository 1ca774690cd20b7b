// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kv provides the local key-value storage behind persisted client state.

# Backends

  - Memory: map-backed, for tests and throwaway sessions
  - SQL: kv_item table on SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq)
  - Redis: one string key per item, prefixed with KeyPrefix

Open picks one from configuration:

	store, err := kv.Open(ctx, cfg)
	defer store.Close()

# Semantics

GetItem reports absence with ok == false rather than an error. SetItem
overwrites. RemoveItem on a missing key succeeds. Values are opaque strings;
callers decide the encoding (JSON for everything the store writes).
*/
package kv
