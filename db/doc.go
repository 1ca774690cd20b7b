// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db manages the database schema for SQL-backed storage.

# Schema

One table holds every persisted value:

	kv_item
	  key         TEXT PRIMARY KEY   "user", "token", "favourites", "darkMode"
	  value       TEXT NOT NULL      JSON or raw string
	  updated_at  TIMESTAMP          last write

The statement is portable between SQLite and PostgreSQL.

# Usage

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

CreateSchema is idempotent and runs every time storage is opened.
*/
package db
