// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog turns generic product records into transit routes using a
// fixed table of route templates and images.
package catalog
