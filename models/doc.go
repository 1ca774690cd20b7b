// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, wire, state and HTTP types.

# Domain Types

  - Route: a transit-line record shown to the user
  - UserProfile: username plus optional contact fields

# Remote API Types

Types for the DummyJSON endpoints:

  - Product, ProductList: GET /products
  - LoginCredentials, AuthResponse: POST /auth/login

# State Types

The client-side store is split into three slices, mirrored here:

  - AuthState: isAuthenticated, user, loading, error
  - ItemsState: routes, loading, favourites, error
  - ThemeState: isDarkMode

State bundles all three for snapshots and the HTTP API.

# Storage Keys

	KeyUser       "user"        JSON UserProfile
	KeyToken      "token"       raw session token
	KeyFavourites "favourites"  JSON array of route IDs
	KeyDarkMode   "darkMode"    JSON boolean

# Route Status

	StatusActive   = "Active"
	StatusUpcoming = "Upcoming"
*/
package models
