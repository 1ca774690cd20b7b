// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package api is the client for the remote DummyJSON API.

# Endpoints

	GET  /products?limit=30&select=...   product list, mapped to routes
	POST /auth/login                     credentials in, profile and token out

# Usage

	c := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	routes, err := c.GetRoutes(ctx, api.ListOptions{Limit: 30})
	auth, err := c.Login(ctx, models.LoginCredentials{Username: "emilys", Password: "emilyspass"})

# Errors

Login maps HTTP 400 to ErrInvalidCredentials. Other non-2xx responses become
*APIError, carrying the server's "message" field when it has one.
UserMessage turns any login error into the text shown to the user.

No request is retried.
*/
package api
