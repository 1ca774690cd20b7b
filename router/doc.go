// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the transit-routes API.

# Route Registration

NewRouter creates an http.ServeMux with all endpoints, wrapped in CORS:

	handler := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health
	GET /

Session (public):

	POST   /session - Sign in
	GET    /session - Current session
	DELETE /session - Sign out

Routes (signed in):

	GET  /routes          - Loaded route list with favourite flags
	POST /routes/refresh  - Fetch routes from the remote API
	GET  /routes/{id}     - Single route

Favourites (signed in):

	GET  /favourites              - Favourite ids and routes
	POST /favourites/{id}/toggle  - Add or remove a favourite

Theme (signed in):

	GET  /theme        - Current flag
	PUT  /theme        - Set flag
	POST /theme/toggle - Flip flag

Requests to signed-in endpoints answer 401 until POST /session succeeds,
mirroring the login gate of the mobile app.
*/
package router
