// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers for the local API.

# Logging

WithLogging logs one line per request after it completes:

	mux.HandleFunc("GET /routes", middleware.WithLogging(h.List))

Logged fields: id, method, path, status, duration_ms. The request id is taken
from X-Request-ID when the caller sends one, otherwise generated, and is
echoed in the response header.

# Session Gate

RequireSession answers 401 until the store reports a signed-in user:

	middleware.RequireSession(st, h.List)

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Route not found")
	middleware.FieldErrorResponse(w, "Invalid credentials", fields)
	err := middleware.ParseJSONBody(r, &req)

Error bodies look like:

	{"error": "Not Found", "message": "Route not found"}

Request bodies are capped at 1 MiB.

# CORS

CORS reflects the request Origin (or "*"), allows the usual methods and
headers, and answers preflight OPTIONS requests with 204.
*/
package middleware
