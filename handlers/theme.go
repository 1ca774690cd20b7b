// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/transit-routes/middleware"
	"github.com/danielhkuo/transit-routes/models"
	"github.com/danielhkuo/transit-routes/store"
)

type ThemeHandler struct {
	store *store.Store
}

func NewThemeHandler(st *store.Store) *ThemeHandler {
	return &ThemeHandler{store: st}
}

// Get handles GET /theme
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ThemeResponse{DarkMode: h.store.IsDarkMode()})
}

// Put handles PUT /theme
func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req models.ThemeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.DarkMode == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "dark_mode is required")
		return
	}

	if err := h.store.SetTheme(r.Context(), *req.DarkMode); err != nil {
		slog.Warn("theme changed but not persisted", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ThemeResponse{DarkMode: h.store.IsDarkMode()})
}

// Toggle handles POST /theme/toggle
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	dark, err := h.store.ToggleTheme(r.Context())
	if err != nil {
		slog.Warn("theme changed but not persisted", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ThemeResponse{DarkMode: dark})
}
