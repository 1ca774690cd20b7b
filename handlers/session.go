// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/transit-routes/api"
	"github.com/danielhkuo/transit-routes/auth"
	"github.com/danielhkuo/transit-routes/middleware"
	"github.com/danielhkuo/transit-routes/models"
	"github.com/danielhkuo/transit-routes/store"
)

type SessionHandler struct {
	store *store.Store
}

func NewSessionHandler(st *store.Store) *SessionHandler {
	return &SessionHandler{store: st}
}

// Login handles POST /session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.LoginCredentials
	if err := middleware.ParseJSONBody(r, &creds); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	profile, err := h.store.Login(r.Context(), creds)
	if err != nil {
		var fieldErrs auth.ValidationErrors
		var loginErr *store.LoginError
		switch {
		case errors.As(err, &fieldErrs):
			middleware.FieldErrorResponse(w, "Invalid credentials", fieldErrs)
		case errors.Is(err, api.ErrInvalidCredentials):
			middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		case errors.As(err, &loginErr):
			middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
		default:
			slog.Error("login failed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, store.MsgLoginFailed)
		}
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		IsAuthenticated: true,
		User:            &profile,
	})
}

// Get handles GET /session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		IsAuthenticated: snap.Auth.IsAuthenticated,
		User:            snap.Auth.User,
		Error:           snap.Auth.Error,
	})
}

// Logout handles DELETE /session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		// state is already cleared; only the stored keys may linger
		slog.Warn("logout left persisted session keys", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
