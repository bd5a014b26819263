package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kiosk/internal/middleware"
	"kiosk/internal/session"
	"kiosk/internal/store"
)

// UserResponse is the public serialization of a user. It never carries
// credential material.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// storeUserToResponse converts a store.User to UserResponse.
func storeUserToResponse(u store.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
}

// Login handles POST /login. A matching username binds the session to that
// user; an unknown username is a 401 with an empty JSON object, the same
// body a failed session check produces.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for unknown username", "username", req.Username)
		} else {
			slog.Error("database error during login", "error", err)
		}
		WriteEmptyUnauthorized(w)
		return
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sm.RenewToken(r.Context()); err != nil {
		slog.Error("session renewal error", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	session.SetUserID(r.Context(), h.sm, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	WriteJSON(w, http.StatusOK, storeUserToResponse(user))
}

// Logout handles DELETE /logout: removes the user binding from the session.
// Idempotent; the page-view counter is left alone.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearUserID(r.Context(), h.sm)
	WriteNoContent(w)
}

// ClearSession handles DELETE /clear: removes both the user binding and the
// page-view counter. Idempotent.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	session.Clear(r.Context(), h.sm)
	WriteNoContent(w)
}

// CheckSession handles GET /check_session. Responds with the serialized
// user when the session's user_id resolves to an existing user, and an
// empty-object 401 otherwise (including for stale ids).
func (h *Handler) CheckSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteEmptyUnauthorized(w)
		return
	}
	WriteJSON(w, http.StatusOK, storeUserToResponse(*user))
}
