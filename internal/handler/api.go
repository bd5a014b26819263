// Package handler provides the JSON API handlers for kiosk: login/logout,
// session introspection, the public article list, the metered article
// viewer, and the members-only endpoints.
package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"kiosk/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries       *store.Queries
	sm            *scs.SessionManager
	pageViewLimit int
}

// NewHandler creates a new API handler. pageViewLimit is the number of
// single-article views an anonymous session gets before a 401.
func NewHandler(db *sql.DB, sm *scs.SessionManager, pageViewLimit int) *Handler {
	return &Handler{
		queries:       store.New(db),
		sm:            sm,
		pageViewLimit: pageViewLimit,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response of the form {"error": message}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// WriteEmptyUnauthorized writes a 401 with a literal empty JSON object body.
// Login failure and a failed session check are indistinguishable by content.
func WriteEmptyUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, struct{}{})
}

// WriteNoContent writes an empty 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ParseIDParam parses the {id} URL parameter as an int64.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
