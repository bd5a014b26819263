// Package session configures the server-side session manager and provides
// typed accessors for the two fields kiosk stores per session: the
// authenticated user ID and the anonymous page-view counter.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys. These are the only fields kiosk writes to a session.
const (
	KeyUserID    = "user_id"
	KeyPageViews = "page_views"
)

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	// Use SQLite store
	sm.Store = sqlite3store.New(db)

	// Configure session
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// UserID returns the user ID stored in the session, or 0 if absent.
func UserID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyUserID)
}

// SetUserID stores the authenticated user ID in the session.
func SetUserID(ctx context.Context, sm *scs.SessionManager, id int64) {
	sm.Put(ctx, KeyUserID, id)
}

// ClearUserID removes the user ID from the session, leaving the session
// record (and any page-view count) intact.
func ClearUserID(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, KeyUserID)
}

// Clear removes both the user ID and the page-view counter from the session.
// The session record itself survives until it expires.
func Clear(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, KeyUserID)
	sm.Remove(ctx, KeyPageViews)
}

// IncrementPageViews bumps the anonymous page-view counter (initializing it
// at zero if absent) and returns the new count. The increment is a plain
// read-modify-write: concurrent requests on one session may race, which is
// acceptable for a best-effort view budget.
func IncrementPageViews(ctx context.Context, sm *scs.SessionManager) int {
	views := sm.GetInt(ctx, KeyPageViews) + 1
	sm.Put(ctx, KeyPageViews, views)
	return views
}

// PageViews returns the current anonymous page-view count for the session.
func PageViews(ctx context.Context, sm *scs.SessionManager) int {
	return sm.GetInt(ctx, KeyPageViews)
}
