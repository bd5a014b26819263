package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// testSessionContext returns a context with an active session loaded, using an
// in-memory store so tests need no database.
func testSessionContext(t *testing.T) (context.Context, *scs.SessionManager) {
	t.Helper()

	sm := scs.New()
	sm.Store = memstore.New()

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return ctx, sm
}

func TestNewConfiguresCookies(t *testing.T) {
	sm := New(nil, true)
	if !sm.Cookie.HttpOnly {
		t.Error("Cookie.HttpOnly = false, want true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("Cookie.SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
	if sm.Cookie.Secure {
		t.Error("Cookie.Secure = true in development, want false")
	}

	sm = New(nil, false)
	if !sm.Cookie.Secure {
		t.Error("Cookie.Secure = false in production, want true")
	}
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx, sm := testSessionContext(t)

	if got := UserID(ctx, sm); got != 0 {
		t.Errorf("UserID on fresh session = %d, want 0", got)
	}

	SetUserID(ctx, sm, 42)
	if got := UserID(ctx, sm); got != 42 {
		t.Errorf("UserID = %d, want 42", got)
	}

	ClearUserID(ctx, sm)
	if got := UserID(ctx, sm); got != 0 {
		t.Errorf("UserID after ClearUserID = %d, want 0", got)
	}
}

func TestClearUserIDIsIdempotent(t *testing.T) {
	ctx, sm := testSessionContext(t)

	SetUserID(ctx, sm, 7)
	ClearUserID(ctx, sm)
	ClearUserID(ctx, sm)
	if got := UserID(ctx, sm); got != 0 {
		t.Errorf("UserID = %d, want 0", got)
	}
}

func TestClearRemovesBothFields(t *testing.T) {
	ctx, sm := testSessionContext(t)

	SetUserID(ctx, sm, 7)
	IncrementPageViews(ctx, sm)
	IncrementPageViews(ctx, sm)

	Clear(ctx, sm)

	if got := UserID(ctx, sm); got != 0 {
		t.Errorf("UserID after Clear = %d, want 0", got)
	}
	if got := PageViews(ctx, sm); got != 0 {
		t.Errorf("PageViews after Clear = %d, want 0", got)
	}
}

func TestIncrementPageViews(t *testing.T) {
	ctx, sm := testSessionContext(t)

	// Counts from one and keeps counting past any limit.
	for want := 1; want <= 5; want++ {
		if got := IncrementPageViews(ctx, sm); got != want {
			t.Fatalf("IncrementPageViews() = %d, want %d", got, want)
		}
	}
	if got := PageViews(ctx, sm); got != 5 {
		t.Errorf("PageViews = %d, want 5", got)
	}
}
