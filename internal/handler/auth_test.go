package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t, 3)
	user := createTestUser(t, env.db, "ada", "Ada Lovelace")

	resp := env.do(t, http.MethodPost, "/login", `{"username": "ada"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	got := decodeBody[UserResponse](t, resp)
	if got.ID != user.ID {
		t.Errorf("ID = %d, want %d", got.ID, user.ID)
	}
	if got.Username != "ada" {
		t.Errorf("Username = %q, want %q", got.Username, "ada")
	}
	if got.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want %q", got.Name, "Ada Lovelace")
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	env := newTestEnv(t, 3)
	createTestUser(t, env.db, "ada", "Ada Lovelace")

	resp := env.do(t, http.MethodPost, "/login", `{"username": "nobody"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	// Failure body is a literal empty JSON object.
	if body := strings.TrimSpace(readBody(t, resp)); body != "{}" {
		t.Errorf("body = %q, want {}", body)
	}

	// The failed login must not have bound the session to a user.
	resp = env.do(t, http.MethodGet, "/check_session", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("check_session after failed login: status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginInvalidBody(t *testing.T) {
	env := newTestEnv(t, 3)

	resp := env.do(t, http.MethodPost, "/login", `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCheckSession(t *testing.T) {
	env := newTestEnv(t, 3)
	user := createTestUser(t, env.db, "grace", "Grace Hopper")

	// Anonymous session: 401 + {}
	resp := env.do(t, http.MethodGet, "/check_session", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", resp.StatusCode)
	}
	if body := strings.TrimSpace(readBody(t, resp)); body != "{}" {
		t.Errorf("anonymous body = %q, want {}", body)
	}

	// Authenticated session resolves to the user.
	env.login(t, "grace")
	resp = env.do(t, http.MethodGet, "/check_session", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticated: status = %d, want 200", resp.StatusCode)
	}
	got := decodeBody[UserResponse](t, resp)
	if got.ID != user.ID || got.Username != "grace" {
		t.Errorf("got user %+v, want id=%d username=grace", got, user.ID)
	}
}

func TestCheckSessionStaleUserID(t *testing.T) {
	env := newTestEnv(t, 3)
	createTestUser(t, env.db, "grace", "Grace Hopper")
	env.login(t, "grace")

	// Remove the user row out from under the session.
	if _, err := env.db.Exec(`DELETE FROM users WHERE username = 'grace'`); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	resp := env.do(t, http.MethodGet, "/check_session", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body := strings.TrimSpace(readBody(t, resp)); body != "{}" {
		t.Errorf("body = %q, want {}", body)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t, 3)
	createTestUser(t, env.db, "ada", "Ada Lovelace")
	env.login(t, "ada")

	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodDelete, "/logout", "")
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("logout %d: status = %d, want 204", i+1, resp.StatusCode)
		}
		if body := readBody(t, resp); body != "" {
			t.Errorf("logout %d: body = %q, want empty", i+1, body)
		}
	}

	resp := env.do(t, http.MethodGet, "/check_session", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("check_session after logout: status = %d, want 401", resp.StatusCode)
	}
}

func TestClearResetsPageViews(t *testing.T) {
	env := newTestEnv(t, 2)
	article := createTestArticle(t, env.db, "public-piece", "Public Piece", "Body", false)
	path := articlePath(article.ID)

	// Exhaust the anonymous budget.
	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodGet, path, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("view %d: status = %d, want 200", i+1, resp.StatusCode)
		}
	}
	resp := env.do(t, http.MethodGet, path, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("over budget: status = %d, want 401", resp.StatusCode)
	}

	// Clearing the session resets the budget.
	resp = env.do(t, http.MethodDelete, "/clear", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear: status = %d, want 204", resp.StatusCode)
	}

	resp = env.do(t, http.MethodGet, path, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("view after clear: status = %d, want 200", resp.StatusCode)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	env := newTestEnv(t, 3)
	createTestUser(t, env.db, "ada", "Ada Lovelace")
	env.login(t, "ada")

	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodDelete, "/clear", "")
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("clear %d: status = %d, want 204", i+1, resp.StatusCode)
		}
	}

	resp := env.do(t, http.MethodGet, "/check_session", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("check_session after clear: status = %d, want 401", resp.StatusCode)
	}
}
