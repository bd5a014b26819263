package handler

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"kiosk/internal/middleware"
	"kiosk/internal/store"
)

// testDB creates an in-memory SQLite database with the users and articles tables.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			author TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			preview TEXT NOT NULL DEFAULT '',
			minutes_to_read INTEGER NOT NULL DEFAULT 0,
			is_member_only BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, db *sql.DB, username, name string) store.User {
	t.Helper()
	now := time.Now()
	result, err := db.Exec(
		`INSERT INTO users (username, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		username, name, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return store.User{ID: id, Username: username, Name: name, CreatedAt: now, UpdatedAt: now}
}

// createTestArticle inserts an article and returns it.
func createTestArticle(t *testing.T, db *sql.DB, slug, title, content string, memberOnly bool) store.Article {
	t.Helper()
	now := time.Now()
	flag := 0
	if memberOnly {
		flag = 1
	}
	result, err := db.Exec(
		`INSERT INTO articles (slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at)
		 VALUES (?, 'Test Author', ?, ?, 'preview', 5, ?, ?, ?)`,
		slug, title, content, flag, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test article: %v", err)
	}
	id, _ := result.LastInsertId()
	return store.Article{
		ID: id, Slug: slug, Author: "Test Author", Title: title, Content: content,
		Preview: "preview", MinutesToRead: 5, IsMemberOnly: int64(flag),
		CreatedAt: now, UpdatedAt: now,
	}
}

// testEnv bundles a running test server and a cookie-carrying client, so a
// sequence of requests shares one session like a real browser.
type testEnv struct {
	db     *sql.DB
	server *httptest.Server
	client *http.Client
}

// newTestEnv wires the full request path: sessions, user loading, routes.
func newTestEnv(t *testing.T, pageViewLimit int) *testEnv {
	t.Helper()

	db := testDB(t)

	sm := scs.New()
	sm.Store = memstore.New()

	apiHandler := NewHandler(db, sm, pageViewLimit)
	healthHandler := NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm, db))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Post("/login", apiHandler.Login)
	r.Delete("/logout", apiHandler.Logout)
	r.Delete("/clear", apiHandler.ClearSession)
	r.Get("/check_session", apiHandler.CheckSession)

	r.Get("/articles", apiHandler.ListArticles)
	r.Get("/articles/{id}", apiHandler.ShowArticle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser())
		r.Get("/members_only_articles", apiHandler.MembersOnlyArticles)
		r.Get("/members_only_articles/{id}", apiHandler.MembersOnlyArticle)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	return &testEnv{
		db:     db,
		server: server,
		client: &http.Client{Jar: jar},
	}
}

// do issues a request with the environment's cookie-carrying client.
func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

// login authenticates the environment's session as the given username.
func (e *testEnv) login(t *testing.T, username string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/login", `{"username": "`+username+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %q: status = %d, want 200", username, resp.StatusCode)
	}
}

// decodeBody unmarshals a response body into the given type.
func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return v
}

// articlePath builds the public single-article path for an id.
func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}

// memberArticlePath builds the members-only single-article path for an id.
func memberArticlePath(id int64) string {
	return "/members_only_articles/" + strconv.FormatInt(id, 10)
}

// readBody returns the full response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}
