package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kiosk/internal/middleware"
	"kiosk/internal/session"
	"kiosk/internal/store"
)

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	Preview       string    `json:"preview"`
	MinutesToRead int64     `json:"minutes_to_read"`
	IsMemberOnly  bool      `json:"is_member_only"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// storeArticleToResponse converts a store.Article to ArticleResponse.
func storeArticleToResponse(a store.Article) ArticleResponse {
	return ArticleResponse{
		ID:            a.ID,
		Slug:          a.Slug,
		Author:        a.Author,
		Title:         a.Title,
		Content:       a.Content,
		ContentHTML:   renderMarkdown(a.Content),
		Preview:       a.Preview,
		MinutesToRead: a.MinutesToRead,
		IsMemberOnly:  a.IsMemberOnly != 0,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// storeArticlesToResponse converts a slice of store.Article. It always
// returns a non-nil slice so empty lists serialize as [] rather than null.
func storeArticlesToResponse(articles []store.Article) []ArticleResponse {
	resp := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, storeArticleToResponse(a))
	}
	return resp
}

// ListArticles handles GET /articles. Public: returns every article with
// full serialization.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.queries.ListArticles(r.Context())
	if err != nil {
		slog.Error("failed to list articles", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve articles")
		return
	}
	WriteJSON(w, http.StatusOK, storeArticlesToResponse(articles))
}

// ShowArticle handles GET /articles/{id}, the metered viewer.
//
// A request with a resolved session user always gets the article. An
// anonymous request first counts against the session's page-view budget:
// the counter is incremented before anything else, and keeps incrementing
// on requests past the limit, so the only way back under the limit is to
// authenticate or start a fresh session.
func (h *Handler) ShowArticle(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	if middleware.GetUser(r) == nil {
		views := session.IncrementPageViews(r.Context(), h.sm)
		if views > h.pageViewLimit {
			slog.Debug("page view limit reached", "views", views, "limit", h.pageViewLimit)
			WriteJSON(w, http.StatusUnauthorized, map[string]string{
				"message": "Maximum pageview limit reached",
			})
			return
		}
	}

	article, err := h.queries.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		slog.Error("failed to get article", "error", err, "id", id)
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve article")
		return
	}

	WriteJSON(w, http.StatusOK, storeArticleToResponse(article))
}

// MembersOnlyArticles handles GET /members_only_articles. Requires a
// resolved session user (enforced by middleware.RequireUser); returns only
// articles flagged members-only.
func (h *Handler) MembersOnlyArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.queries.ListMemberArticles(r.Context())
	if err != nil {
		slog.Error("failed to list member articles", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve articles")
		return
	}
	WriteJSON(w, http.StatusOK, storeArticlesToResponse(articles))
}

// MembersOnlyArticle handles GET /members_only_articles/{id}. The lookup is
// by id AND the members-only flag, so ids of existing public articles are a
// 404 just like missing ids.
func (h *Handler) MembersOnlyArticle(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	article, err := h.queries.GetMemberArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		slog.Error("failed to get member article", "error", err, "id", id)
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve article")
		return
	}

	WriteJSON(w, http.StatusOK, storeArticleToResponse(article))
}
