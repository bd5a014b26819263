package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB / *sql.Tx the query layer needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the users and articles tables.
type Queries struct {
	db DBTX
}

// New creates a Queries instance backed by the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance that runs against the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const getUserByID = `
SELECT id, username, name, created_at, updated_at
FROM users
WHERE id = ?
`

// GetUserByID fetches a single user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByUsername = `
SELECT id, username, name, created_at, updated_at
FROM users
WHERE username = ?
`

// GetUserByUsername fetches a single user by their unique username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateUserParams holds the insert parameters for CreateUser.
type CreateUserParams struct {
	Username  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createUser = `
INSERT INTO users (username, name, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id, username, name, created_at, updated_at
`

// CreateUser inserts a user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.Username, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const countUsers = `
SELECT COUNT(*) FROM users
`

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listArticles = `
SELECT id, slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at
FROM articles
ORDER BY created_at DESC, id DESC
`

// ListArticles returns all articles, newest first.
func (q *Queries) ListArticles(ctx context.Context) ([]Article, error) {
	rows, err := q.db.QueryContext(ctx, listArticles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID, &a.Slug, &a.Author, &a.Title, &a.Content, &a.Preview,
			&a.MinutesToRead, &a.IsMemberOnly, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getArticleByID = `
SELECT id, slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at
FROM articles
WHERE id = ?
`

// GetArticleByID fetches a single article by primary key.
func (q *Queries) GetArticleByID(ctx context.Context, id int64) (Article, error) {
	row := q.db.QueryRowContext(ctx, getArticleByID, id)
	var a Article
	err := row.Scan(
		&a.ID, &a.Slug, &a.Author, &a.Title, &a.Content, &a.Preview,
		&a.MinutesToRead, &a.IsMemberOnly, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

const listMemberArticles = `
SELECT id, slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at
FROM articles
WHERE is_member_only = 1
ORDER BY created_at DESC, id DESC
`

// ListMemberArticles returns all articles flagged as members-only, newest first.
func (q *Queries) ListMemberArticles(ctx context.Context) ([]Article, error) {
	rows, err := q.db.QueryContext(ctx, listMemberArticles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID, &a.Slug, &a.Author, &a.Title, &a.Content, &a.Preview,
			&a.MinutesToRead, &a.IsMemberOnly, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMemberArticleByID = `
SELECT id, slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at
FROM articles
WHERE id = ? AND is_member_only = 1
`

// GetMemberArticleByID fetches a members-only article by primary key.
// Returns sql.ErrNoRows for ids of public articles as well as missing ids.
func (q *Queries) GetMemberArticleByID(ctx context.Context, id int64) (Article, error) {
	row := q.db.QueryRowContext(ctx, getMemberArticleByID, id)
	var a Article
	err := row.Scan(
		&a.ID, &a.Slug, &a.Author, &a.Title, &a.Content, &a.Preview,
		&a.MinutesToRead, &a.IsMemberOnly, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// CreateArticleParams holds the insert parameters for CreateArticle.
type CreateArticleParams struct {
	Slug          string
	Author        string
	Title         string
	Content       string
	Preview       string
	MinutesToRead int64
	IsMemberOnly  int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const createArticle = `
INSERT INTO articles (slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, slug, author, title, content, preview, minutes_to_read, is_member_only, created_at, updated_at
`

// CreateArticle inserts an article and returns the stored row.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, createArticle,
		arg.Slug, arg.Author, arg.Title, arg.Content, arg.Preview,
		arg.MinutesToRead, arg.IsMemberOnly, arg.CreatedAt, arg.UpdatedAt,
	)
	var a Article
	err := row.Scan(
		&a.ID, &a.Slug, &a.Author, &a.Title, &a.Content, &a.Preview,
		&a.MinutesToRead, &a.IsMemberOnly, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

const countArticles = `
SELECT COUNT(*) FROM articles
`

// CountArticles returns the total number of articles.
func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countArticles)
	var count int64
	err := row.Scan(&count)
	return count, err
}
