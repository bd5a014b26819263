package store

import (
	"time"
)

// User is a row in the users table.
type User struct {
	ID        int64
	Username  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Article is a row in the articles table. IsMemberOnly is stored as an
// integer flag (SQLite has no native boolean).
type Article struct {
	ID            int64
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
