package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kiosk/internal/util"
)

// seedUsers are the default accounts created on first run.
var seedUsers = []struct {
	Username string
	Name     string
}{
	{"ada", "Ada Lovelace"},
	{"grace", "Grace Hopper"},
	{"linus", "Linus Torvalds"},
}

// seedArticles is the default content set: a mix of public and members-only pieces.
var seedArticles = []struct {
	Author        string
	Title         string
	Content       string
	Preview       string
	MinutesToRead int64
	MemberOnly    bool
}{
	{
		Author: "Ada Lovelace",
		Title:  "Getting Started with the Analytical Engine",
		Content: "## A machine for more than numbers\n\nThe engine might act upon " +
			"other things besides number, were objects found whose mutual " +
			"fundamental relations could be expressed by those of the abstract " +
			"science of operations.",
		Preview:       "The engine might act upon other things besides number.",
		MinutesToRead: 4,
		MemberOnly:    false,
	},
	{
		Author: "Grace Hopper",
		Title:  "Ships in Harbor",
		Content: "A ship in harbor is safe, but that is not what ships are built " +
			"for.\n\n- Try it\n- Measure it\n- Ship it",
		Preview:       "On why it is easier to ask forgiveness than permission.",
		MinutesToRead: 3,
		MemberOnly:    false,
	},
	{
		Author: "Linus Torvalds",
		Title:  "Just a Hobby",
		Content: "I'm doing a (free) operating system, just a hobby, won't be big " +
			"and professional.",
		Preview:       "Notes on starting small.",
		MinutesToRead: 2,
		MemberOnly:    false,
	},
	{
		Author: "Ada Lovelace",
		Title:  "Poetical Science: The Full Notes",
		Content: "## Note G\n\nThe complete annotated translation, including the " +
			"Bernoulli number program in full.",
		Preview:       "The complete Note G, for members.",
		MinutesToRead: 12,
		MemberOnly:    true,
	},
	{
		Author: "Grace Hopper",
		Title:  "Inside the First Compiler",
		Content: "A walkthrough of the A-0 system internals, subroutine by " +
			"subroutine.",
		Preview:       "A-0 internals, for members.",
		MinutesToRead: 9,
		MemberOnly:    true,
	},
}

// Seed creates initial data in the database when seeding is enabled.
// It is idempotent: seeding is skipped once any user exists.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		slog.Debug("seeding disabled, skipping")
		return nil
	}

	queries := New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if count > 0 {
		slog.Info("users already exist, skipping seed")
		return nil
	}

	now := time.Now()
	for _, su := range seedUsers {
		user, err := queries.CreateUser(ctx, CreateUserParams{
			Username:  su.Username,
			Name:      su.Name,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating seed user %q: %w", su.Username, err)
		}
		slog.Info("created seed user", "id", user.ID, "username", user.Username)
	}

	for _, sa := range seedArticles {
		memberOnly := int64(0)
		if sa.MemberOnly {
			memberOnly = 1
		}
		article, err := queries.CreateArticle(ctx, CreateArticleParams{
			Slug:          util.Slugify(sa.Title),
			Author:        sa.Author,
			Title:         sa.Title,
			Content:       sa.Content,
			Preview:       sa.Preview,
			MinutesToRead: sa.MinutesToRead,
			IsMemberOnly:  memberOnly,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("creating seed article %q: %w", sa.Title, err)
		}
		slog.Info("created seed article",
			"id", article.ID,
			"slug", article.Slug,
			"member_only", sa.MemberOnly,
		)
	}

	return nil
}
