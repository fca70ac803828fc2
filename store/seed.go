// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/bookreview/apperr"
)

type seedUser struct{ email, name string }

type seedBook struct{ title, author, description string }

type seedReview struct {
	book, user int
	rating     int
	comment    string
}

var (
	seedUsers = []seedUser{
		{"ali@example.com", "Ali Topan"},
		{"budi@example.com", "Budi Santoso"},
		{"citra@example.com", "Citra Kirana"},
	}
	seedBooks = []seedBook{
		{"Laskar Pelangi", "Andrea Hirata", "Children of Belitung chasing their dreams."},
		{"Atomic Habits", "James Clear", "Building good habits and breaking bad ones."},
		{"Filosofi Teras", "Henry Manampiring", "Stoicism applied to everyday life."},
	}
	// book and user are indexes into seedBooks and seedUsers
	seedReviews = []seedReview{
		{0, 0, 5, "Inspiring, a must read!"},
		{0, 1, 4, "Great story, though the ending is sad."},
		{1, 2, 5, "Best self-help book this year."},
		{2, 0, 4, "Opened my eyes about a calm life."},
	}
)

// SeedResult counts the rows Seed inserted.
type SeedResult struct {
	Users   int
	Books   int
	Reviews int
}

// Seed inserts sample users, books and reviews in one transaction. Every
// sample user gets passwordHash. Seeding a database that already holds the
// sample users is a Conflict and inserts nothing.
func (s *Store) Seed(ctx context.Context, passwordHash string) (SeedResult, error) {
	var res SeedResult
	now := s.now()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		userIDs := make([]int64, len(seedUsers))
		for i, u := range seedUsers {
			err := tx.QueryRowContext(ctx, `
				INSERT INTO users (email, name, password_hash, created_at)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, u.email, u.name, passwordHash, now).Scan(&userIDs[i])
			if err != nil {
				if isUniqueViolation(err) {
					return apperr.Conflict("sample data already present")
				}
				return fmt.Errorf("seed user %s: %w", u.email, err)
			}
			res.Users++
		}

		bookIDs := make([]int64, len(seedBooks))
		for i, b := range seedBooks {
			err := tx.QueryRowContext(ctx, `
				INSERT INTO books (title, author, description, total_pages, created_at)
				VALUES ($1, $2, $3, 0, $4)
				RETURNING id
			`, b.title, b.author, b.description, now).Scan(&bookIDs[i])
			if err != nil {
				return fmt.Errorf("seed book %q: %w", b.title, err)
			}
			res.Books++
		}

		for _, r := range seedReviews {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO reviews (rating, comment, book_id, user_id, created_at)
				VALUES ($1, $2, $3, $4, $5)
			`, r.rating, r.comment, bookIDs[r.book], userIDs[r.user], now)
			if err != nil {
				return fmt.Errorf("seed review: %w", err)
			}
			res.Reviews++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
