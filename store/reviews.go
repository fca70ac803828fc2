// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// CreateReview records a rating and comment. The same user may review a
// book more than once.
func (s *Store) CreateReview(ctx context.Context, userID, bookID int64, rating int, comment string) (*models.Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, apperr.Validationf("rating must be between %d and %d", MinRating, MaxRating)
	}

	r := models.Review{Rating: rating, Comment: comment, BookID: bookID, UserID: userID}
	err := s.conn.QueryRowContext(ctx, `
		INSERT INTO reviews (rating, comment, book_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rating, comment, bookID, userID, s.now()).Scan(&r.ID, timeCol(&r.CreatedAt))
	if err != nil {
		switch classify(err) {
		case violationForeignKey:
			return nil, apperr.NotFound("book not found")
		case violationCheck:
			return nil, apperr.Validationf("rating must be between %d and %d", MinRating, MaxRating)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &r, nil
}

// ListReviewsForBook returns a book's reviews with reviewer name and like count, newest first.
func (s *Store) ListReviewsForBook(ctx context.Context, bookID int64) ([]models.BookReview, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT r.id, r.rating, r.comment, u.name, COUNT(rl.user_id), r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN review_likes rl ON rl.review_id = r.id
		WHERE r.book_id = $1
		GROUP BY r.id, r.rating, r.comment, u.name, r.created_at
		ORDER BY r.created_at DESC, r.id DESC
	`, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.BookReview{}
	for rows.Next() {
		var r models.BookReview
		if err := rows.Scan(&r.ID, &r.Rating, &r.Comment, &r.Reviewer, &r.Likes, timeCol(&r.CreatedAt)); err != nil {
			return nil, fmt.Errorf("scan book review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list book reviews: %w", err)
	}
	return reviews, nil
}

// ListReviewsByUser returns the user's own reviews, newest first.
func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) ([]models.UserReview, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT r.id, r.rating, r.comment, r.book_id, r.user_id, r.created_at, b.title, COUNT(rl.user_id)
		FROM reviews r
		JOIN books b ON b.id = r.book_id
		LEFT JOIN review_likes rl ON rl.review_id = r.id
		WHERE r.user_id = $1
		GROUP BY r.id, r.rating, r.comment, r.book_id, r.user_id, r.created_at, b.title
		ORDER BY r.created_at DESC, r.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.UserReview{}
	for rows.Next() {
		var r models.UserReview
		if err := rows.Scan(&r.ID, &r.Rating, &r.Comment, &r.BookID, &r.UserID, timeCol(&r.CreatedAt), &r.BookTitle, &r.Likes); err != nil {
			return nil, fmt.Errorf("scan user review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

// LikeReview records userID liking reviewID. Liking twice is a Conflict.
func (s *Store) LikeReview(ctx context.Context, userID, reviewID int64) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO review_likes (user_id, review_id, created_at)
		VALUES ($1, $2, $3)
	`, userID, reviewID, s.now())
	if err != nil {
		switch classify(err) {
		case violationUnique:
			return apperr.Conflict("review already liked")
		case violationForeignKey:
			return apperr.NotFound("review not found")
		}
		return fmt.Errorf("like review: %w", err)
	}
	return nil
}
