// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/models"
)

var readingStatuses = map[string]bool{
	models.StatusWantToRead: true,
	models.StatusReading:    true,
	models.StatusRead:       true,
	models.StatusDNF:        true,
}

// ValidStatus reports whether status is one of the reading statuses.
func ValidStatus(status string) bool {
	return readingStatuses[status]
}

// SetReadingProgress creates or updates the user's record for a book in one
// statement. start_date is only written when the record is created.
// finish_date is stamped the first time the status becomes read and
// cleared when it moves away from read.
func (s *Store) SetReadingProgress(ctx context.Context, userID, bookID int64, status string, currentPage int) (*models.ReadingProgress, error) {
	if !ValidStatus(status) {
		return nil, apperr.Validationf("invalid status %q", status)
	}
	if currentPage < 0 {
		return nil, apperr.Validation("current_page must not be negative")
	}
	if currentPage > MaxPages {
		return nil, apperr.Validationf("current_page must be at most %d", MaxPages)
	}

	now := s.now()
	var finish *time.Time
	if status == models.StatusRead {
		finish = &now
	}

	p := models.ReadingProgress{}
	err := s.conn.QueryRowContext(ctx, `
		INSERT INTO reading_progress (user_id, book_id, status, current_page, start_date, finish_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, book_id) DO UPDATE SET
			status = EXCLUDED.status,
			current_page = EXCLUDED.current_page,
			finish_date = CASE
				WHEN EXCLUDED.status = 'read' THEN COALESCE(reading_progress.finish_date, EXCLUDED.finish_date)
				ELSE NULL
			END
		RETURNING id, user_id, book_id, status, current_page, start_date, finish_date
	`, userID, bookID, status, currentPage, now, finish).Scan(
		&p.ID, &p.UserID, &p.BookID, &p.Status, &p.CurrentPage,
		nullTimeCol{&p.StartDate}, nullTimeCol{&p.FinishDate},
	)
	if err != nil {
		switch classify(err) {
		case violationForeignKey:
			return nil, apperr.NotFound("book not found")
		case violationCheck:
			return nil, apperr.Validationf("invalid status %q", status)
		}
		return nil, fmt.Errorf("set reading progress: %w", err)
	}
	return &p, nil
}

// ListReadingProgress returns the user's records with book titles, most
// recently started first.
func (s *Store) ListReadingProgress(ctx context.Context, userID int64) ([]models.ReadingProgress, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT rp.id, rp.user_id, rp.book_id, rp.status, rp.current_page, rp.start_date, rp.finish_date, b.title
		FROM reading_progress rp
		JOIN books b ON b.id = rp.book_id
		WHERE rp.user_id = $1
		ORDER BY rp.start_date DESC, rp.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reading progress: %w", err)
	}
	defer rows.Close()

	records := []models.ReadingProgress{}
	for rows.Next() {
		var p models.ReadingProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookID, &p.Status, &p.CurrentPage,
			nullTimeCol{&p.StartDate}, nullTimeCol{&p.FinishDate}, &p.BookTitle); err != nil {
			return nil, fmt.Errorf("scan reading progress: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reading progress: %w", err)
	}
	return records, nil
}
