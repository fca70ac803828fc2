// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/models"
)

// MaxBookList caps catalog listings.
const MaxBookList = 100

// MaxPages bounds total_pages and current_page, which are 32-bit columns.
const MaxPages = math.MaxInt32

const ratedBookColumns = `
	b.id, b.title, b.author, b.description, b.total_pages, b.created_at,
	ROUND(COALESCE(AVG(r.rating), 0), 1) AS rating`

func scanRatedBook(row interface{ Scan(...any) error }) (models.RatedBook, error) {
	var b models.RatedBook
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.TotalPages, timeCol(&b.CreatedAt), &b.Rating)
	return b, err
}

func (s *Store) queryRatedBooks(ctx context.Context, query string, args ...any) ([]models.RatedBook, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.RatedBook{}
	for rows.Next() {
		b, err := scanRatedBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// CreateBook adds a catalog entry.
func (s *Store) CreateBook(ctx context.Context, title, author, description string, totalPages int) (*models.Book, error) {
	if totalPages < 0 || totalPages > MaxPages {
		return nil, apperr.Validationf("total_pages must be between 0 and %d", MaxPages)
	}

	b := models.Book{Title: title, Author: author, Description: description, TotalPages: totalPages}

	err := s.conn.QueryRowContext(ctx, `
		INSERT INTO books (title, author, description, total_pages, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, title, author, description, totalPages, s.now()).Scan(&b.ID, timeCol(&b.CreatedAt))
	if err != nil {
		if isCheckViolation(err) {
			return nil, apperr.Validation("invalid book")
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return &b, nil
}

// ListBooks returns up to MaxBookList books with their average rating, oldest id first.
func (s *Store) ListBooks(ctx context.Context) ([]models.RatedBook, error) {
	books, err := s.queryRatedBooks(ctx, `
		SELECT`+ratedBookColumns+`
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id
		GROUP BY b.id, b.title, b.author, b.description, b.total_pages, b.created_at
		ORDER BY b.id ASC
		LIMIT $1
	`, MaxBookList)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// SearchBooks matches title case-insensitively as a substring.
// An empty result is NotFound.
func (s *Store) SearchBooks(ctx context.Context, title string) ([]models.RatedBook, error) {
	books, err := s.queryRatedBooks(ctx, `
		SELECT`+ratedBookColumns+`
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id
		WHERE b.title `+s.dialect.ILike()+` $1 ESCAPE '\'
		GROUP BY b.id, b.title, b.author, b.description, b.total_pages, b.created_at
		ORDER BY b.id ASC
		LIMIT $2
	`, "%"+escapeLike(title)+"%", MaxBookList)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	if len(books) == 0 {
		return nil, apperr.NotFound("no books match that title")
	}
	return books, nil
}

// GetBook returns a book with its rating and reviews.
func (s *Store) GetBook(ctx context.Context, id int64) (*models.BookDetail, error) {
	b, err := scanRatedBook(s.conn.QueryRowContext(ctx, `
		SELECT`+ratedBookColumns+`
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id
		WHERE b.id = $1
		GROUP BY b.id, b.title, b.author, b.description, b.total_pages, b.created_at
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("book not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	reviews, err := s.ListReviewsForBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.BookDetail{RatedBook: b, Reviews: reviews}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
// Queries pair it with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
