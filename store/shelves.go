// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/models"
)

// CreateShelf adds a shelf for ownerID. Names need not be unique.
func (s *Store) CreateShelf(ctx context.Context, ownerID int64, name string) (*models.Shelf, error) {
	sh := models.Shelf{UserID: ownerID, Name: name}
	err := s.conn.QueryRowContext(ctx, `
		INSERT INTO shelves (user_id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, ownerID, name, s.now()).Scan(&sh.ID, timeCol(&sh.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create shelf: %w", err)
	}
	return &sh, nil
}

// ListShelves returns the owner's shelves with item counts, newest first.
// Empty shelves report a count of 0.
func (s *Store) ListShelves(ctx context.Context, ownerID int64) ([]models.ShelfSummary, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT sh.id, sh.user_id, sh.name, sh.created_at, COUNT(si.book_id)
		FROM shelves sh
		LEFT JOIN shelf_items si ON si.shelf_id = sh.id
		WHERE sh.user_id = $1
		GROUP BY sh.id, sh.user_id, sh.name, sh.created_at
		ORDER BY sh.created_at DESC, sh.id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	defer rows.Close()

	shelves := []models.ShelfSummary{}
	for rows.Next() {
		var sh models.ShelfSummary
		if err := rows.Scan(&sh.ID, &sh.UserID, &sh.Name, timeCol(&sh.CreatedAt), &sh.ItemCount); err != nil {
			return nil, fmt.Errorf("scan shelf: %w", err)
		}
		shelves = append(shelves, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	return shelves, nil
}

// GetShelfDetail returns a shelf and its books, most recently added first.
// Missing and not-owned shelves are both NotFound.
func (s *Store) GetShelfDetail(ctx context.Context, ownerID, shelfID int64) (*models.ShelfDetail, error) {
	var d models.ShelfDetail
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM shelves
		WHERE id = $1 AND user_id = $2
	`, shelfID, ownerID).Scan(&d.ID, &d.UserID, &d.Name, timeCol(&d.CreatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("shelf not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get shelf: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT b.id, b.title, b.author, b.description, b.total_pages, b.created_at, si.added_at
		FROM shelf_items si
		JOIN books b ON b.id = si.book_id
		WHERE si.shelf_id = $1
		ORDER BY si.added_at DESC, b.id DESC
	`, shelfID)
	if err != nil {
		return nil, fmt.Errorf("list shelf books: %w", err)
	}
	defer rows.Close()

	d.Books = []models.ShelfBook{}
	for rows.Next() {
		var b models.ShelfBook
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.TotalPages, timeCol(&b.CreatedAt), timeCol(&b.AddedAt)); err != nil {
			return nil, fmt.Errorf("scan shelf book: %w", err)
		}
		d.Books = append(d.Books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shelf books: %w", err)
	}
	return &d, nil
}

// checkShelfOwner locks the shelf row for the rest of tx when it belongs to ownerID.
// A missing shelf and someone else's shelf are both Forbidden.
func (s *Store) checkShelfOwner(ctx context.Context, tx *sql.Tx, ownerID, shelfID int64) error {
	var id int64
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM shelves
		WHERE id = $1 AND user_id = $2`+s.dialect.ForUpdate(),
		shelfID, ownerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Forbidden("shelf not found or not owned by you")
	}
	if err != nil {
		return fmt.Errorf("check shelf owner: %w", err)
	}
	return nil
}

// AddBookToShelf puts bookID on the shelf. Adding a book already there is a no-op.
func (s *Store) AddBookToShelf(ctx context.Context, ownerID, shelfID, bookID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkShelfOwner(ctx, tx, ownerID, shelfID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO shelf_items (shelf_id, book_id, added_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (shelf_id, book_id) DO NOTHING
		`, shelfID, bookID, s.now())
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperr.NotFound("book not found")
			}
			return fmt.Errorf("add book to shelf: %w", err)
		}
		return nil
	})
}

// RemoveBookFromShelf takes bookID off the shelf. Removing a non-member is a no-op.
func (s *Store) RemoveBookFromShelf(ctx context.Context, ownerID, shelfID, bookID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkShelfOwner(ctx, tx, ownerID, shelfID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM shelf_items
			WHERE shelf_id = $1 AND book_id = $2
		`, shelfID, bookID); err != nil {
			return fmt.Errorf("remove book from shelf: %w", err)
		}
		return nil
	})
}

// DeleteShelf removes the shelf and its memberships together.
func (s *Store) DeleteShelf(ctx context.Context, ownerID, shelfID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkShelfOwner(ctx, tx, ownerID, shelfID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM shelf_items WHERE shelf_id = $1`, shelfID); err != nil {
			return fmt.Errorf("delete shelf items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shelves WHERE id = $1 AND user_id = $2`, shelfID, ownerID); err != nil {
			return fmt.Errorf("delete shelf: %w", err)
		}
		return nil
	})
}
