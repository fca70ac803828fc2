// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer: users, the book catalog, reviews
and likes, shelves and reading progress.

	s := store.New(conn, db.Postgres)
	rec, err := s.SetReadingProgress(ctx, userID, bookID, models.StatusReading, 10)

Every method takes the request context and returns either a model or an
*apperr.Error for conditions callers act on (not found, forbidden,
conflict, validation). Anything else is returned wrapped and surfaces as
an internal error.

# Reading progress

SetReadingProgress is a single INSERT ... ON CONFLICT (user_id, book_id)
DO UPDATE statement, so concurrent writers for the same pair never
produce a second row. start_date is written only when the record is
created. A missing book is detected from the foreign key violation.

# Shelves

AddBookToShelf, RemoveBookFromShelf and DeleteShelf check ownership and
mutate inside one transaction. On PostgreSQL the ownership read locks the
shelf row; SQLite transactions are opened IMMEDIATE. Adding a member
twice and removing a non-member are both no-ops.

# Driver errors

Constraint failures from lib/pq and modernc.org/sqlite are classified into
unique, foreign key and check violations so handlers never inspect driver
error types.

# Sample data

Seed inserts the sample users, books and reviews used by bookreviewctl in
one transaction.
*/
package store
