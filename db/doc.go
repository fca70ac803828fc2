// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Dialects

Two backends are supported:

	postgres  github.com/lib/pq, the production store
	sqlite    modernc.org/sqlite, for tests and single-node installs

Open pings the database before returning. SQLite connections get
foreign_keys, busy_timeout and WAL pragmas, and transactions begin
IMMEDIATE so that check-then-mutate transactions take the write lock up
front.

Dialect exposes the few SQL fragments that differ between backends
(ILike, ForUpdate). Everything else, including $N placeholders,
ON CONFLICT and RETURNING, is shared.

# Migrations

Schema changes are goose migrations embedded from migrations/<dialect>/:

	if err := db.Migrate(conn, db.Postgres); err != nil {
		log.Fatal(err)
	}

Migrate is safe to call on every start. MigrateDown, MigrationStatus and
Version back the bookreviewctl migrate subcommands.

# Tables

users, books, reviews, review_likes, shelves, shelf_items and
reading_progress. Every child foreign key cascades on delete.
reading_progress is unique on (user_id, book_id).
*/
package db
