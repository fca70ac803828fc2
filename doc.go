// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the book review API server.

The server exposes a JSON/HTTP API for registering readers, browsing and
searching a shared book catalog, writing and liking reviews, organizing
books onto personal shelves, and tracking reading progress per book.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	DATABASE_URL=postgres://... TOKEN_KEY=<64 hex chars> go run .

Or against SQLite:

	go run . -t sqlite -d ./bookreview.db -token-key <64 hex chars>

Migrations run automatically at startup. The bookreviewctl command in
cmd/bookreviewctl runs them by hand and seeds sample data.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite file path
  - TOKEN_KEY (-token-key): 32-byte hex key for PASETO v4.local tokens

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): postgres(ql) or sqlite(3) (default: postgres)
  - TOKEN_TTL (-token-ttl): token lifetime (default: 24h)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - AUTH_RATE_LIMIT, AUTH_RATE_BURST: per-IP limit on /auth routes
  - TRUST_PROXY (-trust-proxy): take client IPs from proxy headers (default: false)

# Architecture

  - handlers: HTTP request handlers (auth, books, reviews, shelves, progress)
  - router: chi routes and middleware stack
  - middleware: logging, auth, rate limiting, JSON helpers
  - store: SQL persistence for both dialects
  - db: connections and embedded goose migrations
  - models: Request/response types
  - auth: bcrypt passwords and PASETO tokens
  - apperr: error codes shared by store and handlers
  - logging: slog handler construction
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
