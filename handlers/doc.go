// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the book review API.

# Handler Types

Each handler is a struct holding a narrow store interface and the shared
request validator:

  - AuthHandler: registration and login
  - BookHandler: catalog listing, search, detail, and creation
  - ReviewHandler: reviews and likes
  - ShelfHandler: user-owned shelves and their books
  - ProgressHandler: per-book reading status

Handlers are created via constructor functions. *store.Store satisfies
every store interface:

	v := handlers.NewValidator()
	books := handlers.NewBookHandler(st, v)

# Errors

Handlers never write error bodies themselves. Every failure is an
*apperr.Error (or an unclassified error) passed to middleware.WriteError,
which picks the status code:

	400 VALIDATION, INVALID_CREDENTIALS, CONFLICT
	401 UNAUTHORIZED
	403 FORBIDDEN
	404 NOT_FOUND
	429 RATE_LIMITED
	500 INTERNAL

# Authentication

Protected handlers read the caller from middleware.UserIDFromContext.
They rely on the router mounting them behind middleware.RequireAuth.
*/
package handlers
