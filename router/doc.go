// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the book review API.

# Route Registration

NewRouter builds a chi router with every endpoint and the shared
middleware stack (request id, logging, panic recovery, CORS). chi's RealIP
runs after the request id only when cfg.TrustProxy is set:

	rt := router.NewRouter(st, tokens, cfg)
	defer rt.Close()

# Endpoints

Public:

	GET  /health              - Liveness check
	POST /auth/register       - Create account (rate limited)
	POST /auth/login          - Issue token (rate limited)
	GET  /books               - List books with average rating
	GET  /books/search?title= - Case-insensitive title search
	GET  /books/{id}          - Book detail with reviews

Authenticated (Authorization: Bearer <token>):

	POST   /books               - Add a book to the catalog
	PUT    /books/{id}/status   - Upsert reading progress
	GET    /reading-progress    - Caller's reading progress
	POST   /reviews             - Review a book
	POST   /reviews/{id}/like   - Like a review once
	GET    /my-reviews          - Caller's reviews
	POST   /shelves             - Create shelf
	GET    /shelves             - Caller's shelves with item counts
	GET    /shelves/{id}        - Shelf with its books
	DELETE /shelves/{id}        - Delete shelf and its items
	POST   /shelves/{id}/add    - Add book to shelf
	DELETE /shelves/{id}/remove - Remove book from shelf
*/
package router
