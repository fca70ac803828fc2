// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging logs one line per request with method, path, status, bytes,
duration_ms, client IP and the chi request id. 5xx responses log at error
level and 4xx at warn.

# Authentication

RequireAuth validates the bearer token and stores the caller's id in the
request context:

	r.With(middleware.RequireAuth(tokens)).Get("/my-reviews", h.ListMine)

	userID, ok := middleware.UserIDFromContext(r.Context())

Missing, malformed, invalid and expired tokens all get 401.

# Rate Limiting

RateLimit applies a token bucket per client IP (KeyedRateLimiter, backed
by golang.org/x/time/rate) and answers 429 when it is exhausted. Idle
buckets are evicted in the background.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.WriteError(w, r, err)

WriteError is the only place errors become HTTP responses. It maps
*apperr.Error codes to statuses and reports anything else as 500 with the
underlying message. Error bodies look like:

	{"error": "Not Found", "code": "NOT_FOUND", "message": "book not found"}

ParseJSONBody decodes a request body of at most 1 MiB and reports
malformed input as a validation error.

# Client IP Extraction

GetClientIP reads RemoteAddr only, so clients cannot pick their own rate
limit bucket with forwarded headers. Behind a trusted proxy the router
installs chi's RealIP first, which rewrites RemoteAddr from those headers.
*/
package middleware
