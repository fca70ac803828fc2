// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error taxonomy shared by the store, auth and
handler layers.

# Codes

Every classified error carries a Code that maps to one HTTP status:

	VALIDATION          400  malformed or missing input
	INVALID_CREDENTIALS 400  unknown email or wrong password
	UNAUTHORIZED        401  missing, invalid or expired bearer token
	FORBIDDEN           403  caller does not own the resource
	NOT_FOUND           404  missing resource
	CONFLICT            400  uniqueness violation (duplicate email, duplicate like)
	RATE_LIMITED        429  too many auth attempts
	INTERNAL            500  anything else

# Usage

Stores and services return typed errors:

	return apperr.Conflict("review already liked")

Callers check with errors.Is against the sentinels, which match by code:

	if errors.Is(err, apperr.ErrNotFound) {
		...
	}

Errors that are not *apperr.Error are reported as INTERNAL with their
message passed through.
*/
package apperr
