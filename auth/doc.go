// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and bearer token utilities.

# Passwords

Passwords are stored as salted bcrypt hashes (cost 10):

	hash, err := auth.HashPassword(password)
	err = auth.VerifyPassword(password, hash) // ErrPasswordMismatch on mismatch

bcrypt only reads the first 72 bytes of a password, so request validation
caps password length at 72.

# Tokens

Bearer tokens are PASETO v4.local (symmetric, encrypted) with a
configurable lifetime (24h by default):

	tokens, err := auth.NewTokenService(keyHex, 24*time.Hour)
	tok, expiresAt, err := tokens.Issue(userID)
	claims, err := tokens.Verify(tok)

The token subject and the user_id claim both carry the user id. Each token
has a random jti. Verify rejects tokens that are expired, not yet valid,
or minted for another issuer or audience.
*/
package auth
