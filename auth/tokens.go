// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "bookreview-server"
	tokenAudience = "bookreview-client"

	keyBytesSize = 32
	keyHexSize   = 64
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"sub"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService issues and verifies PASETO v4.local bearer tokens.
type TokenService struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
	now func() time.Time
}

// NewTokenService builds a token service from a 64-character hex key.
func NewTokenService(keyHex string, ttl time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("token key must be exactly %d hex characters, got %d", keyHexSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for token key: %w", err)
	}
	if len(keyBytes) != keyBytesSize {
		return nil, fmt.Errorf("decoded key must be exactly %d bytes, got %d", keyBytesSize, len(keyBytes))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("create symmetric key: %w", err)
	}

	return &TokenService{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue creates a token whose subject is userID. It also returns the expiry.
func (s *TokenService) Issue(userID int64) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(strconv.FormatInt(userID, 10))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expires)
	token.SetJti(uuid.NewString())

	if err := token.Set("user_id", userID); err != nil {
		return "", time.Time{}, fmt.Errorf("set user claim: %w", err)
	}

	return token.V4Encrypt(s.key, nil), expires, nil
}

// Verify decrypts tok and checks issuer, audience and validity window.
// Any failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tok string) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, tok, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims Claims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", ErrInvalidToken, err)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidToken)
	}

	return &claims, nil
}
