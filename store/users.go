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

// CreateUser inserts an account. A taken email is a Conflict.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	u := models.User{Email: email, Name: name, PasswordHash: passwordHash}

	err := s.conn.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, email, name, passwordHash, s.now()).Scan(&u.ID, timeCol(&u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &u, nil
}

// GetUserByEmail looks up an account including its password hash.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, timeCol(&u.CreatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
