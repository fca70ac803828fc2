// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/auth"
	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/models"
)

// UserStore is the account persistence AuthHandler needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	users    UserStore
	tokens   *auth.TokenService
	validate *Validator
}

func NewAuthHandler(users UserStore, tokens *auth.TokenService, validate *Validator) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, validate: validate}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Validate(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Name, hash)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Message: "registration successful",
		User:    *user,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validate.Validate(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		middleware.WriteError(w, r, apperr.InvalidCredentials("user not found"))
		return
	}
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			slog.Warn("login failed", "user_id", user.ID, "reason", "wrong password")
			middleware.WriteError(w, r, apperr.InvalidCredentials("wrong password"))
			return
		}
		middleware.WriteError(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message:   "login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	})
}
