// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/models"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		input   any
		wantMsg string
	}{
		{"valid register", models.RegisterRequest{Email: "a@x.com", Name: "A", Password: "pw"}, ""},
		{"missing email", models.RegisterRequest{Name: "A", Password: "pw"}, "email is required"},
		{"bad email", models.RegisterRequest{Email: "nope", Name: "A", Password: "pw"}, "email must be a valid email address"},
		{"rating too high", models.CreateReviewRequest{BookID: 1, Rating: 6}, "rating must be at most 5"},
		{"rating too low", models.CreateReviewRequest{BookID: 1, Rating: 0}, "rating must be at least 1"},
		{"missing book id", models.ShelfBookRequest{}, "book_id is required"},
		{"bad status", models.UpdateStatusRequest{Status: "paused"}, "status must be one of: want-to-read reading read dnf"},
		{"negative page", models.UpdateStatusRequest{Status: "reading", CurrentPage: -1}, "current_page must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateDetails(t *testing.T) {
	err := NewValidator().Validate(models.RegisterRequest{})

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "is required", details["password"])
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.raw)
			r := httptest.NewRequest("GET", "/", nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := pathID(r, "id")
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrValidation)
				assert.Equal(t, "invalid id", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
