// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/models"
)

// ProgressStore is the reading-progress persistence ProgressHandler needs.
type ProgressStore interface {
	SetReadingProgress(ctx context.Context, userID, bookID int64, status string, currentPage int) (*models.ReadingProgress, error)
	ListReadingProgress(ctx context.Context, userID int64) ([]models.ReadingProgress, error)
}

type ProgressHandler struct {
	progress ProgressStore
	validate *Validator
}

func NewProgressHandler(progress ProgressStore, validate *Validator) *ProgressHandler {
	return &ProgressHandler{progress: progress, validate: validate}
}

// UpdateStatus handles PUT /books/{id}/status
func (h *ProgressHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	bookID, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	record, err := h.progress.SetReadingProgress(r.Context(), userID, bookID, req.Status, req.CurrentPage)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, record)
}

// List handles GET /reading-progress
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	records, err := h.progress.ListReadingProgress(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, records)
}
