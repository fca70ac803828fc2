// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/models"
)

// ShelfStore is the shelf persistence ShelfHandler needs.
type ShelfStore interface {
	CreateShelf(ctx context.Context, ownerID int64, name string) (*models.Shelf, error)
	ListShelves(ctx context.Context, ownerID int64) ([]models.ShelfSummary, error)
	GetShelfDetail(ctx context.Context, ownerID, shelfID int64) (*models.ShelfDetail, error)
	AddBookToShelf(ctx context.Context, ownerID, shelfID, bookID int64) error
	RemoveBookFromShelf(ctx context.Context, ownerID, shelfID, bookID int64) error
	DeleteShelf(ctx context.Context, ownerID, shelfID int64) error
}

type ShelfHandler struct {
	shelves  ShelfStore
	validate *Validator
}

func NewShelfHandler(shelves ShelfStore, validate *Validator) *ShelfHandler {
	return &ShelfHandler{shelves: shelves, validate: validate}
}

// Create handles POST /shelves
func (h *ShelfHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req models.CreateShelfRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Validate(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	shelf, err := h.shelves.CreateShelf(r.Context(), userID, req.Name)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, shelf)
}

// List handles GET /shelves
func (h *ShelfHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	shelves, err := h.shelves.ListShelves(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, shelves)
}

// Get handles GET /shelves/{id}
func (h *ShelfHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	shelfID, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	shelf, err := h.shelves.GetShelfDetail(r.Context(), userID, shelfID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, shelf)
}

// parseShelfBook reads the shelf id from the path and book_id from the body.
func (h *ShelfHandler) parseShelfBook(w http.ResponseWriter, r *http.Request) (shelfID, bookID int64, err error) {
	shelfID, err = pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}

	var req models.ShelfBookRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		return 0, 0, err
	}
	if err := h.validate.Validate(req); err != nil {
		return 0, 0, err
	}
	return shelfID, req.BookID, nil
}

// AddBook handles POST /shelves/{id}/add
func (h *ShelfHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	shelfID, bookID, err := h.parseShelfBook(w, r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.shelves.AddBookToShelf(r.Context(), userID, shelfID, bookID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "book added to shelf"})
}

// RemoveBook handles DELETE /shelves/{id}/remove
func (h *ShelfHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	shelfID, bookID, err := h.parseShelfBook(w, r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.shelves.RemoveBookFromShelf(r.Context(), userID, shelfID, bookID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "book removed from shelf"})
}

// Delete handles DELETE /shelves/{id}
func (h *ShelfHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	shelfID, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.shelves.DeleteShelf(r.Context(), userID, shelfID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("shelf deleted", "shelf_id", shelfID, "user_id", userID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "shelf deleted"})
}
