// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/models"
)

// BookStore is the catalog persistence BookHandler needs.
type BookStore interface {
	ListBooks(ctx context.Context) ([]models.RatedBook, error)
	SearchBooks(ctx context.Context, title string) ([]models.RatedBook, error)
	GetBook(ctx context.Context, id int64) (*models.BookDetail, error)
	CreateBook(ctx context.Context, title, author, description string, totalPages int) (*models.Book, error)
}

type BookHandler struct {
	books    BookStore
	validate *Validator
}

func NewBookHandler(books BookStore, validate *Validator) *BookHandler {
	return &BookHandler{books: books, validate: validate}
}

// List handles GET /books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListBooks(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, books)
}

// Search handles GET /books/search?title=
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		middleware.WriteError(w, r, apperr.Validation("title query parameter is required"))
		return
	}

	books, err := h.books.SearchBooks(r.Context(), title)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	book, err := h.books.GetBook(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, book)
}

// Create handles POST /books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	if err := h.validate.Validate(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	book, err := h.books.CreateBook(r.Context(), req.Title, req.Author, req.Description, req.TotalPages)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	slog.Info("book created", "book_id", book.ID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, book)
}
