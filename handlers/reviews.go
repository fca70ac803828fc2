// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/models"
)

// ReviewStore is the review persistence ReviewHandler needs.
type ReviewStore interface {
	CreateReview(ctx context.Context, userID, bookID int64, rating int, comment string) (*models.Review, error)
	ListReviewsByUser(ctx context.Context, userID int64) ([]models.UserReview, error)
	LikeReview(ctx context.Context, userID, reviewID int64) error
}

type ReviewHandler struct {
	reviews  ReviewStore
	validate *Validator
}

func NewReviewHandler(reviews ReviewStore, validate *Validator) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, validate: validate}
}

// Create handles POST /reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req models.CreateReviewRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), userID, req.BookID, req.Rating, req.Comment)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, review)
}

// ListMine handles GET /my-reviews
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	reviews, err := h.reviews.ListReviewsByUser(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, reviews)
}

// Like handles POST /reviews/{id}/like
func (h *ReviewHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	reviewID, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.reviews.LikeReview(r.Context(), userID, reviewID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "review liked"})
}
