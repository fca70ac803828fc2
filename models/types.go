package models

import "time"

// Reading status constants
const (
	StatusWantToRead = "want-to-read"
	StatusReading    = "reading"
	StatusRead       = "read"
	StatusDNF        = "dnf"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Description string `json:"description"`
	TotalPages  int    `json:"total_pages" validate:"min=0,max=2147483647"`
}

type CreateReviewRequest struct {
	BookID  int64  `json:"book_id" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}

type CreateShelfRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ShelfBookRequest is the body of shelf add and remove.
type ShelfBookRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

// UpdateStatusRequest is the body of PUT /books/{id}/status.
// A missing current_page means page 0.
type UpdateStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=want-to-read reading read dnf"`
	CurrentPage int    `json:"current_page" validate:"min=0,max=2147483647"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	TotalPages  int       `json:"total_pages"`
	CreatedAt   time.Time `json:"created_at"`
}

// RatedBook is a catalog entry with its average rating, rounded to one decimal.
// Books without reviews rate 0.
type RatedBook struct {
	Book
	Rating float64 `json:"rating"`
}

type BookDetail struct {
	RatedBook
	Reviews []BookReview `json:"reviews"`
}

type Review struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	BookID    int64     `json:"book_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookReview is a review as shown on a book page.
type BookReview struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Reviewer  string    `json:"reviewer"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// UserReview is one of the caller's own reviews.
type UserReview struct {
	Review
	BookTitle string `json:"book_title"`
	Likes     int64  `json:"likes"`
}

type Shelf struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ShelfSummary struct {
	Shelf
	ItemCount int64 `json:"item_count"`
}

type ShelfBook struct {
	Book
	AddedAt time.Time `json:"added_at"`
}

type ShelfDetail struct {
	Shelf
	Books []ShelfBook `json:"books"`
}

type ReadingProgress struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	BookID      int64      `json:"book_id"`
	Status      string     `json:"status"`
	CurrentPage int        `json:"current_page"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	FinishDate  *time.Time `json:"finish_date,omitempty"`
	BookTitle   string     `json:"book_title,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}
