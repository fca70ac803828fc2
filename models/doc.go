// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, with validator tags:

  - RegisterRequest: email, name, password
  - LoginRequest: email, password
  - CreateBookRequest: title, author, description, total_pages
  - CreateReviewRequest: book_id, rating (1-5), comment
  - CreateShelfRequest: name
  - ShelfBookRequest: book_id
  - UpdateStatusRequest: status, current_page

# Response Types

  - RegisterResponse: message, user
  - LoginResponse: message, token, expires_at, user
  - MessageResponse: message
  - ErrorResponse: error, code, message, details

# Domain Types

  - User: account (password hash never serialized)
  - Book, RatedBook, BookDetail: catalog entries
  - Review, BookReview, UserReview: ratings and comments
  - Shelf, ShelfSummary, ShelfDetail, ShelfBook: user collections
  - ReadingProgress: one user's status on one book

# Constants

Reading statuses: StatusWantToRead, StatusReading, StatusRead, StatusDNF.
*/
package models
