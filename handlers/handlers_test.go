// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/auth"
	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/models"
	"github.com/danielhkuo/bookreview/store"
	"github.com/danielhkuo/bookreview/testutil"
)

type testEnv struct {
	store  *store.Store
	tokens *auth.TokenService
	mux    http.Handler
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := testutil.SetupTestStore(t)
	tokens := testutil.NewTestTokens(t, testutil.GetTestConfig())
	v := NewValidator()

	authH := NewAuthHandler(s, tokens, v)
	bookH := NewBookHandler(s, v)
	reviewH := NewReviewHandler(s, v)
	shelfH := NewShelfHandler(s, v)
	progressH := NewProgressHandler(s, v)

	r := chi.NewRouter()
	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)
	r.Get("/books", bookH.List)
	r.Get("/books/search", bookH.Search)
	r.Get("/books/{id}", bookH.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Post("/books", bookH.Create)
		r.Put("/books/{id}/status", progressH.UpdateStatus)
		r.Get("/reading-progress", progressH.List)
		r.Post("/reviews", reviewH.Create)
		r.Get("/my-reviews", reviewH.ListMine)
		r.Post("/reviews/{id}/like", reviewH.Like)
		r.Post("/shelves", shelfH.Create)
		r.Get("/shelves", shelfH.List)
		r.Get("/shelves/{id}", shelfH.Get)
		r.Post("/shelves/{id}/add", shelfH.AddBook)
		r.Delete("/shelves/{id}/remove", shelfH.RemoveBook)
		r.Delete("/shelves/{id}", shelfH.Delete)
	})

	return &testEnv{store: s, tokens: tokens, mux: r}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	testutil.AssertStatus(t, w, status)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, code, resp.Code)
	if message != "" {
		assert.Equal(t, message, resp.Message)
	}
}

func TestRegister(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("success", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Email: "alice@example.com", Name: "Alice", Password: "secret",
		}, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.RegisterResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, "registration successful", resp.Message)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.NotZero(t, resp.User.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Email: "alice@example.com", Name: "Other", Password: "secret",
		}, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "CONFLICT", "email already registered")
	})

	t.Run("invalid email", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Email: "not-an-email", Name: "Bob", Password: "secret",
		}, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "email must be a valid email address")
	})

	t.Run("password over 72 bytes", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Email: "multibyte@example.com", Name: "Mb", Password: strings.Repeat("é", 40),
		}, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "password must not exceed 72 bytes")

		_, err := env.store.GetUserByEmail(t.Context(), "multibyte@example.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/register", "{not json", nil))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "invalid JSON body")
	})
}

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	user := testutil.CreateTestUser(t, env.store, "alice@example.com", "Alice")

	t.Run("success", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email: "alice@example.com", Password: testutil.TestPassword,
		}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LoginResponse
		testutil.AssertJSON(t, w, &resp)
		require.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.False(t, resp.ExpiresAt.IsZero())

		claims, err := env.tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email: "nobody@example.com", Password: testutil.TestPassword,
		}, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_CREDENTIALS", "user not found")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email: "alice@example.com", Password: "wrong",
		}, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_CREDENTIALS", "wrong password")
	})

	t.Run("missing password", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Email: "alice@example.com",
		}, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "password is required")
	})
}

func TestBooks(t *testing.T) {
	env := setupTestEnv(t)
	user := testutil.CreateTestUser(t, env.store, "alice@example.com", "Alice")
	headers := testutil.AuthHeader(t, env.tokens, user.ID)

	t.Run("create requires auth", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/books", models.CreateBookRequest{Title: "Dune", Author: "Herbert"}, nil))
		assertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "")
	})

	var dune models.Book
	t.Run("create", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/books", models.CreateBookRequest{
			Title: "Dune", Author: "Frank Herbert", TotalPages: 412,
		}, headers))
		testutil.AssertStatus(t, w, http.StatusCreated)
		testutil.AssertJSON(t, w, &dune)
		assert.NotZero(t, dune.ID)
		assert.Equal(t, 412, dune.TotalPages)
	})

	t.Run("create missing author", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/books", models.CreateBookRequest{Title: "Nameless"}, headers))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "author is required")
	})

	testutil.CreateTestReview(t, env.store, user.ID, dune.ID, 5)

	t.Run("list", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var books []models.RatedBook
		testutil.AssertJSON(t, w, &books)
		require.Len(t, books, 1)
		assert.Equal(t, 5.0, books[0].Rating)
	})

	t.Run("search", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books/search?title=dun", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var books []models.RatedBook
		testutil.AssertJSON(t, w, &books)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("search no match", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books/search?title=zzz", nil, nil))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "")
	})

	t.Run("search missing title", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books/search", nil, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "")
	})

	t.Run("get detail", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", fmt.Sprintf("/books/%d", dune.ID), nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var detail models.BookDetail
		testutil.AssertJSON(t, w, &detail)
		assert.Equal(t, "Dune", detail.Title)
		require.Len(t, detail.Reviews, 1)
		assert.Equal(t, "Alice", detail.Reviews[0].Reviewer)
	})

	t.Run("get missing", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books/9999", nil, nil))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "book not found")
	})

	t.Run("get id beyond 32 bits", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books/3000000000", nil, nil))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "book not found")
	})

	t.Run("create with too many pages", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/books", `{"title":"Huge","author":"A","total_pages":3000000000}`, headers))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "total_pages must be at most 2147483647")
	})

	t.Run("get bad id", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/books/abc", nil, nil))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "invalid id")
	})
}

func TestReviews(t *testing.T) {
	env := setupTestEnv(t)
	alice := testutil.CreateTestUser(t, env.store, "alice@example.com", "Alice")
	bob := testutil.CreateTestUser(t, env.store, "bob@example.com", "Bob")
	book := testutil.CreateTestBook(t, env.store, "Dune")
	aliceHeaders := testutil.AuthHeader(t, env.tokens, alice.ID)
	bobHeaders := testutil.AuthHeader(t, env.tokens, bob.ID)

	var review models.Review
	t.Run("create", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/reviews", models.CreateReviewRequest{
			BookID: book.ID, Rating: 4, Comment: "Great",
		}, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)
		testutil.AssertJSON(t, w, &review)
		assert.Equal(t, alice.ID, review.UserID)
		assert.Equal(t, 4, review.Rating)
	})

	ratingTests := []struct {
		name   string
		rating int
	}{
		{"rating zero", 0},
		{"rating six", 6},
		{"rating negative", -1},
	}
	for _, tt := range ratingTests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(testutil.MakeRequest("POST", "/reviews", models.CreateReviewRequest{
				BookID: book.ID, Rating: tt.rating,
			}, aliceHeaders))
			assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "")
		})
	}

	t.Run("missing book", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/reviews", models.CreateReviewRequest{
			BookID: 9999, Rating: 3,
		}, aliceHeaders))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "book not found")
	})

	likePath := fmt.Sprintf("/reviews/%d/like", review.ID)

	t.Run("like", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", likePath, nil, bobHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MessageResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, "review liked", resp.Message)
	})

	t.Run("like twice", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", likePath, nil, bobHeaders))
		assertErrorCode(t, w, http.StatusBadRequest, "CONFLICT", "review already liked")
	})

	t.Run("like missing review", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/reviews/9999/like", nil, bobHeaders))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "review not found")
	})

	t.Run("my reviews", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/my-reviews", nil, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)

		var reviews []models.UserReview
		testutil.AssertJSON(t, w, &reviews)
		require.Len(t, reviews, 1)
		assert.Equal(t, "Dune", reviews[0].BookTitle)
		assert.Equal(t, int64(1), reviews[0].Likes)
	})

	t.Run("my reviews empty", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/my-reviews", nil, bobHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})
}

func TestShelves(t *testing.T) {
	env := setupTestEnv(t)
	alice := testutil.CreateTestUser(t, env.store, "alice@example.com", "Alice")
	bob := testutil.CreateTestUser(t, env.store, "bob@example.com", "Bob")
	book := testutil.CreateTestBook(t, env.store, "Dune")
	aliceHeaders := testutil.AuthHeader(t, env.tokens, alice.ID)
	bobHeaders := testutil.AuthHeader(t, env.tokens, bob.ID)

	var shelf models.Shelf
	t.Run("create", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/shelves", models.CreateShelfRequest{Name: "Favorites"}, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusCreated)
		testutil.AssertJSON(t, w, &shelf)
		assert.Equal(t, "Favorites", shelf.Name)
		assert.Equal(t, alice.ID, shelf.UserID)
	})

	t.Run("create blank name", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", "/shelves", models.CreateShelfRequest{Name: "   "}, aliceHeaders))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "name is required")
	})

	shelfPath := fmt.Sprintf("/shelves/%d", shelf.ID)

	t.Run("add book", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", shelfPath+"/add", models.ShelfBookRequest{BookID: book.ID}, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("add book again is idempotent", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", shelfPath+"/add", models.ShelfBookRequest{BookID: book.ID}, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("add missing book", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("POST", shelfPath+"/add", models.ShelfBookRequest{BookID: 9999}, aliceHeaders))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "book not found")
	})

	t.Run("list", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/shelves", nil, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)

		var shelves []models.ShelfSummary
		testutil.AssertJSON(t, w, &shelves)
		require.Len(t, shelves, 1)
		assert.Equal(t, int64(1), shelves[0].ItemCount)
	})

	t.Run("detail", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", shelfPath, nil, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)

		var detail models.ShelfDetail
		testutil.AssertJSON(t, w, &detail)
		require.Len(t, detail.Books, 1)
		assert.Equal(t, "Dune", detail.Books[0].Title)
	})

	t.Run("non-owner", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", shelfPath, nil, bobHeaders))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "shelf not found")

		w = env.do(testutil.MakeRequest("POST", shelfPath+"/add", models.ShelfBookRequest{BookID: book.ID}, bobHeaders))
		assertErrorCode(t, w, http.StatusForbidden, "FORBIDDEN", "shelf not found or not owned by you")

		w = env.do(testutil.MakeRequest("DELETE", shelfPath+"/remove", models.ShelfBookRequest{BookID: book.ID}, bobHeaders))
		assertErrorCode(t, w, http.StatusForbidden, "FORBIDDEN", "")

		w = env.do(testutil.MakeRequest("DELETE", shelfPath, nil, bobHeaders))
		assertErrorCode(t, w, http.StatusForbidden, "FORBIDDEN", "")
	})

	t.Run("remove book", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("DELETE", shelfPath+"/remove", models.ShelfBookRequest{BookID: book.ID}, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)

		detail, err := env.store.GetShelfDetail(t.Context(), alice.ID, shelf.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Books)
	})

	t.Run("remove without body", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("DELETE", shelfPath+"/remove", nil, aliceHeaders))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "invalid JSON body")
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("DELETE", shelfPath, nil, aliceHeaders))
		testutil.AssertStatus(t, w, http.StatusOK)

		w = env.do(testutil.MakeRequest("GET", shelfPath, nil, aliceHeaders))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "")
	})
}

func TestReadingProgress(t *testing.T) {
	env := setupTestEnv(t)
	alice := testutil.CreateTestUser(t, env.store, "alice@example.com", "Alice")
	book := testutil.CreateTestBook(t, env.store, "Dune")
	headers := testutil.AuthHeader(t, env.tokens, alice.ID)
	statusPath := fmt.Sprintf("/books/%d/status", book.ID)

	t.Run("start reading", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("PUT", statusPath, models.UpdateStatusRequest{
			Status: models.StatusReading, CurrentPage: 50,
		}, headers))
		testutil.AssertStatus(t, w, http.StatusOK)

		var rec models.ReadingProgress
		testutil.AssertJSON(t, w, &rec)
		assert.Equal(t, models.StatusReading, rec.Status)
		assert.Equal(t, 50, rec.CurrentPage)
		assert.NotNil(t, rec.StartDate)
		assert.Nil(t, rec.FinishDate)
	})

	t.Run("finish", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("PUT", statusPath, models.UpdateStatusRequest{
			Status: models.StatusRead, CurrentPage: 300,
		}, headers))
		testutil.AssertStatus(t, w, http.StatusOK)

		var rec models.ReadingProgress
		testutil.AssertJSON(t, w, &rec)
		assert.Equal(t, models.StatusRead, rec.Status)
		assert.NotNil(t, rec.FinishDate)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("PUT", statusPath, models.UpdateStatusRequest{Status: "paused"}, headers))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "")
	})

	t.Run("negative page", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("PUT", statusPath, models.UpdateStatusRequest{
			Status: models.StatusReading, CurrentPage: -5,
		}, headers))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "")
	})

	t.Run("page beyond 32 bits", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("PUT", statusPath, `{"status":"reading","current_page":3000000000}`, headers))
		assertErrorCode(t, w, http.StatusBadRequest, "VALIDATION", "current_page must be at most 2147483647")
	})

	t.Run("missing book", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("PUT", "/books/9999/status", models.UpdateStatusRequest{
			Status: models.StatusReading,
		}, headers))
		assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND", "book not found")
	})

	t.Run("list", func(t *testing.T) {
		w := env.do(testutil.MakeRequest("GET", "/reading-progress", nil, headers))
		testutil.AssertStatus(t, w, http.StatusOK)

		var records []models.ReadingProgress
		testutil.AssertJSON(t, w, &records)
		require.Len(t, records, 1)
		assert.Equal(t, "Dune", records[0].BookTitle)
		assert.Equal(t, 300, records[0].CurrentPage)
	})

	other := testutil.CreateTestBook(t, env.store, "Emma")
	otherPath := fmt.Sprintf("/books/%d/status", other.ID)

	pageTests := []struct {
		name string
		body string
	}{
		{"current page omitted", `{"status":"reading"}`},
		{"current page null", `{"status":"reading","current_page":null}`},
	}
	for _, tt := range pageTests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(testutil.MakeRequest("PUT", otherPath, models.UpdateStatusRequest{
				Status: models.StatusReading, CurrentPage: 40,
			}, headers))
			testutil.AssertStatus(t, w, http.StatusOK)

			w = env.do(testutil.MakeRequest("PUT", otherPath, tt.body, headers))
			testutil.AssertStatus(t, w, http.StatusOK)

			var rec models.ReadingProgress
			testutil.AssertJSON(t, w, &rec)
			assert.Equal(t, models.StatusReading, rec.Status)
			assert.Equal(t, 0, rec.CurrentPage)
		})
	}
}
