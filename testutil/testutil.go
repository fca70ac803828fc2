// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/danielhkuo/bookreview/auth"
	"github.com/danielhkuo/bookreview/cliparse"
	"github.com/danielhkuo/bookreview/db"
	"github.com/danielhkuo/bookreview/models"
	"github.com/danielhkuo/bookreview/store"
)

// TestPassword is the password given to every user created by CreateTestUser.
const TestPassword = "password123"

var (
	hashOnce sync.Once
	testHash string
)

// SetupTestStore creates a fresh, migrated SQLite database in a temp dir.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	db.SetQuiet()
	conn, err := db.Open(context.Background(), db.SQLite, filepath.Join(t.TempDir(), "bookreview.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return store.New(conn, db.SQLite)
}

// GetTestConfig returns a standard test configuration with a fresh token key.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseURL:  "bookreview-test.db",
		DatabaseType: cliparse.DatabaseSQLite,
		TokenKey:     paseto.NewV4SymmetricKey().ExportHex(),
		TokenTTL:     24 * time.Hour,
		LogLevel:     "error",
		LogFormat:    "text",
		CORSOrigins:  []string{"*"},
		AuthRPS:      1000,
		AuthBurst:    1000,
	}
}

// NewTestTokens builds a token service from cfg.
func NewTestTokens(t *testing.T, cfg cliparse.Config) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(cfg.TokenKey, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}
	return tokens
}

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, s *store.Store, email, name string) *models.User {
	t.Helper()

	hashOnce.Do(func() {
		h, err := auth.HashPassword(TestPassword)
		if err != nil {
			panic(err)
		}
		testHash = h
	})

	u, err := s.CreateUser(context.Background(), email, name, testHash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// AuthHeader returns an Authorization header carrying a fresh token for userID.
func AuthHeader(t *testing.T, tokens *auth.TokenService, userID int64) map[string]string {
	t.Helper()
	tok, _, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + tok}
}

// CreateTestBook inserts a book and returns it.
func CreateTestBook(t *testing.T, s *store.Store, title string) *models.Book {
	t.Helper()
	b, err := s.CreateBook(context.Background(), title, "Test Author", "A test book", 300)
	if err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}
	return b
}

// CreateTestReview inserts a review and returns it.
func CreateTestReview(t *testing.T, s *store.Store, userID, bookID int64, rating int) *models.Review {
	t.Helper()
	r, err := s.CreateReview(context.Background(), userID, bookID, rating, "test review")
	if err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}
	return r
}

// CreateTestShelf inserts a shelf and returns it.
func CreateTestShelf(t *testing.T, s *store.Store, ownerID int64, name string) *models.Shelf {
	t.Helper()
	sh, err := s.CreateShelf(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("Failed to create test shelf: %v", err)
	}
	return sh
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
