// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/danielhkuo/bookreview/apperr"
	"github.com/danielhkuo/bookreview/auth"
	"github.com/danielhkuo/bookreview/cliparse"
	"github.com/danielhkuo/bookreview/handlers"
	"github.com/danielhkuo/bookreview/middleware"
	"github.com/danielhkuo/bookreview/store"
)

// Router is the API's http.Handler. Close stops the auth rate limiter's
// background cleanup.
type Router struct {
	chi.Router
	authLimiter *middleware.KeyedRateLimiter
}

func NewRouter(st *store.Store, tokens *auth.TokenService, cfg cliparse.Config) *Router {
	r := chi.NewRouter()
	authLimiter := middleware.NewKeyedRateLimiter(cfg.AuthRPS, cfg.AuthBurst)

	// Initialize handlers
	v := handlers.NewValidator()
	authHandler := handlers.NewAuthHandler(st, tokens, v)
	bookHandler := handlers.NewBookHandler(st, v)
	reviewHandler := handlers.NewReviewHandler(st, v)
	shelfHandler := handlers.NewShelfHandler(st, v)
	progressHandler := handlers.NewProgressHandler(st, v)

	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, apperr.NotFound("route not found"))
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bookreview API v1"))
	})

	// Authentication (public, rate limited per client IP)
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(authLimiter))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Catalog (public reads)
	r.Get("/books", bookHandler.List)
	r.Get("/books/search", bookHandler.Search)
	r.Get("/books/{id}", bookHandler.Get)

	// Everything below requires a bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))

		r.Post("/books", bookHandler.Create)
		r.Put("/books/{id}/status", progressHandler.UpdateStatus)
		r.Get("/reading-progress", progressHandler.List)

		r.Post("/reviews", reviewHandler.Create)
		r.Post("/reviews/{id}/like", reviewHandler.Like)
		r.Get("/my-reviews", reviewHandler.ListMine)

		r.Post("/shelves", shelfHandler.Create)
		r.Get("/shelves", shelfHandler.List)
		r.Get("/shelves/{id}", shelfHandler.Get)
		r.Delete("/shelves/{id}", shelfHandler.Delete)
		r.Post("/shelves/{id}/add", shelfHandler.AddBook)
		r.Delete("/shelves/{id}/remove", shelfHandler.RemoveBook)
	})

	return &Router{Router: r, authLimiter: authLimiter}
}

func (rt *Router) Close() {
	rt.authLimiter.Stop()
}
