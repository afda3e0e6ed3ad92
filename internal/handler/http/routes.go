// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	if len(h.cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders:   []string{traceIDHeader, "WWW-Authenticate"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/books", h.listBooks)
		r.Get("/api/books/{id}", h.getBook)
		r.Get("/api/genres", h.listGenres)
		r.Get("/api/authors", h.listAuthors)
	})

	// credential endpoints, rate limited per client IP
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/users/me", h.me)

		r.Post("/api/books", h.createBook)
		r.Put("/api/books/{id}", h.updateBook)
		r.Delete("/api/books/{id}", h.deleteBook)

		r.Post("/api/genres", h.createGenre)
		r.Post("/api/authors", h.createAuthor)

		r.Post("/api/books/{id}/requests", h.createBookRequest)
		r.Get("/api/books/{id}/requests", h.listBookRequests)
		r.Get("/api/requests", h.listMyRequests)
		r.Post("/api/requests/{id}/accept", h.acceptBookRequest)
		r.Delete("/api/requests/{id}", h.withdrawBookRequest)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
