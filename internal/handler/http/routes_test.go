// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeCase struct {
	method string
	path   string
}

var protectedRoutes = []routeCase{
	{http.MethodGet, "/api/users/me"},
	{http.MethodPost, "/api/books"},
	{http.MethodPut, "/api/books/1"},
	{http.MethodDelete, "/api/books/1"},
	{http.MethodPost, "/api/genres"},
	{http.MethodPost, "/api/authors"},
	{http.MethodPost, "/api/books/1/requests"},
	{http.MethodGet, "/api/books/1/requests"},
	{http.MethodGet, "/api/requests"},
	{http.MethodPost, "/api/requests/1/accept"},
	{http.MethodDelete, "/api/requests/1"},
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())
	router := h.Init()

	for _, rc := range protectedRoutes {
		t.Run(rc.method+" "+rc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(rc.method, rc.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestInit_PublicRoutesAreReachable(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	for _, path := range []string{"/api/version", "/api/genres", "/api/authors", "/metrics"} {
		rec := serve(t, h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestInit_WrongMethodIsNotFound(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	tests := []routeCase{
		{http.MethodPatch, "/api/books/1"},
		{http.MethodGet, "/api/auth/login"},
		{http.MethodDelete, "/api/version"},
	}
	for _, rc := range tests {
		rec := serve(t, h, rc.method, rc.path, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, rc.method+" "+rc.path)
	}
}

func TestInit_UnknownPath(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	rec := serve(t, h, http.MethodGet, "/api/nothing-here", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_RecoversFromPanics(t *testing.T) {
	// BookService.ListBooks is unset on the mock and panics when called.
	h := newTestHTTPHandler(t, newTestServices())

	rec := serve(t, h, http.MethodGet, "/api/books", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInit_CORSPreflight(t *testing.T) {
	cfg := config.Server{CORSOrigins: []string{"https://books.example"}, RequestTimeout: time.Second}
	h := NewHandler(newTestServices(), cfg, metrics.New(), logger.Nop())

	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", "https://books.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Less(t, rec.Code, 300)
	assert.Equal(t, "https://books.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInit_CORSForeignOrigin(t *testing.T) {
	cfg := config.Server{CORSOrigins: []string{"https://books.example"}}
	h := NewHandler(newTestServices(), cfg, metrics.New(), logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInit_RequestsAreCounted(t *testing.T) {
	m := metrics.New()
	h := NewHandler(newTestServices(), config.Server{}, m, logger.Nop())
	router := h.Init()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/version", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/version",status="200"} 1`)
}
