// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(Config{Address: serverURL}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "adds scheme", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "keeps https", raw: "https://books.example.org/", want: "https://books.example.org"},
		{name: "trims spaces", raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "   ", wantErr: ErrEmptyAddress},
		{name: "no host", raw: "http://", wantErr: ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(Config{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestSetToken_TrimsWhitespace(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	a.SetToken("  abc  ")

	assert.Equal(t, "abc", a.Token())
	assert.Equal(t, models.TokenTypeBearer, a.Tokens().TokenType)
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signup", r.URL.Path)

		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		writeJSON(t, w, http.StatusCreated, models.User{UserID: 1, Username: req.Username, Email: req.Email})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.Signup(context.Background(), models.SignupRequest{Username: "alice", Email: "alice@example.org", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Empty(t, a.Token(), "signup must not log the user in")
}

func TestSignup_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "user with this username or email already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Signup(context.Background(), models.SignupRequest{Username: "alice"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLogin_StoresTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Identifier)
		assert.Equal(t, "secret", req.Password)

		writeJSON(t, w, http.StatusOK, models.TokenPair{AccessToken: "access", TokenType: "bearer", RefreshToken: "refresh"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	pair, err := a.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "access", a.Token())
	assert.Equal(t, "refresh", a.Tokens().RefreshToken)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "incorrect username or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestRefresh_WithoutRefreshToken(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	_, err := a.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefresh_ReplacesTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)

		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "old-refresh", req.RefreshToken)

		writeJSON(t, w, http.StatusOK, models.TokenPair{AccessToken: "new-access", TokenType: "bearer", RefreshToken: "new-refresh"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetTokens(models.TokenPair{AccessToken: "old-access", RefreshToken: "old-refresh"})

	_, err := a.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access", a.Token())
	assert.Equal(t, "new-refresh", a.Tokens().RefreshToken)
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.User{UserID: 7, Username: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	user, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
}

func TestMe_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		http.Error(w, "could not validate credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Books ───────────────────────────────────────────────────────────────────

func TestListBooks_SendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Sci-Fi", q.Get("genre"))
		assert.Equal(t, "", q.Get("author"))
		assert.False(t, q.Has("author"))
		assert.Equal(t, "3", q.Get("owner"))

		writeJSON(t, w, http.StatusOK, []models.Book{{ID: 1, Title: "Dune", OwnerID: 3}})
	}))
	defer srv.Close()

	books, err := newTestAdapter(t, srv.URL).ListBooks(context.Background(), models.BookFilter{Genre: "Sci-Fi", OwnerID: 3})

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestGetBook_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/42", r.URL.Path)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetBook(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBook_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/books/5", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"title": "Mine now"}, req, "unset fields must be omitted")

		http.Error(w, "not authorized to modify this resource", http.StatusForbidden)
	}))
	defer srv.Close()

	title := "Mine now"
	_, err := newTestAdapter(t, srv.URL).UpdateBook(context.Background(), 5, models.BookUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteBook_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).DeleteBook(context.Background(), 5))
}

// ── Catalog ─────────────────────────────────────────────────────────────────

func TestCreateGenre_SendsName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/genres", r.URL.Path)

		var req models.NameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusOK, models.Genre{ID: 2, Name: req.Name})
	}))
	defer srv.Close()

	genre, err := newTestAdapter(t, srv.URL).CreateGenre(context.Background(), "Poetry")
	require.NoError(t, err)
	assert.Equal(t, models.Genre{ID: 2, Name: "Poetry"}, genre)
}

func TestListAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []models.Author{{ID: 1, Name: "Le Guin"}})
	}))
	defer srv.Close()

	authors, err := newTestAdapter(t, srv.URL).ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Author{{ID: 1, Name: "Le Guin"}}, authors)
}

// ── Requests ────────────────────────────────────────────────────────────────

func TestRequestBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/10/requests", r.URL.Path)

		var req models.BookRequestCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusCreated, models.BookRequest{ID: 20, BookID: 10, RequesterID: 2, Location: req.Location})
	}))
	defer srv.Close()

	request, err := newTestAdapter(t, srv.URL).RequestBook(context.Background(), 10, "Main square")
	require.NoError(t, err)
	assert.Equal(t, "Main square", request.Location)
}

func TestAcceptRequest_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/requests/20/accept", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.BookRequest{ID: 20, Accepted: true})
	}))
	defer srv.Close()

	request, err := newTestAdapter(t, srv.URL).AcceptRequest(context.Background(), 20)
	require.NoError(t, err)
	assert.True(t, request.Accepted)
}

func TestWithdrawRequest_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).WithdrawRequest(context.Background(), 20)
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.AppBuildInfo{Version: "1.2.3", Date: "N/A", Commit: "abc"})
	}))
	defer srv.Close()

	info, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
