// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/go-resty/resty/v2"
)

// Config holds the connection settings of the HTTP adapter.
type Config struct {
	// Address is the server base URL. A missing scheme defaults to http.
	Address string
	// RequestTimeout bounds every request. Zero disables the timeout.
	RequestTimeout time.Duration
}

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu     sync.RWMutex
	tokens models.TokenPair

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// Returns an error if cfg.Address is empty or is not a valid URL.
func NewHTTPServerAdapter(cfg Config, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	adapter := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	adapter.client.OnAfterResponse(adapter.logResponse)

	return adapter, nil
}

func (h *httpServerAdapter) logResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("api call")
	return nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidBaseURL
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. The token is whitespace-trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens.AccessToken = strings.TrimSpace(token)
	h.tokens.TokenType = models.TokenTypeBearer
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokens.AccessToken
}

// Tokens implements [ServerAdapter].
func (h *httpServerAdapter) Tokens() models.TokenPair {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokens
}

// SetTokens implements [ServerAdapter].
func (h *httpServerAdapter) SetTokens(pair models.TokenPair) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens = pair
}

// Signup implements [ServerAdapter]. It does not log the new user in.
func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Post("/api/auth/signup")
	if err != nil {
		return models.User{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login implements [ServerAdapter]. On success the returned token pair is
// held by the adapter and used for subsequent authenticated requests.
func (h *httpServerAdapter) Login(ctx context.Context, identifier, password string) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Identifier: identifier, Password: password}).
		SetResult(&pair).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair)
	return pair, nil
}

// Refresh implements [ServerAdapter]. Returns [ErrNoRefreshToken] when no
// refresh token is held.
func (h *httpServerAdapter) Refresh(ctx context.Context) (models.TokenPair, error) {
	refreshToken := h.Tokens().RefreshToken
	if refreshToken == "" {
		return models.TokenPair{}, ErrNoRefreshToken
	}

	var pair models.TokenPair
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&pair).
		Post("/api/auth/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair)
	return pair, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).SetResult(&user).Get("/api/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListBooks implements [ServerAdapter]. Zero-valued filter fields are not sent.
func (h *httpServerAdapter) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	req := h.client.R().SetContext(ctx)
	if filter.Genre != "" {
		req.SetQueryParam("genre", filter.Genre)
	}
	if filter.Author != "" {
		req.SetQueryParam("author", filter.Author)
	}
	if filter.OwnerID > 0 {
		req.SetQueryParam("owner", strconv.FormatInt(filter.OwnerID, 10))
	}

	var books []models.Book
	resp, err := req.SetResult(&books).Get("/api/books")
	if err != nil {
		return nil, fmt.Errorf("list books request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return books, nil
}

func (h *httpServerAdapter) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	var book models.Book
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(bookID, 10)).
		SetResult(&book).
		Get("/api/books/{id}")
	if err != nil {
		return models.Book{}, fmt.Errorf("get book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (h *httpServerAdapter) CreateBook(ctx context.Context, req models.BookCreateRequest) (models.Book, error) {
	var book models.Book
	resp, err := h.authedRequest(ctx).SetBody(req).SetResult(&book).Post("/api/books")
	if err != nil {
		return models.Book{}, fmt.Errorf("create book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (h *httpServerAdapter) UpdateBook(ctx context.Context, bookID int64, req models.BookUpdateRequest) (models.Book, error) {
	var book models.Book
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(bookID, 10)).
		SetBody(req).
		SetResult(&book).
		Put("/api/books/{id}")
	if err != nil {
		return models.Book{}, fmt.Errorf("update book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (h *httpServerAdapter) DeleteBook(ctx context.Context, bookID int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(bookID, 10)).
		Delete("/api/books/{id}")
	if err != nil {
		return fmt.Errorf("delete book request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := h.listCatalog(ctx, "/api/genres", &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (h *httpServerAdapter) CreateGenre(ctx context.Context, name string) (models.Genre, error) {
	var genre models.Genre
	if err := h.createCatalogEntry(ctx, "/api/genres", name, &genre); err != nil {
		return models.Genre{}, err
	}
	return genre, nil
}

func (h *httpServerAdapter) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	if err := h.listCatalog(ctx, "/api/authors", &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (h *httpServerAdapter) CreateAuthor(ctx context.Context, name string) (models.Author, error) {
	var author models.Author
	if err := h.createCatalogEntry(ctx, "/api/authors", name, &author); err != nil {
		return models.Author{}, err
	}
	return author, nil
}

func (h *httpServerAdapter) listCatalog(ctx context.Context, path string, result any) error {
	resp, err := h.client.R().SetContext(ctx).SetResult(result).Get(path)
	if err != nil {
		return fmt.Errorf("list %s request: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) createCatalogEntry(ctx context.Context, path, name string, result any) error {
	resp, err := h.authedRequest(ctx).
		SetBody(models.NameRequest{Name: name}).
		SetResult(result).
		Post(path)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	return mapHTTPError(resp)
}

// RequestBook implements [ServerAdapter]. location is where the requester
// wants to pick the book up.
func (h *httpServerAdapter) RequestBook(ctx context.Context, bookID int64, location string) (models.BookRequest, error) {
	var request models.BookRequest
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(bookID, 10)).
		SetBody(models.BookRequestCreate{Location: location}).
		SetResult(&request).
		Post("/api/books/{id}/requests")
	if err != nil {
		return models.BookRequest{}, fmt.Errorf("request book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BookRequest{}, err
	}
	return request, nil
}

func (h *httpServerAdapter) ListBookRequests(ctx context.Context, bookID int64) ([]models.BookRequest, error) {
	var requests []models.BookRequest
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(bookID, 10)).
		SetResult(&requests).
		Get("/api/books/{id}/requests")
	if err != nil {
		return nil, fmt.Errorf("list book requests request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return requests, nil
}

func (h *httpServerAdapter) ListMyRequests(ctx context.Context) ([]models.BookRequest, error) {
	var requests []models.BookRequest
	resp, err := h.authedRequest(ctx).SetResult(&requests).Get("/api/requests")
	if err != nil {
		return nil, fmt.Errorf("list my requests request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return requests, nil
}

func (h *httpServerAdapter) AcceptRequest(ctx context.Context, requestID int64) (models.BookRequest, error) {
	var request models.BookRequest
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(requestID, 10)).
		SetResult(&request).
		Post("/api/requests/{id}/accept")
	if err != nil {
		return models.BookRequest{}, fmt.Errorf("accept request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BookRequest{}, err
	}
	return request, nil
}

func (h *httpServerAdapter) WithdrawRequest(ctx context.Context, requestID int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(requestID, 10)).
		Delete("/api/requests/{id}")
	if err != nil {
		return fmt.Errorf("withdraw request: %w", err)
	}
	return mapHTTPError(resp)
}

// Version implements [ServerAdapter].
func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo
	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}
	return info, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
