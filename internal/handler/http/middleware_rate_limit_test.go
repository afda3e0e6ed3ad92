// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPRateLimiter(t *testing.T) {
	assert.Nil(t, newIPRateLimiter(0))
	assert.Nil(t, newIPRateLimiter(-5))

	l := newIPRateLimiter(10)
	require.NotNil(t, l)
	assert.Equal(t, 5, l.burst)
	assert.Equal(t, 30*time.Second, l.idleTTL, "5 tokens at one per 6s")

	assert.Equal(t, 1, newIPRateLimiter(1).burst)
}

func TestIPRateLimiter_BucketsArePerIP(t *testing.T) {
	l := newIPRateLimiter(4) // burst 2

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	assert.True(t, l.allow("10.0.0.2"), "another client has its own bucket")
}

func TestIPRateLimiter_EvictsIdleBuckets(t *testing.T) {
	l := newIPRateLimiter(60) // burst 30, refilled in 30s
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))
	require.Len(t, l.ips, 2)

	now = now.Add(20 * time.Second)
	assert.True(t, l.allow("10.0.0.2"))

	now = now.Add(15 * time.Second)
	assert.True(t, l.allow("10.0.0.3"))

	assert.NotContains(t, l.ips, "10.0.0.1", "idle for a full refill period")
	assert.Contains(t, l.ips, "10.0.0.2")
	assert.Contains(t, l.ips, "10.0.0.3")
}

func TestIPRateLimiter_EvictionKeepsExhaustedBucket(t *testing.T) {
	l := newIPRateLimiter(2) // burst 1, refilled in 30s
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	now = now.Add(10 * time.Second)
	assert.False(t, l.allow("10.0.0.1"))

	// a sweep triggered by another client must not reset the throttled one
	now = now.Add(25 * time.Second)
	l.allow("10.0.0.2")
	assert.Contains(t, l.ips, "10.0.0.1")
}

func TestIPRateLimiter_Concurrent(t *testing.T) {
	l := newIPRateLimiter(600)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.allow("10.0.0.1")
		}()
	}
	wg.Wait()

	assert.Len(t, l.ips, 1)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "192.0.2.10", clientIP(req))

	req.RemoteAddr = "not-a-host-port"
	assert.Equal(t, "not-a-host-port", clientIP(req))
}

func TestWithRateLimit_LoginIsThrottled(t *testing.T) {
	svcs := newTestServices()
	svcs.AuthService = &mockAuthService{
		loginFn: func(context.Context, string, string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrInvalidCredentials
		},
	}
	h := NewHandler(svcs, config.Server{AuthRatePerMinute: 2}, metrics.New(), logger.Nop()) // burst 1
	router := h.Init()

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"identifier":"a","password":"b"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusTooManyRequests}, statuses)

	// reads are not throttled
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
