// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
)

// ipRateLimiter keeps one token bucket per client IP. A bucket left idle
// for a full refill period is indistinguishable from a new one and is
// dropped on the next sweep.
type ipRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*ipBucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPRateLimiter allows perMinute requests per IP per minute with a burst
// of half that. A non-positive perMinute disables limiting.
func newIPRateLimiter(perMinute int) *ipRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	limit := rate.Limit(float64(perMinute) / 60.0)
	burst := max(1, perMinute/2)
	return &ipRateLimiter{
		ips:     make(map[string]*ipBucket),
		limit:   limit,
		burst:   burst,
		idleTTL: time.Duration(burst) * time.Minute / time.Duration(perMinute),
		now:     time.Now,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	b, ok := l.ips[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.ips[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep must be called with l.mu held.
func (l *ipRateLimiter) sweep(now time.Time) {
	for ip, b := range l.ips {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.ips, ip)
		}
	}
	l.lastSweep = now
}

// clientIP returns the host part of RemoteAddr. Forwarding headers are not
// trusted here.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// withRateLimit answers 429 once a client IP exhausts its bucket.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(clientIP(r)) {
			h.metrics.RecordAuth("rate_limit", metrics.AuthRejected)
			writeError(w, r, errTooMany)
			return
		}
		next.ServeHTTP(w, r)
	})
}
