// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(h *Handler, traceID string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantSame       bool
	}{
		{name: "client trace id is reused", requestTraceID: "my-custom-trace-id", wantSame: true},
		{name: "uuid trace id is reused", requestTraceID: "550e8400-e29b-41d4-a716-446655440000", wantSame: true},
		{name: "missing trace id is generated", requestTraceID: ""},
		{name: "oversized trace id is replaced", requestTraceID: strings.Repeat("x", maxTraceIDLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			rec, captured := executeWithTraceID(h, tt.requestTraceID)

			require.NotNil(t, captured)
			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.requestTraceID, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "generated trace id must be a UUID")
		})
	}
}

func TestWithTraceID_LoggerInContextCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.New(&buf, "test", "info")}

	_, captured := executeWithTraceID(h, "trace-42")
	logger.FromRequest(captured).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"trace_id":"trace-42"`)
	assert.Contains(t, buf.String(), `"role":"test"`)
}
