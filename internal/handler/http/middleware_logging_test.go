// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/stretchr/testify/assert"
)

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "GET 200",
			method:          http.MethodGet,
			path:            "/test",
			handlerStatus:   http.StatusOK,
			handlerResponse: "OK",
			checkLogContains: []string{
				`"method":"GET"`,
				`"uri":"/test"`,
				`"status":200`,
				`"duration":`,
				`"size":2`,
			},
		},
		{
			name:            "POST 201",
			method:          http.MethodPost,
			path:            "/api/books",
			handlerStatus:   http.StatusCreated,
			handlerResponse: `{"id":1}`,
			checkLogContains: []string{
				`"method":"POST"`,
				`"status":201`,
				`"size":8`,
			},
		},
		{
			name:          "no body written defaults to 200",
			method:        http.MethodGet,
			path:          "/empty",
			handlerStatus: 0,
			checkLogContains: []string{
				`"status":200`,
				`"size":0`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.New(&buf, "test", "debug"), metrics: metrics.New()}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.handlerStatus != 0 {
					w.WriteHeader(tt.handlerStatus)
				}
				if tt.handlerResponse != "" {
					w.Write([]byte(tt.handlerResponse))
				}
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			h.withTraceID(h.withLogging(next)).ServeHTTP(rec, req)

			for _, want := range tt.checkLogContains {
				assert.Contains(t, buf.String(), want)
			}
			assert.Contains(t, buf.String(), `"trace_id":"`+rec.Header().Get(traceIDHeader)+`"`)
		})
	}
}

func TestWithLogging_NeverLogsSecrets(t *testing.T) {
	var buf bytes.Buffer
	svcs := newTestServices()
	svcs.AuthService = loginService()
	h := NewHandler(svcs, config.Server{}, metrics.New(), logger.New(&buf, "test", "debug"))

	serve(t, h, http.MethodPost, "/api/auth/login", `{"identifier":"alice","password":"wonderland"}`, "")
	serve(t, h, http.MethodGet, "/api/users/me", "", "super-secret-token")

	assert.NotContains(t, buf.String(), "wonderland")
	assert.NotContains(t, buf.String(), "super-secret-token")
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrapResponseWriter(rec)

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)
	n, err := rw.Write([]byte("abc"))

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusTeapot, rw.Status())
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 3, rw.size)
	assert.Same(t, rw, wrapResponseWriter(rw), "wrapping twice reuses the recorder")
}
