package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/storefront/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantError  bool
	}{
		{
			name:       "implicit ok",
			handler:    func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("hi")) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			handler:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "server error",
			handler:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantStatus: http.StatusInternalServerError,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogging(logger.NewWithWriter(&buf, int(slog.LevelDebug)))

			rec := httptest.NewRecorder()
			l.Handle(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			out := buf.String()
			assert.Contains(t, out, "HTTP request completed")
			assert.Contains(t, out, "/api/state")
			assert.Equal(t, tt.wantError, bytes.Contains(buf.Bytes(), []byte("HTTP request failed")))
		})
	}
}

func TestStatusRecorder_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	var _ http.Flusher = sr
	sr.Flush()
	assert.True(t, rec.Flushed)
	assert.Equal(t, rec, sr.Unwrap())
}
