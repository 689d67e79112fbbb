package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// contentType is set on every response, whatever file is served.
const contentType = "text/html; charset=utf-8"

// forceHTML wraps next so that every response carries [contentType],
// including error pages and directory listings.
func forceHTML(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&htmlWriter{ResponseWriter: w}, r)
	})
}

// htmlWriter overrides Content-Type at the moment headers are sent, after
// the wrapped handler has set its own.
type htmlWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *htmlWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.Header().Set("Content-Type", contentType)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *htmlWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *htmlWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// logRequests tags each request with an X-Request-Id and logs it at debug
// level once served.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.Debug("request served",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	})
}
