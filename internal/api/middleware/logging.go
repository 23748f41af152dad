package middleware

import (
	"net/http"
	"time"
)

// responseWriter запоминает статус ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logging логирует метод, путь, статус и длительность запроса
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			requestID := RequestIDFromContext(r.Context())

			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				logger.Error("method=%s path=%s status=%d duration=%s request_id=%s",
					r.Method, r.URL.Path, wrapped.statusCode, duration, requestID)
			case wrapped.statusCode >= http.StatusBadRequest:
				logger.Warn("method=%s path=%s status=%d duration=%s request_id=%s",
					r.Method, r.URL.Path, wrapped.statusCode, duration, requestID)
			default:
				logger.Info("method=%s path=%s status=%d duration=%s request_id=%s",
					r.Method, r.URL.Path, wrapped.statusCode, duration, requestID)
			}
		})
	}
}
