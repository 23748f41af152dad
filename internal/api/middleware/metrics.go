package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// unmatchedRoute метка для запросов без найденного маршрута
const unmatchedRoute = "unmatched"

// Metrics собирает метрики запросов с шаблоном маршрута в качестве метки
func Metrics(m HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			m.ObserveHTTPRequest(r.Method, routeTemplate(r), wrapped.statusCode, time.Since(start))
		})
	}
}

// routeTemplate возвращает шаблон маршрута, чтобы ID не раздували кардинальность
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}

	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
