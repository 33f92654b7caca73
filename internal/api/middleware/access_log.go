package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет одну строку на запрос: метод, путь, статус, длительность
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			id, _ := GetRequestID(r.Context())
			logger.Info("%s %s - %d in %s (request_id=%s)",
				r.Method, r.URL.Path, sw.status, time.Since(start).Round(time.Microsecond), id)
		})
	}
}
