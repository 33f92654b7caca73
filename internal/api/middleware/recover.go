package middleware

import (
	"net/http"

	"github.com/m04kA/hotel-booking-directory/internal/api/handlers"
)

// Recover отвечает 500 на панику в обработчике
func Recover(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					id, _ := GetRequestID(r.Context())
					logger.Error("%s %s - Panic recovered: %v (request_id=%s)", r.Method, r.URL.Path, rec, id)
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
