package health

import (
	"net/http"

	"github.com/m04kA/hotel-booking-directory/internal/api/handlers"
)

// Handle GET /healthz
func Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
