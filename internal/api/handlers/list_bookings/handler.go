package list_bookings

import (
	"net/http"

	"github.com/m04kA/hotel-booking-directory/internal/api/handlers"
	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		status := handlers.RespondStorageError(w, err)
		h.logger.Error("GET /bookings - Failed to list bookings: status=%d, error=%v", status, err)
		return
	}

	if records == nil {
		records = []domain.Record{}
	}

	h.logger.Info("GET /bookings - Bookings listed successfully: count=%d", len(records))
	handlers.RespondJSON(w, http.StatusOK, records)
}
