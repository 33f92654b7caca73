package create_booking

import (
	"net/http"

	"github.com/m04kA/hotel-booking-directory/internal/api/handlers"
)

const (
	msgCreated            = "Booking created"
	msgInvalidRequestBody = "Invalid request body"
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

// Handle POST /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidRequestBody)
		return
	}

	booking, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), booking)
	if err != nil {
		status := handlers.RespondStorageError(w, err)
		h.logger.Error("POST /bookings - Failed to create booking: booking_id=%s, status=%d, error=%v",
			booking.BookingID, status, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s", created.BookingID)
	handlers.RespondMessage(w, msgCreated, FromDomain(created))
}
