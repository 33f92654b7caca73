package delete_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/hotel-booking-directory/internal/api/handlers"
	"github.com/m04kA/hotel-booking-directory/internal/service/bookings"
)

const (
	msgNotFound = "Booking not found"
	msgConflict = "Booking table changed during delete, retry later"
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

// Handle DELETE /bookings/{booking_id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["booking_id"]

	err := h.service.Delete(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrConflict):
			h.logger.Warn("DELETE /bookings/{id} - Conflict: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			status := handlers.RespondStorageError(w, err)
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%s, status=%d, error=%v",
				bookingID, status, err)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%s", bookingID)
	handlers.RespondMessage(w, fmt.Sprintf("Booking %s deleted", bookingID), nil)
}
