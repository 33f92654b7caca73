package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/hotel-booking-directory/internal/service/bookings"
)

// RespondStorageError отвечает 502/503 на ошибки хранилища и 500 на остальные.
// Возвращает статус ответа для логирования
func RespondStorageError(w http.ResponseWriter, err error) int {
	switch {
	case errors.Is(err, bookings.ErrStorageTimeout):
		RespondGatewayTimeout(w)
		return http.StatusServiceUnavailable

	case errors.Is(err, bookings.ErrStorageUnavailable):
		RespondBadGateway(w)
		return http.StatusBadGateway

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}
