package list_bookings

import (
	"context"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

type BookingService interface {
	List(ctx context.Context) ([]domain.Record, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
