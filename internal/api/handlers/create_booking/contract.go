package create_booking

import (
	"context"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

type BookingService interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
