package bookings

import (
	"context"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

// BookingRepository интерфейс драйвера хранилища бронирований
type BookingRepository interface {
	Snapshot(ctx context.Context) (*domain.Table, error)
	Append(ctx context.Context, booking *domain.Booking) error
	DeleteRow(ctx context.Context, ref domain.RowRef) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
