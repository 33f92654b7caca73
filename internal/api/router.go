// Package api собирает HTTP маршруты сервиса
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/hotel-booking-directory/internal/api/handlers"
	createBookingHandler "github.com/m04kA/hotel-booking-directory/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/hotel-booking-directory/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/hotel-booking-directory/internal/api/handlers/get_booking"
	"github.com/m04kA/hotel-booking-directory/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/hotel-booking-directory/internal/api/handlers/list_bookings"
	"github.com/m04kA/hotel-booking-directory/internal/api/middleware"
	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

// BookingService все операции справочника бронирований
type BookingService interface {
	List(ctx context.Context) ([]domain.Record, error)
	GetByID(ctx context.Context, bookingID string) (domain.Record, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, bookingID string) error
}

// Deps зависимости роутера
type Deps struct {
	Bookings BookingService
	Logger   middleware.Logger

	// Metrics nil - метрики выключены
	Metrics        middleware.MetricsRecorder
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter возвращает обработчик со всеми маршрутами и middleware
func NewRouter(deps Deps) http.Handler {
	listBookings := listBookingsHandler.NewHandler(deps.Bookings, deps.Logger)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, deps.Logger)
	createBooking := createBookingHandler.NewHandler(deps.Bookings, deps.Logger)
	deleteBooking := deleteBookingHandler.NewHandler(deps.Bookings, deps.Logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondNotFound(w, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	if deps.MetricsHandler != nil && deps.MetricsPath != "" {
		r.Handle(deps.MetricsPath, deps.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	r.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	r.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{booking_id}", getBooking.Handle).Methods(http.MethodGet)
	r.HandleFunc("/bookings/{booking_id}", deleteBooking.Handle).Methods(http.MethodDelete)

	return middleware.RequestID(
		middleware.AccessLog(deps.Logger)(
			middleware.Recover(deps.Logger)(r),
		),
	)
}
