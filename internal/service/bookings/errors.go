package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrStorageUnavailable возвращается, когда хранилище ответило ошибкой
	// или его содержимое не соответствует схеме
	ErrStorageUnavailable = errors.New("bookings.service: storage unavailable")

	// ErrStorageTimeout возвращается, когда хранилище не ответило вовремя
	ErrStorageTimeout = errors.New("bookings.service: storage timeout")

	// ErrConflict возвращается, когда строку не удалось удалить за отведенное число попыток:
	// таблицу параллельно правили вне сервиса
	ErrConflict = errors.New("bookings.service: booking changed concurrently")
)
