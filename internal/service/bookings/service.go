package bookings

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage"
)

// Service сервис для работы с бронированиями
type Service struct {
	repo              BookingRepository
	maxDeleteAttempts int
	logger            Logger

	// writeMu единственная точка записи: create и delete выполняются строго по одному
	writeMu sync.Mutex
}

// NewService создает новый экземпляр сервиса бронирований.
// maxDeleteAttempts <= 0 заменяется значением по умолчанию
func NewService(repo BookingRepository, maxDeleteAttempts int, logger Logger) *Service {
	if maxDeleteAttempts <= 0 {
		maxDeleteAttempts = domain.DefaultMaxDeleteAttempts
	}

	return &Service{
		repo:              repo,
		maxDeleteAttempts: maxDeleteAttempts,
		logger:            logger,
	}
}

// List возвращает все бронирования в порядке строк таблицы
func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	table, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("List: snapshot failed: %v", err)
		return nil, s.storageError("List - snapshot", err)
	}

	s.logger.Info("List: fetched %d bookings", table.Len())
	return table.Records, nil
}

// GetByID возвращает первую строку с указанным booking id
func (s *Service) GetByID(ctx context.Context, bookingID string) (domain.Record, error) {
	table, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("GetByID: snapshot failed for booking_id=%s: %v", bookingID, err)
		return nil, s.storageError("GetByID - snapshot", err)
	}

	_, record, found := table.Find(bookingID)
	if !found {
		s.logger.Warn("GetByID: booking_id=%s not found", bookingID)
		return nil, ErrBookingNotFound
	}

	return record, nil
}

// Create добавляет бронирование последней строкой. Уникальность booking id не проверяется
func (s *Service) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Append(ctx, booking); err != nil {
		s.logger.Error("Create: append failed for booking_id=%s: %v", booking.BookingID, err)
		return nil, s.storageError("Create - append", err)
	}

	s.logger.Info("Create: booking_id=%s created", booking.BookingID)
	return booking, nil
}

// Delete удаляет первую строку с указанным booking id.
// Если строка сместилась между чтением и удалением, таблица перечитывается заново
func (s *Service) Delete(ctx context.Context, bookingID string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	for attempt := 1; attempt <= s.maxDeleteAttempts; attempt++ {
		table, err := s.repo.Snapshot(ctx)
		if err != nil {
			s.logger.Error("Delete: snapshot failed for booking_id=%s: %v", bookingID, err)
			return s.storageError("Delete - snapshot", err)
		}

		index, _, found := table.Find(bookingID)
		if !found {
			s.logger.Warn("Delete: booking_id=%s not found", bookingID)
			return ErrBookingNotFound
		}

		err = s.repo.DeleteRow(ctx, domain.RowRef{Index: index, BookingID: bookingID})
		if err == nil {
			s.logger.Info("Delete: booking_id=%s deleted from row %d", bookingID, index)
			return nil
		}

		if errors.Is(err, storage.ErrRowMoved) {
			s.logger.Warn("Delete: row %d for booking_id=%s moved, attempt %d/%d", index, bookingID, attempt, s.maxDeleteAttempts)
			continue
		}

		s.logger.Error("Delete: delete row %d failed for booking_id=%s: %v", index, bookingID, err)
		return s.storageError("Delete - delete row", err)
	}

	return fmt.Errorf("%w: booking_id=%s after %d attempts", ErrConflict, bookingID, s.maxDeleteAttempts)
}

// storageError переводит ошибку драйвера в ошибку сервиса
func (s *Service) storageError(op string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %s: %w", ErrStorageTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
