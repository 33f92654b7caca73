// Package postgres хранит бронирования в таблице PostgreSQL.
// Порядок строк задает автоинкрементная колонка seq, поэтому индекс строки
// в снимке совпадает с OFFSET при сортировке по seq
package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage"
	"github.com/m04kA/hotel-booking-directory/pkg/psqlbuilder"
)

const (
	tableName = "bookings"
	seqColumn = "seq"
)

// bookingRow строка таблицы bookings
type bookingRow struct {
	BookingID     string `db:"booking_id"`
	Name          string `db:"name"`
	PhoneNumber   string `db:"phone_number"`
	CheckinDate   string `db:"checkin_date"`
	CheckoutDate  string `db:"checkout_date"`
	ApartmentType string `db:"apartment_type"`
	Nights        int64  `db:"nights"`
}

func (r bookingRow) toDomain() *domain.Booking {
	return &domain.Booking{
		BookingID:     r.BookingID,
		Name:          r.Name,
		PhoneNumber:   r.PhoneNumber,
		CheckinDate:   r.CheckinDate,
		CheckoutDate:  r.CheckoutDate,
		ApartmentType: r.ApartmentType,
		Nights:        r.Nights,
	}
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Snapshot читает все бронирования в порядке добавления
func (r *Repository) Snapshot(ctx context.Context) (*domain.Table, error) {
	query, args, err := snapshotQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - build select query: %w", ErrBuildQuery, err)
	}

	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Snapshot - execute select: %w", storage.ErrRequest, err)
	}

	header := make([]interface{}, 0, len(domain.Columns))
	for _, h := range domain.Headers() {
		header = append(header, h)
	}
	values := [][]interface{}{header}

	for _, row := range rows {
		values = append(values, row.toDomain().Values())
	}

	table, err := domain.NewTable(values)
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - decode rows: %w", storage.ErrSchema, err)
	}
	return table, nil
}

// Append добавляет бронирование в конец таблицы
func (r *Repository) Append(ctx context.Context, booking *domain.Booking) error {
	query, args, err := appendQuery(booking).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %w", storage.ErrRequest, err)
	}
	return nil
}

// DeleteRow удаляет строку ref.Index, только если она все еще содержит ref.BookingID.
// Иначе возвращает storage.ErrRowMoved
func (r *Repository) DeleteRow(ctx context.Context, ref domain.RowRef) error {
	if ref.Index < 0 {
		return storage.ErrRowMoved
	}

	query, args, err := deleteRowQuery(ref).ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteRow - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRow - execute delete: %w", storage.ErrRequest, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRow - rows affected: %w", storage.ErrRequest, err)
	}
	if affected == 0 {
		return storage.ErrRowMoved
	}
	return nil
}

func columns() []string {
	out := make([]string, 0, len(domain.Columns))
	for _, c := range domain.Columns {
		out = append(out, c.Field)
	}
	return out
}

func snapshotQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select(columns()...).
		From(tableName).
		OrderBy(seqColumn + " ASC")
}

func appendQuery(booking *domain.Booking) squirrel.InsertBuilder {
	return psqlbuilder.Insert(tableName).
		Columns(columns()...).
		Values(booking.Values()...)
}

func deleteRowQuery(ref domain.RowRef) squirrel.DeleteBuilder {
	target := psqlbuilder.Select(seqColumn).
		From(tableName).
		OrderBy(seqColumn + " ASC").
		Offset(uint64(ref.Index)).
		Limit(1)

	return psqlbuilder.Delete(tableName).
		Where(squirrel.Expr(seqColumn+" = (?)", target)).
		Where(squirrel.Eq{"booking_id": ref.BookingID})
}
