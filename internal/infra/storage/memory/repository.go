// Package memory хранит бронирования в памяти процесса с той же семантикой
// строк, что и лист Google Sheets. Данные теряются при перезапуске
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage"
)

// Repository таблица в памяти: первая строка - заголовок
type Repository struct {
	mu   sync.RWMutex
	rows [][]interface{}
}

// NewRepository создает пустую таблицу с каноническим заголовком
func NewRepository() *Repository {
	header := make([]interface{}, 0, len(domain.Columns))
	for _, h := range domain.Headers() {
		header = append(header, h)
	}

	return NewRepositoryWithRows([][]interface{}{header})
}

// NewRepositoryWithRows создает таблицу с готовым содержимым (заголовок + строки)
func NewRepositoryWithRows(rows [][]interface{}) *Repository {
	return &Repository{rows: copyRows(rows)}
}

func (r *Repository) Snapshot(_ context.Context) (*domain.Table, error) {
	r.mu.RLock()
	rows := copyRows(r.rows)
	r.mu.RUnlock()

	table, err := domain.NewTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - decode rows: %w", storage.ErrSchema, err)
	}
	return table, nil
}

func (r *Repository) Append(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	layout, err := domain.ResolveLayout(r.header())
	if err != nil {
		return fmt.Errorf("%w: Append - resolve columns: %w", storage.ErrSchema, err)
	}

	if len(r.rows) == 0 {
		header := make([]interface{}, 0, len(domain.Columns))
		for _, h := range domain.Headers() {
			header = append(header, h)
		}
		r.rows = append(r.rows, header)
	}

	r.rows = append(r.rows, layout.Row(booking))
	return nil
}

func (r *Repository) DeleteRow(_ context.Context, ref domain.RowRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := ref.Index + domain.HeaderRows
	if ref.Index < 0 || pos >= len(r.rows) {
		return storage.ErrRowMoved
	}

	current, err := domain.NewTable([][]interface{}{r.rows[0], r.rows[pos]})
	if err != nil {
		return fmt.Errorf("%w: DeleteRow - decode row: %w", storage.ErrSchema, err)
	}

	if _, _, ok := current.Find(ref.BookingID); !ok {
		return storage.ErrRowMoved
	}

	r.rows = append(r.rows[:pos], r.rows[pos+1:]...)
	return nil
}

// Len количество строк данных
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.rows) == 0 {
		return 0
	}
	return len(r.rows) - domain.HeaderRows
}

func (r *Repository) header() []string {
	if len(r.rows) == 0 {
		return nil
	}

	header := make([]string, 0, len(r.rows[0]))
	for _, v := range r.rows[0] {
		header = append(header, domain.CellString(v))
	}
	return header
}

func copyRows(rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, append([]interface{}(nil), row...))
	}
	return out
}
