// Package instrumented оборачивает драйвер хранилища и пишет метрики по каждому вызову
package instrumented

import (
	"context"
	"time"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
)

const (
	opSnapshot  = "snapshot"
	opAppend    = "append"
	opDeleteRow = "delete_row"
)

// Repository драйвер хранилища бронирований
type Repository interface {
	Snapshot(ctx context.Context) (*domain.Table, error)
	Append(ctx context.Context, booking *domain.Booking) error
	DeleteRow(ctx context.Context, ref domain.RowRef) error
}

// Recorder приемник метрик
type Recorder interface {
	RecordStorageOperation(driver, operation string, err error, duration time.Duration)
}

// Decorator репозиторий с метриками
type Decorator struct {
	next    Repository
	driver  string
	metrics Recorder
}

// NewRepository оборачивает next. driver попадает в метки метрик
func NewRepository(next Repository, driver string, metrics Recorder) *Decorator {
	return &Decorator{next: next, driver: driver, metrics: metrics}
}

func (d *Decorator) Snapshot(ctx context.Context) (*domain.Table, error) {
	start := time.Now()
	table, err := d.next.Snapshot(ctx)
	d.metrics.RecordStorageOperation(d.driver, opSnapshot, err, time.Since(start))
	return table, err
}

func (d *Decorator) Append(ctx context.Context, booking *domain.Booking) error {
	start := time.Now()
	err := d.next.Append(ctx, booking)
	d.metrics.RecordStorageOperation(d.driver, opAppend, err, time.Since(start))
	return err
}

func (d *Decorator) DeleteRow(ctx context.Context, ref domain.RowRef) error {
	start := time.Now()
	err := d.next.DeleteRow(ctx, ref)
	d.metrics.RecordStorageOperation(d.driver, opDeleteRow, err, time.Since(start))
	return err
}
