package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	gsheets "google.golang.org/api/sheets/v4"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage"
)

const (
	valueRenderUnformatted = "UNFORMATTED_VALUE"
	dateTimeRenderString   = "FORMATTED_STRING"
	valueInputRaw          = "RAW"
	insertDataInsertRows   = "INSERT_ROWS"
	dimensionRows          = "ROWS"
)

// Config параметры листа
type Config struct {
	SpreadsheetID string
	Worksheet     string
	Timeout       time.Duration // таймаут на каждый вызов API, 0 - без таймаута
}

// Repository бронирования в листе Google Sheets. Первая строка листа - заголовок
type Repository struct {
	service       *gsheets.Service
	spreadsheetID string
	sheetID       int64
	title         string
	timeout       time.Duration
	logger        Logger
}

// Open открывает лист по имени. Ошибка, если таблица недоступна или листа нет
func Open(ctx context.Context, service *gsheets.Service, cfg Config, logger Logger) (*Repository, error) {
	r := &Repository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		timeout:       cfg.Timeout,
		logger:        logger,
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	spreadsheet, err := service.Spreadsheets.Get(cfg.SpreadsheetID).
		Fields("spreadsheetId", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: Open - get spreadsheet %s: %w", ErrSpreadsheetUnavailable, cfg.SpreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(cfg.Worksheet)) {
			r.sheetID = sheet.Properties.SheetId
			r.title = sheet.Properties.Title

			logger.Info("Opened worksheet '%s' (sheet_id=%d) in spreadsheet %s", r.title, r.sheetID, r.spreadsheetID)
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: '%s' in spreadsheet %s", ErrWorksheetNotFound, cfg.Worksheet, cfg.SpreadsheetID)
}

// Snapshot читает весь лист: заголовок и все строки
func (r *Repository) Snapshot(ctx context.Context) (*domain.Table, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	response, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetRange("")).
		ValueRenderOption(valueRenderUnformatted).
		DateTimeRenderOption(dateTimeRenderString).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - get values: %w", storage.ErrRequest, err)
	}

	table, err := domain.NewTable(response.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - decode rows: %w", storage.ErrSchema, err)
	}

	return table, nil
}

// Append добавляет бронирование последней строкой. Позиции колонок берутся из заголовка листа
func (r *Repository) Append(ctx context.Context, booking *domain.Booking) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	header, err := r.header(ctx)
	if err != nil {
		return err
	}

	layout, err := domain.ResolveLayout(header)
	if err != nil {
		return fmt.Errorf("%w: Append - resolve columns: %w", storage.ErrSchema, err)
	}

	values := gsheets.ValueRange{
		Values: [][]interface{}{layout.Row(booking)},
	}

	if _, err := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange("A1"), &values).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertDataInsertRows).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("%w: Append - append row: %w", storage.ErrRequest, err)
	}

	return nil
}

// DeleteRow удаляет строку ref.Index, предварительно перечитав её: если booking id
// в строке изменился (лист правили вручную), возвращает storage.ErrRowMoved
func (r *Repository) DeleteRow(ctx context.Context, ref domain.RowRef) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := ref.SheetRow()

	response, err := r.service.Spreadsheets.Values.BatchGet(r.spreadsheetID).
		Ranges(r.sheetRange("1:1"), r.sheetRange(fmt.Sprintf("%d:%d", row, row))).
		ValueRenderOption(valueRenderUnformatted).
		DateTimeRenderOption(dateTimeRenderString).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: DeleteRow - re-read row %d: %w", storage.ErrRequest, row, err)
	}

	ranges := response.ValueRanges
	if len(ranges) != 2 || len(ranges[0].Values) == 0 || len(ranges[1].Values) == 0 {
		r.logger.Warn("DeleteRow: row %d is gone, expected booking_id=%s", row, ref.BookingID)
		return storage.ErrRowMoved
	}

	current, err := domain.NewTable([][]interface{}{ranges[0].Values[0], ranges[1].Values[0]})
	if err != nil {
		return fmt.Errorf("%w: DeleteRow - decode row %d: %w", storage.ErrSchema, row, err)
	}

	if index, _, ok := current.Find(ref.BookingID); !ok || index != 0 {
		r.logger.Warn("DeleteRow: row %d no longer holds booking_id=%s", row, ref.BookingID)
		return storage.ErrRowMoved
	}

	rq := gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{
			{
				DeleteDimension: &gsheets.DeleteDimensionRequest{
					Range: &gsheets.DimensionRange{
						SheetId:         r.sheetID,
						Dimension:       dimensionRows,
						StartIndex:      int64(row - 1),
						EndIndex:        int64(row),
						ForceSendFields: []string{"SheetId"},
					},
				},
			},
		},
	}

	if _, err := r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: DeleteRow - delete row %d: %w", storage.ErrRequest, row, err)
	}

	return nil
}

func (r *Repository) header(ctx context.Context) ([]string, error) {
	response, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetRange("1:1")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: header - get values: %w", storage.ErrRequest, err)
	}

	header := []string{}
	if len(response.Values) > 0 {
		for _, v := range response.Values[0] {
			header = append(header, domain.CellString(v))
		}
	}

	return header, nil
}

// sheetRange строит диапазон в A1 нотации с экранированным именем листа
func (r *Repository) sheetRange(cells string) string {
	quoted := "'" + strings.ReplaceAll(r.title, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
