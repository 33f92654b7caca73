package sheets

import "errors"

var (
	// ErrSpreadsheetUnavailable не удалось получить метаданные таблицы
	ErrSpreadsheetUnavailable = errors.New("sheets.repository: spreadsheet unavailable")

	// ErrWorksheetNotFound в таблице нет листа с указанным именем
	ErrWorksheetNotFound = errors.New("sheets.repository: worksheet not found")
)
