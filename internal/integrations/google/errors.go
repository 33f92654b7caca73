package google

import "errors"

var (
	// ErrMissingCredentials ни переменная окружения, ни файл с ключом сервисного аккаунта не найдены
	ErrMissingCredentials = errors.New("google client: credentials.json not found in env vars or local path")

	// ErrInvalidCredentials документ с ключом не разбирается
	ErrInvalidCredentials = errors.New("google client: invalid credentials document")

	// ErrSpreadsheetNotFound таблица с указанным именем не найдена в Drive
	ErrSpreadsheetNotFound = errors.New("google client: spreadsheet not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("google client: internal error")
)
