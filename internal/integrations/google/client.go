package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Client клиент Google Sheets + Drive поверх одной авторизованной HTTP сессии
type Client struct {
	Sheets *sheets.Service
	Drive  *drive.Service
	log    Logger
}

// NewClient создает сервисы Sheets и Drive. opts дописываются после HTTP клиента
// (в тестах так подменяется endpoint)
func NewClient(ctx context.Context, httpClient *http.Client, log Logger, opts ...option.ClientOption) (*Client, error) {
	base := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)

	sheetsService, err := sheets.NewService(ctx, base...)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create Sheets client: %v", ErrInternal, err)
	}

	driveService, err := drive.NewService(ctx, base...)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create Drive client: %v", ErrInternal, err)
	}

	return &Client{
		Sheets: sheetsService,
		Drive:  driveService,
		log:    log,
	}, nil
}

// FindSpreadsheet ищет таблицу по имени в Drive и возвращает её ID.
// При нескольких совпадениях берется первая
func (c *Client) FindSpreadsheet(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)

	list, err := c.Drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(10).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: failed to list spreadsheets named '%s': %v", ErrInternal, name, err)
	}

	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: '%s'", ErrSpreadsheetNotFound, name)
	}

	if len(list.Files) > 1 {
		c.log.Warn("Found %d spreadsheets named '%s', using id=%s", len(list.Files), name, list.Files[0].Id)
	}

	return list.Files[0].Id, nil
}
