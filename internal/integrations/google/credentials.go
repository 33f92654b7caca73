package google

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// Scopes права, с которыми открывается сессия: чтение/запись таблиц и доступ к Drive
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveScope,
}

// CredentialsSource откуда брать ключ сервисного аккаунта
type CredentialsSource struct {
	EnvVar       string // имя переменной окружения с JSON документом
	File         string // путь по умолчанию
	FallbackFile string // запасной путь, пустой - не проверяется
}

// Credentials найденный документ с ключом
type Credentials struct {
	JSON   []byte
	Origin string // "env:<NAME>" или путь к файлу
}

// ResolveCredentials выбирает источник ключа: переменная окружения, затем файл
// по умолчанию, затем запасной файл. Если ничего не найдено - ErrMissingCredentials
func ResolveCredentials(src CredentialsSource, lookupEnv func(string) (string, bool)) (*Credentials, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if src.EnvVar != "" {
		if v, ok := lookupEnv(src.EnvVar); ok && strings.TrimSpace(v) != "" {
			return &Credentials{
				JSON:   []byte(v),
				Origin: "env:" + src.EnvVar,
			}, nil
		}
	}

	for _, path := range []string{src.File, src.FallbackFile} {
		if strings.TrimSpace(path) == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInternal, path, err)
		}

		return &Credentials{
			JSON:   data,
			Origin: path,
		}, nil
	}

	return nil, ErrMissingCredentials
}

// NewHTTPClient строит HTTP клиент, подписывающий запросы токенами сервисного аккаунта
func NewHTTPClient(ctx context.Context, creds *Credentials) (*http.Client, error) {
	if creds == nil {
		return nil, ErrMissingCredentials
	}

	c, err := googleoauth.CredentialsFromJSON(ctx, creds.JSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCredentials, creds.Origin, err)
	}

	return oauth2.NewClient(ctx, c.TokenSource), nil
}
