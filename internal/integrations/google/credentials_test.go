package google

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/hotel-booking-directory/internal/integrations/google/googletest"
	"github.com/m04kA/hotel-booking-directory/pkg/logger"
)

const envVar = "GOOGLE_CREDENTIALS_JSON"

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveCredentialsPrefersEnv(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "credentials.json", `{"source":"file"}`)

	creds, err := ResolveCredentials(CredentialsSource{EnvVar: envVar, File: file},
		env(map[string]string{envVar: `{"source":"env"}`}))
	require.NoError(t, err)

	assert.Equal(t, `{"source":"env"}`, string(creds.JSON))
	assert.Equal(t, "env:"+envVar, creds.Origin)
}

func TestResolveCredentialsBlankEnvFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "credentials.json", `{"source":"file"}`)

	creds, err := ResolveCredentials(CredentialsSource{EnvVar: envVar, File: file},
		env(map[string]string{envVar: "  "}))
	require.NoError(t, err)

	assert.Equal(t, `{"source":"file"}`, string(creds.JSON))
	assert.Equal(t, file, creds.Origin)
}

func TestResolveCredentialsFallbackFile(t *testing.T) {
	dir := t.TempDir()
	fallback := writeFile(t, dir, "deploy-credentials.json", `{"source":"fallback"}`)

	creds, err := ResolveCredentials(CredentialsSource{
		EnvVar:       envVar,
		File:         filepath.Join(dir, "credentials.json"),
		FallbackFile: fallback,
	}, env(nil))
	require.NoError(t, err)

	assert.Equal(t, `{"source":"fallback"}`, string(creds.JSON))
	assert.Equal(t, fallback, creds.Origin)
}

func TestResolveCredentialsMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolveCredentials(CredentialsSource{
		EnvVar:       envVar,
		File:         filepath.Join(dir, "credentials.json"),
		FallbackFile: filepath.Join(dir, "other.json"),
	}, env(nil))
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNewHTTPClientRejectsInvalidDocument(t *testing.T) {
	_, err := NewHTTPClient(context.Background(), &Credentials{JSON: []byte("not json"), Origin: "test"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewHTTPClient(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFindSpreadsheet(t *testing.T) {
	srv := googletest.NewServer("Sheet1", nil)
	defer srv.Close()

	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	client, err := NewClient(context.Background(), srv.Client(), log, srv.Endpoint())
	require.NoError(t, err)

	id, err := client.FindSpreadsheet(context.Background(), "hotel_data")
	require.NoError(t, err)
	assert.Equal(t, srv.SpreadsheetID, id)

	_, err = client.FindSpreadsheet(context.Background(), "guest's data")
	assert.ErrorIs(t, err, ErrSpreadsheetNotFound)
}
