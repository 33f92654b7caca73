// Package config загружает конфигурацию сервиса: TOML файл, затем .env, затем переменные окружения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/hotel-booking-directory/internal/domain"
	"github.com/m04kA/hotel-booking-directory/pkg/logger"
)

const (
	DriverSheets   = "sheets"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Storage  StorageConfig  `toml:"storage"`
	Sheets   SheetsConfig   `toml:"sheets"`
	Bookings BookingsConfig `toml:"bookings"`
	Database DatabaseConfig `toml:"database"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

// SheetsConfig доступ к таблице Google Sheets
type SheetsConfig struct {
	SpreadsheetName         string `toml:"spreadsheet_name"`
	SpreadsheetID           string `toml:"spreadsheet_id"` // если задан, поиск по имени через Drive не выполняется
	Worksheet               string `toml:"worksheet"`
	CredentialsEnv          string `toml:"credentials_env"`
	CredentialsFile         string `toml:"credentials_file"`
	FallbackCredentialsFile string `toml:"fallback_credentials_file"`
	RequestTimeout          int    `toml:"request_timeout"` // секунды
}

type BookingsConfig struct {
	MaxDeleteAttempts int `toml:"max_delete_attempts"`
}

type DatabaseConfig struct {
	URL             string `toml:"url"` // полный DSN, имеет приоритет над остальными полями
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8000,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Driver: DriverSheets,
		},
		Sheets: SheetsConfig{
			SpreadsheetName: "hotel_data",
			Worksheet:       "Sheet1",
			CredentialsEnv:  "GOOGLE_CREDENTIALS_JSON",
			CredentialsFile: "credentials.json",
			RequestTimeout:  10,
		},
		Bookings: BookingsConfig{
			MaxDeleteAttempts: domain.DefaultMaxDeleteAttempts,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			DBName:          "hotel",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking_directory",
		},
	}
}

// Load читает path (отсутствующий файл не ошибка), подгружает .env и применяет переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: load .env: %w", ErrInvalidConfig, err)
	}

	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidConfig, path, err)
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":                        &c.Logs.Level,
		"LOG_FILE":                         &c.Logs.File,
		"STORAGE_DRIVER":                   &c.Storage.Driver,
		"SHEETS_SPREADSHEET_ID":            &c.Sheets.SpreadsheetID,
		"SHEETS_SPREADSHEET_NAME":          &c.Sheets.SpreadsheetName,
		"SHEETS_WORKSHEET":                 &c.Sheets.Worksheet,
		"SHEETS_CREDENTIALS_FILE":          &c.Sheets.CredentialsFile,
		"SHEETS_FALLBACK_CREDENTIALS_FILE": &c.Sheets.FallbackCredentialsFile,
		"DATABASE_DSN":                     &c.Database.URL,
	}
	for key, dst := range strs {
		if v, ok := lookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	// PORT имеет приоритет над HTTP_PORT
	for _, key := range []string{"HTTP_PORT", "PORT"} {
		v, ok := lookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		c.Server.HTTPPort = port
	}

	if v, ok := lookupEnv("METRICS_ENABLED"); ok && strings.TrimSpace(v) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: METRICS_ENABLED=%q is not a boolean", ErrInvalidConfig, v)
		}
		c.Metrics.Enabled = enabled
	}

	return nil
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}

	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		problems = append(problems, fmt.Sprintf("logs.level %q is unknown", c.Logs.Level))
	}

	if c.Bookings.MaxDeleteAttempts <= 0 {
		problems = append(problems, "bookings.max_delete_attempts must be positive")
	}

	switch c.Storage.Driver {
	case DriverSheets:
		if c.Sheets.SpreadsheetID == "" && c.Sheets.SpreadsheetName == "" {
			problems = append(problems, "sheets.spreadsheet_id or sheets.spreadsheet_name is required")
		}
		if c.Sheets.Worksheet == "" {
			problems = append(problems, "sheets.worksheet is required")
		}
		if c.Sheets.RequestTimeout <= 0 {
			problems = append(problems, "sheets.request_timeout must be positive")
		}
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			problems = append(problems, "database.url or database.host is required")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("storage.driver %q is unknown", c.Storage.Driver))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path %q must start with /", c.Metrics.Path))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// RequestTimeoutDuration таймаут вызова Google API
func (s SheetsConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}
