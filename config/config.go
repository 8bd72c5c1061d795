package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvPostgresDSN     = "GENEVENT_POSTGRES_DSN"
	EnvPostgresAdapter = "GENEVENT_POSTGRES_ADAPTER"
	EnvArchiveTable    = "GENEVENT_ARCHIVE_TABLE"
	EnvLogLevel        = "GENEVENT_LOG_LEVEL"

	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"

	LogFormatText = "text"
	LogFormatJSON = "json"

	defaultTableName       = "event_records"
	defaultLogLevel        = "info"
	defaultMaxConnections  = int32(10)
	defaultMinConnections  = int32(1)
	defaultMaxConnLifetime = time.Hour
	defaultMaxConnIdleTime = time.Minute * 5
	defaultConnectTimeout  = time.Second * 5
)

var ErrReadingConfigFailed = errors.New("reading the config file failed")
var ErrParsingConfigFailed = errors.New("parsing the config file failed")
var ErrUnsupportedAdapter = errors.New("unsupported postgres adapter")
var ErrInvalidLogLevel = errors.New("invalid log level")
var ErrInvalidLogFormat = errors.New("invalid log format")
var ErrMissingDSN = errors.New("no postgres dsn configured")
var ErrInvalidPoolSize = errors.New("invalid connection pool size")

// Config is the complete genevent configuration.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	Adapter         string        `yaml:"adapter"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

// ArchiveConfig holds the settings of the record store.
type ArchiveConfig struct {
	TableName string `yaml:"table_name"`
}

// LoggingConfig holds the log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() Config {
	return Config{
		Postgres: PostgresConfig{
			Adapter:         AdapterPGX,
			MaxConns:        defaultMaxConnections,
			MinConns:        defaultMinConnections,
			MaxConnLifetime: defaultMaxConnLifetime,
			MaxConnIdleTime: defaultMaxConnIdleTime,
			ConnectTimeout:  defaultConnectTimeout,
		},
		Archive: ArchiveConfig{TableName: defaultTableName},
		Logging: LoggingConfig{Level: defaultLogLevel, Format: LogFormatText},
	}
}

// Load reads the YAML file at path on top of the defaults and applies the environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, readErr)
		}

		if parseErr := cfg.decode(content); parseErr != nil {
			return Config{}, parseErr
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse reads YAML content on top of the defaults without looking at the environment.
func Parse(content []byte) (Config, error) {
	cfg := Default()

	if err := cfg.decode(content); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) decode(content []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrParsingConfigFailed, err)
	}

	return nil
}

// ApplyEnv overrides single values from the environment; lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) {
	if dsn, ok := lookup(EnvPostgresDSN); ok && dsn != "" {
		c.Postgres.DSN = dsn
	}

	if adapter, ok := lookup(EnvPostgresAdapter); ok && adapter != "" {
		c.Postgres.Adapter = strings.ToLower(adapter)
	}

	if table, ok := lookup(EnvArchiveTable); ok && table != "" {
		c.Archive.TableName = table
	}

	if level, ok := lookup(EnvLogLevel); ok && level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the values that would otherwise fail late when connecting or logging.
// A missing DSN is not an error here, only commands that need the archive require it.
func (c Config) Validate() error {
	switch c.Postgres.Adapter {
	case AdapterPGX, AdapterSQL, AdapterSQLX:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAdapter, c.Postgres.Adapter)
	}

	if c.Postgres.MaxConns < 1 || c.Postgres.MinConns < 0 || c.Postgres.MinConns > c.Postgres.MaxConns {
		return fmt.Errorf("%w: min %d, max %d", ErrInvalidPoolSize, c.Postgres.MinConns, c.Postgres.MaxConns)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	switch c.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// SlogLevel converts the configured level name.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}

	return level, nil
}

// NewLogger creates a slog.Logger writing to w in the configured format and level.
// An invalid level falls back to info.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := l.SlogLevel()
	options := &slog.HandlerOptions{Level: level}

	if l.Format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, options))
	}

	return slog.New(slog.NewTextHandler(w, options))
}
