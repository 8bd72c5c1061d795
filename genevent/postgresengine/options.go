package postgresengine

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

// Option defines a functional option for configuring RecordStore.
type Option func(*RecordStore) error

// WithTableName sets the table name for the RecordStore.
// A schema-qualified name like "archive.records" is supported; double quotes are not.
func WithTableName(tableName string) Option {
	return func(rs *RecordStore) error {
		if tableName == "" {
			return ErrEmptyTableNameSupplied
		}

		if err := validateTableName(tableName); err != nil {
			return err
		}

		rs.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the RecordStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Record counts, durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger genevent.Logger) Option {
	return func(rs *RecordStore) error {
		rs.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the RecordStore.
// It receives query/append durations, record counts and database errors.
func WithMetrics(collector genevent.MetricsCollector) Option {
	return func(rs *RecordStore) error {
		rs.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the RecordStore.
// One span is started per CreateTable, Query and Append call.
func WithTracing(collector genevent.TracingCollector) Option {
	return func(rs *RecordStore) error {
		rs.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the RecordStore.
// It receives the same messages as the Logger, together with the operation's context,
// which allows trace/span correlation when tracing is enabled.
func WithContextualLogger(logger genevent.ContextualLogger) Option {
	return func(rs *RecordStore) error {
		rs.contextualLogger = logger
		return nil
	}
}

func validateTableName(tableName string) error {
	if strings.Contains(tableName, identifierQuote) {
		return fmt.Errorf("%w: %q contains a double quote", ErrInvalidTableNameSupplied, tableName)
	}

	parts := strings.Split(tableName, tableNameSeparator)
	if len(parts) > 2 {
		return fmt.Errorf("%w: %q has more than one schema separator", ErrInvalidTableNameSupplied, tableName)
	}

	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("%w: %q has an empty schema or table part", ErrInvalidTableNameSupplied, tableName)
		}
	}

	return nil
}
