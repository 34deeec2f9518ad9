package postgresengine

import (
	"fmt"

	"github.com/pustakalab/lending/lendingstore"
)

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithDialect sets the goqu dialect. DialectPostgres is the default;
// DialectSQLite is supported through the sql.DB constructor.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		if dialect != DialectPostgres && dialect != DialectSQLite {
			return fmt.Errorf("unsupported dialect %q", dialect)
		}

		s.dialect = dialect

		return nil
	}
}

// WithTableNames sets the three table names the Store operates on.
func WithTableNames(tables TableNames) Option {
	return func(s *Store) error {
		if tables.Members == "" || tables.Books == "" || tables.BorrowedBooks == "" {
			return lendingstore.ErrEmptyTableName
		}

		s.tables = tables

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger lendingstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The collector will receive operation durations and concurrency conflict counts.
func WithMetrics(collector lendingstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metrics = collector
		return nil
	}
}
