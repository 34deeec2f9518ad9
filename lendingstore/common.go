package lendingstore

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when an engine is constructed without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is supplied.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrMemberNotFound is returned when no member row matches the given id.
	ErrMemberNotFound = errors.New("member not found")

	// ErrBookNotAvailable is returned when no book row with stock left matches the given title.
	ErrBookNotAvailable = errors.New("no available book with this title")

	// ErrNoActiveBorrowing is returned when no open borrowing record matches the member/book pair.
	ErrNoActiveBorrowing = errors.New("no active borrowing found")

	// ErrConcurrencyConflict is returned when a guarded update affected no rows,
	// typically because a concurrent request consumed the last copy or closed
	// the record first. Safe to retry the whole unit of work.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")
)
