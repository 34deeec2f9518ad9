// Package postgresengine implements the lendingstore contract on top of a
// relational database. PostgreSQL is the primary backend (through pgxpool,
// sqlx or database/sql); SQLite is supported through the database/sql
// constructor for development and CI.
//
// All SQL is built with goqu and executed with bound parameters. Counter
// mutations are guarded relative updates: an update whose guard fails
// affects no rows and is reported as lendingstore.ErrConcurrencyConflict,
// which callers retry. Read-before-write lookups lock their rows
// (SELECT ... FOR UPDATE) on backends that support row locking.
package postgresengine
