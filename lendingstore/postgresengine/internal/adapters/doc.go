// Package adapters provides database adapter implementations for the relational store engine.
//
// This package implements the adapter pattern to support multiple database
// libraries: pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through a common DBAdapter interface, including
// transaction handles, allowing the engine to work seamlessly with any
// supported connection type.
package adapters
