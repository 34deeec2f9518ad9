// Package lendingstore defines the persistence contract of the lending
// system: the row records for the members, books and borrowed_books tables,
// the sentinel errors engines report, and the dependency-free observability
// interfaces engines accept.
//
// Concrete engines live in the subpackages postgresengine (relational
// databases through pgx, sqlx or database/sql) and memoryengine (tests and
// dev mode).
package lendingstore
