// Package memoryengine implements the lendingstore contract in memory.
// It exists for tests and for running the server without a database; the
// semantics (guarded counters, active-loan lookups, all-or-nothing
// transactions) match the relational engine.
package memoryengine
