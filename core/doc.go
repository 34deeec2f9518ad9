// Package core contains the pure domain model of the lending system:
// member, book and borrowing record snapshots, the penalty policy, and the
// business rule errors the transactions can fail with.
//
// Nothing in this package performs I/O. All functions are deterministic,
// side effects (persisting a penalty, flipping counters) are applied by the
// callers in the shell.
package core
