// Package shell contains the shared imperative shell of the lending
// features: the command/query handler contracts, handler results with retry
// metadata, the exponential-backoff retry for concurrency conflicts, and the
// observability helpers the handlers instrument themselves with.
//
// Feature slices under features/ stay free of infrastructure concerns beyond
// what this package provides; pure business logic lives in core.
package shell
