package shell

import (
	"context"

	"github.com/pustakalab/lending/lendingstore"
)

// Command represents the contract for all command types in the application.
// Each command encapsulates the intent and parameters needed to execute a
// specific business operation; CommandType enables polymorphic handling and
// observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandHandler defines the contract for components that process commands.
// Handlers orchestrate the complete workflow: opening the unit of work,
// loading state, delegating to pure decision functions, and persisting the
// mutations. They return a typed result R plus HandlerResult metadata.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, HandlerResult, error)
}

// Query represents the contract for all query types in the application.
type Query interface {
	QueryType() string
}

// QueryHandler defines the contract for the read slices.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Interface aliases for convenience, matching the lendingstore observability
// interfaces so handlers and engines share one set of ports.

// Logger interface for basic logging in handlers.
type Logger = lendingstore.Logger

// ContextualLogger interface for context-aware logging in handlers.
type ContextualLogger = lendingstore.ContextualLogger

// MetricsCollector interface for collecting handler performance metrics.
type MetricsCollector = lendingstore.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = lendingstore.ContextualMetricsCollector

// TracingCollector interface for distributed tracing in handlers.
type TracingCollector = lendingstore.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = lendingstore.SpanContext
