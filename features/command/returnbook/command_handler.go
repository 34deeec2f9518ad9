package returnbook

import (
	"context"

	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/shell"
)

// Result describes the outcome of a completed return.
type Result struct {
	PenaltyApplied bool
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It runs the core workflow inside one store transaction: locate the active record -> Decide ->
// persist penalty, close record, restore counters. External wrappers handle all observability concerns.
type CommandHandler struct {
	store        lendingstore.Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store lendingstore.Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
		// retryOptions defaults to nil (will use retry defaults)
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// It delegates the unit of work to executeCommand and retries it with
// exponential backoff on concurrency conflicts.
// Returns the return outcome plus HandlerResult execution metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		res, execErr := h.executeCommand(retryCtx, command)
		result = res

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{}, shell.NewHandlerResult(retryMetrics), err
	}

	return result, shell.NewHandlerResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	var result Result

	txErr := h.store.WithinTransaction(ctx, func(txCtx context.Context, tx lendingstore.Tx) error {
		borrowingRecord, err := tx.FindActiveBorrowing(txCtx, command.MemberID, command.BookID)
		if err != nil {
			return err
		}

		// The member row is loaded fresh inside the transaction: the penalty
		// extension must stack on the current window, not a stale one.
		memberRecord, err := tx.FindMemberByID(txCtx, command.MemberID)
		if err != nil {
			return err
		}

		// Business logic phase - delegate to the pure decide function
		decision := Decide(borrowingRecord.ToDomain(), memberRecord.ToDomain(), command)

		if decision.IsLate {
			if penaltyErr := tx.SetMemberPenalty(txCtx, command.MemberID, *decision.PenaltyEndDate); penaltyErr != nil {
				return penaltyErr
			}
		}

		if closeErr := tx.CloseBorrowing(txCtx, borrowingRecord.ID, command.ReturnDate); closeErr != nil {
			return closeErr
		}

		if stockErr := tx.UpdateBookStock(txCtx, borrowingRecord.BookID, +1); stockErr != nil {
			return stockErr
		}

		if countErr := tx.UpdateMemberBorrowedCount(txCtx, command.MemberID, -1); countErr != nil {
			return countErr
		}

		result = Result{PenaltyApplied: decision.IsLate}

		return nil
	})

	if txErr != nil {
		return Result{}, txErr
	}

	return result, nil
}
