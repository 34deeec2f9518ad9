package borrowbooks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pustakalab/lending/core"
	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/shell"
)

// BorrowedBook is one entry of the command result, describing a copy that was
// handed out.
type BorrowedBook struct {
	ID           uuid.UUID
	Code         string
	Title        string
	BorrowedBy   string
	BorrowedDate core.DayDate
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It runs the core workflow inside one store transaction: load member -> Decide -> per title
// resolve copy, insert record, adjust counters. External wrappers handle all observability concerns.
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
// exponential backoff on concurrency conflicts; a retried attempt starts from
// a fresh transaction, so partial work from a lost race never leaks.
// Returns the borrowed copies plus HandlerResult execution metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) ([]BorrowedBook, shell.HandlerResult, error) {
	var borrowed []BorrowedBook

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		result, execErr := h.executeCommand(retryCtx, command)
		borrowed = result

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return nil, shell.NewHandlerResult(retryMetrics), err
	}

	return borrowed, shell.NewHandlerResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) ([]BorrowedBook, error) {
	var borrowed []BorrowedBook

	txErr := h.store.WithinTransaction(ctx, func(txCtx context.Context, tx lendingstore.Tx) error {
		memberRecord, err := tx.FindMemberByID(txCtx, command.MemberID)
		if err != nil {
			return err
		}

		activeBorrowings, err := tx.CountActiveBorrowings(txCtx, command.MemberID)
		if err != nil {
			return err
		}

		// Business logic phase - delegate to the pure decide function
		if decideErr := Decide(memberRecord.ToDomain(), activeBorrowings, command); decideErr != nil {
			return decideErr
		}

		result := make([]BorrowedBook, 0, len(command.Borrowings))

		for _, borrowing := range command.Borrowings {
			bookRecord, findErr := tx.FindAvailableBookByTitle(txCtx, borrowing.BookTitle)
			if findErr != nil {
				if errors.Is(findErr, lendingstore.ErrBookNotAvailable) {
					return core.BookOutOfStockError{Title: borrowing.BookTitle}
				}

				return findErr
			}

			record := lendingstore.BorrowingRecord{
				ID:        uuid.New(),
				MemberID:  command.MemberID,
				BookID:    bookRecord.ID,
				StartDate: borrowing.StartDate,
				EndDate:   borrowing.EndDate,
			}

			if insertErr := tx.InsertBorrowingRecord(txCtx, record); insertErr != nil {
				return insertErr
			}

			if stockErr := tx.UpdateBookStock(txCtx, bookRecord.ID, -1); stockErr != nil {
				return stockErr
			}

			if countErr := tx.UpdateMemberBorrowedCount(txCtx, command.MemberID, +1); countErr != nil {
				return countErr
			}

			result = append(result, BorrowedBook{
				ID:           record.ID,
				Code:         bookRecord.Code,
				Title:        bookRecord.Title,
				BorrowedBy:   memberRecord.Name,
				BorrowedDate: borrowing.StartDate,
			})
		}

		borrowed = result

		return nil
	})

	if txErr != nil {
		return nil, txErr
	}

	return borrowed, nil
}
