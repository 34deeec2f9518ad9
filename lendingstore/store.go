package lendingstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence collaborator the transactions and read slices
// depend on. Engines must guarantee that everything executed inside
// WithinTransaction either commits as a whole or leaves no trace.
type Store interface {
	// WithinTransaction runs fn inside one database transaction.
	// When fn returns an error the transaction is rolled back and the error
	// is returned unchanged.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// ListAvailableBooks returns the books not currently on an active loan.
	ListAvailableBooks(ctx context.Context) ([]BookRecord, error)

	// ListMembers returns all members.
	ListMembers(ctx context.Context) ([]MemberRecord, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Tx is the view of the store inside one transaction. Read operations that
// precede mutations lock the rows they return where the backend supports it,
// and all counter mutations are guarded relative updates: an update that
// would violate an invariant (stock below zero, closing a closed record)
// affects no rows and reports ErrConcurrencyConflict.
type Tx interface {
	FindMemberByID(ctx context.Context, memberID int64) (MemberRecord, error)
	CountActiveBorrowings(ctx context.Context, memberID int64) (int, error)
	FindAvailableBookByTitle(ctx context.Context, title string) (BookRecord, error)
	InsertBorrowingRecord(ctx context.Context, record BorrowingRecord) error
	UpdateBookStock(ctx context.Context, bookID int64, delta int) error
	UpdateMemberBorrowedCount(ctx context.Context, memberID int64, delta int) error
	SetMemberPenalty(ctx context.Context, memberID int64, penaltyEndDate time.Time) error
	FindActiveBorrowing(ctx context.Context, memberID int64, bookID int64) (BorrowingRecord, error)
	CloseBorrowing(ctx context.Context, recordID uuid.UUID, returnDate time.Time) error
}
