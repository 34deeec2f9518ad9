package core

import (
	"errors"
)

// Business rule errors surfaced by the borrow/return transactions.
// The HTTP adapter maps them to response statuses; the reason strings are
// the user-facing messages.
const (
	FailureReasonMemberPenalized    = "Member is currently penalized"
	FailureReasonLimitExceeded      = "Borrowing limit exceeded"
	FailureReasonNoBorrowings       = "No borrowings provided"
	FailureReasonMemberNotFound     = "Member not found"
	FailureReasonNoActiveBorrowing  = "No active borrowing found for this member and book"
	FailureReasonBookOutOfStockVerb = "is out of stock"
)

var (
	// ErrMemberPenalized is returned when a borrow is attempted inside the member's penalty window.
	ErrMemberPenalized = errors.New(FailureReasonMemberPenalized)

	// ErrBorrowingLimitExceeded is returned when active plus requested borrowings exceed the limit.
	ErrBorrowingLimitExceeded = errors.New(FailureReasonLimitExceeded)

	// ErrNoBorrowingsProvided is returned for an empty or missing borrowings list.
	ErrNoBorrowingsProvided = errors.New(FailureReasonNoBorrowings)

	// ErrBookOutOfStock is returned when a requested title has no available copy.
	// Callers wrap it with the title that could not be served.
	ErrBookOutOfStock = errors.New("book " + FailureReasonBookOutOfStockVerb)
)

// MaxActiveBorrowings is the fixed cap on concurrently active borrowings per member.
const MaxActiveBorrowings = 2

// BookOutOfStockError carries the title that could not be served. It matches
// ErrBookOutOfStock under errors.Is so callers can branch without caring
// which title failed.
type BookOutOfStockError struct {
	Title string
}

func (e BookOutOfStockError) Error() string {
	return "Book '" + e.Title + "' " + FailureReasonBookOutOfStockVerb
}

func (e BookOutOfStockError) Is(target error) bool {
	return target == ErrBookOutOfStock
}
