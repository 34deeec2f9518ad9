package lendingstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pustakalab/lending/core"
)

// Row records as read from and written to the store. They carry exactly the
// persisted fields; Validate is called at the store boundary so malformed
// rows never reach the domain.

var (
	// ErrInvalidMemberRecord is wrapped by MemberRecord.Validate failures.
	ErrInvalidMemberRecord = errors.New("invalid member record")

	// ErrInvalidBookRecord is wrapped by BookRecord.Validate failures.
	ErrInvalidBookRecord = errors.New("invalid book record")

	// ErrInvalidBorrowingRecord is wrapped by BorrowingRecord.Validate failures.
	ErrInvalidBorrowingRecord = errors.New("invalid borrowing record")
)

// MemberRecord mirrors one row of the members table.
type MemberRecord struct {
	ID             int64
	Code           string
	Name           string
	BorrowedBooks  int
	IsPenalized    bool
	PenaltyEndDate *time.Time
}

// Validate checks the member row invariants.
// IsPenalized implies a penalty end date; the borrowed counter is never negative.
func (r MemberRecord) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: non-positive id %d", ErrInvalidMemberRecord, r.ID)
	}
	if r.BorrowedBooks < 0 {
		return fmt.Errorf("%w: negative borrowed_books %d", ErrInvalidMemberRecord, r.BorrowedBooks)
	}
	if r.IsPenalized && r.PenaltyEndDate == nil {
		return fmt.Errorf("%w: penalized without penalty_end_date", ErrInvalidMemberRecord)
	}

	return nil
}

// ToDomain converts the row into its domain snapshot.
func (r MemberRecord) ToDomain() core.Member {
	return core.Member{
		ID:             r.ID,
		Code:           r.Code,
		Name:           r.Name,
		BorrowedBooks:  r.BorrowedBooks,
		IsPenalized:    r.IsPenalized,
		PenaltyEndDate: r.PenaltyEndDate,
	}
}

// BookRecord mirrors one row of the books table.
type BookRecord struct {
	ID     int64
	Code   string
	Title  string
	Author string
	Stock  int
}

// Validate checks the book row invariants, most importantly stock >= 0.
func (r BookRecord) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: non-positive id %d", ErrInvalidBookRecord, r.ID)
	}
	if r.Stock < 0 {
		return fmt.Errorf("%w: negative stock %d", ErrInvalidBookRecord, r.Stock)
	}

	return nil
}

// ToDomain converts the row into its domain snapshot.
func (r BookRecord) ToDomain() core.Book {
	return core.Book{
		ID:     r.ID,
		Code:   r.Code,
		Title:  r.Title,
		Author: r.Author,
		Stock:  r.Stock,
	}
}

// BorrowingRecord mirrors one row of the borrowed_books table.
type BorrowingRecord struct {
	ID         uuid.UUID
	MemberID   int64
	BookID     int64
	StartDate  time.Time
	EndDate    time.Time
	Returned   bool
	ReturnDate *time.Time
}

// Validate checks the borrowing row invariants: both references set,
// a closed record carries its return date and an open one does not.
func (r BorrowingRecord) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("%w: nil id", ErrInvalidBorrowingRecord)
	}
	if r.MemberID <= 0 || r.BookID <= 0 {
		return fmt.Errorf("%w: missing member or book reference", ErrInvalidBorrowingRecord)
	}
	if r.Returned && r.ReturnDate == nil {
		return fmt.Errorf("%w: returned without return_date", ErrInvalidBorrowingRecord)
	}
	if !r.Returned && r.ReturnDate != nil {
		return fmt.Errorf("%w: open record with return_date", ErrInvalidBorrowingRecord)
	}

	return nil
}

// ToDomain converts the row into its domain snapshot.
func (r BorrowingRecord) ToDomain() core.Borrowing {
	return core.Borrowing{
		ID:         r.ID,
		MemberID:   r.MemberID,
		BookID:     r.BookID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Returned:   r.Returned,
		ReturnDate: r.ReturnDate,
	}
}
