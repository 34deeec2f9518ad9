package core

import (
	"github.com/google/uuid"
)

// Borrowing is the domain view of one borrowing record. A record is active
// while Returned is false and ReturnDate is unset; the only transition is to
// the closed state via the return transaction, there is no cancellation path.
type Borrowing struct {
	ID         uuid.UUID
	MemberID   MemberIDInt64
	BookID     BookIDInt64
	StartDate  DayDate
	EndDate    DayDate // due date
	Returned   bool
	ReturnDate *DayDate // set on return
}

// IsActive reports whether the record still represents an open loan.
func (b Borrowing) IsActive() bool {
	return !b.Returned && b.ReturnDate == nil
}
