package borrowbooks

import (
	"github.com/pustakalab/lending/core"
)

// Decide implements the business logic to determine whether a member may
// borrow the requested titles. This is a pure function with no side effects -
// it takes the member snapshot, the count of active borrowings, and the
// command, and returns nil when the borrow is admissible.
//
// Business Rules:
//
//	GIVEN: A member with an optional penalty window and a number of active borrowings
//	WHEN: BorrowBooks command is received
//	THEN: the borrow proceeds
//	ERROR: "Member is currently penalized" if today lies before the penalty end date
//	ERROR: "Borrowing limit exceeded" if active plus requested borrowings exceed the limit
//
// Per-title availability is not decided here: it depends on live stock and is
// checked inside the transaction, where the rows are locked.
func Decide(member core.Member, activeBorrowings int, command Command) error {
	if member.IsEffectivelyPenalized(command.Today) {
		return core.ErrMemberPenalized
	}

	if activeBorrowings+len(command.Borrowings) > core.MaxActiveBorrowings {
		return core.ErrBorrowingLimitExceeded
	}

	return nil
}
