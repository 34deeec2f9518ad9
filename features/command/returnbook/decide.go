package returnbook

import (
	"github.com/pustakalab/lending/core"
)

// Decision is the outcome of the pure return policy: whether the return is
// late and, if so, the penalty end date to persist.
type Decision struct {
	IsLate         bool
	PenaltyEndDate *core.DayDate
}

// Decide implements the business logic for closing a borrowing. This is a
// pure function with no side effects - it takes the borrowing being closed,
// the member snapshot, and the command, and returns the penalty decision.
//
// Business Rules:
//
//	GIVEN: An active borrowing with a due date, and the member's current penalty window
//	WHEN: ReturnBook command is received
//	THEN: the record is closed; returning on or before the due date carries no penalty
//	LATE: return date strictly after the due date at day granularity extends the
//	      penalty window to max(current end, return date) plus three days
func Decide(borrowing core.Borrowing, member core.Member, command Command) Decision {
	isLate, penaltyEndDate := core.ComputePenalty(borrowing.EndDate, command.ReturnDate, member.PenaltyEndDate)

	return Decision{
		IsLate:         isLate,
		PenaltyEndDate: penaltyEndDate,
	}
}
