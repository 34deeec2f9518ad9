package core

import (
	"time"
)

// Member is the domain snapshot of a library member as the transactions see it.
// BorrowedBooks is a derived counter and must equal the number of active
// borrowing records for this member; it is maintained by the transactions,
// never set directly.
type Member struct {
	ID             MemberIDInt64
	Code           string
	Name           string
	BorrowedBooks  int
	IsPenalized    bool
	PenaltyEndDate *DayDate // set iff a penalty is or was active
}

// IsEffectivelyPenalized reports whether the member is blocked from borrowing
// on the given day. The IsPenalized flag alone is not enough: a penalty whose
// end date has passed no longer blocks borrowing, even though the flag is
// never auto-cleared.
func (m Member) IsEffectivelyPenalized(today time.Time) bool {
	if !m.IsPenalized || m.PenaltyEndDate == nil {
		return false
	}

	return ToDay(today).Before(ToDay(*m.PenaltyEndDate))
}
