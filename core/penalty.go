package core

import (
	"time"
)

// PenaltyExtensionDays is how far a late return pushes the penalty window out.
const PenaltyExtensionDays = 3

// ComputePenalty implements the late-return penalty policy.
//
// A return is late when the return date lies strictly after the due date at
// day granularity; returning on the due date itself is on time. For a late
// return the new penalty end date is max(currentPenaltyEndDate, returnDate)
// plus three days; without a current penalty the base is the return date.
//
// This is a pure function. When the return is on time it is a no-op: the
// second result is nil and any existing penalty is left untouched by the
// caller.
func ComputePenalty(dueDate time.Time, returnDate time.Time, currentPenaltyEndDate *time.Time) (isLate bool, newPenaltyEndDate *DayDate) {
	if DaysBetween(dueDate, returnDate) <= 0 {
		return false, nil
	}

	base := ToDay(returnDate)
	if currentPenaltyEndDate != nil && ToDay(*currentPenaltyEndDate).After(base) {
		base = ToDay(*currentPenaltyEndDate)
	}

	end := base.AddDate(0, 0, PenaltyExtensionDays)

	return true, &end
}
