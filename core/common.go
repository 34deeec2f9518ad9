package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// MemberIDInt64 represents a member identifier.
type MemberIDInt64 = int64

// BookIDInt64 represents a book identifier.
type BookIDInt64 = int64

// DayDate represents a calendar date, carried as a time.Time at UTC midnight.
type DayDate = time.Time

// ToDay normalizes a time to day granularity (UTC midnight).
// All borrowing and penalty arithmetic happens on whole days.
func ToDay(t time.Time) DayDate {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference to minus from.
// A negative result means to lies before from.
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDay(to).Sub(ToDay(from)) / (24 * time.Hour))
}
