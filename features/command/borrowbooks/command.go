package borrowbooks

import (
	"errors"
	"time"

	"github.com/pustakalab/lending/core"
)

const (
	commandType = "BorrowBooks"
)

// ErrInvalidBorrowing is returned when a borrowing entry is missing its title
// or its dates, or its due date lies before its start date.
var ErrInvalidBorrowing = errors.New("borrowing must have a book title, a start date, and an end date on or after the start date")

// BorrowingRequest is one requested title with its loan period.
type BorrowingRequest struct {
	BookTitle string
	StartDate core.DayDate
	EndDate   core.DayDate
}

// Command represents the intent of a member to borrow one or more titles.
// Today anchors the penalty window check so the decision is reproducible.
type Command struct {
	MemberID   core.MemberIDInt64
	Borrowings []BorrowingRequest
	Today      core.DayDate
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// It validates the request shape: the borrowings list must not be empty and
// every entry needs a title and a well-ordered loan period. Dates are
// normalized to day granularity.
func BuildCommand(memberID core.MemberIDInt64, borrowings []BorrowingRequest, now time.Time) (Command, error) {
	if len(borrowings) == 0 {
		return Command{}, core.ErrNoBorrowingsProvided
	}

	normalized := make([]BorrowingRequest, 0, len(borrowings))
	for _, b := range borrowings {
		if b.BookTitle == "" {
			return Command{}, ErrInvalidBorrowing
		}

		// Absent dates decode to the zero time; reject them before they
		// masquerade as a valid single-day loan period.
		if b.StartDate.IsZero() || b.EndDate.IsZero() {
			return Command{}, ErrInvalidBorrowing
		}

		start := core.ToDay(b.StartDate)
		end := core.ToDay(b.EndDate)
		if end.Before(start) {
			return Command{}, ErrInvalidBorrowing
		}

		normalized = append(normalized, BorrowingRequest{
			BookTitle: b.BookTitle,
			StartDate: start,
			EndDate:   end,
		})
	}

	return Command{
		MemberID:   memberID,
		Borrowings: normalized,
		Today:      core.ToDay(now),
	}, nil
}
