package returnbook

import (
	"time"

	"github.com/pustakalab/lending/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a member to return a borrowed copy.
type Command struct {
	MemberID   core.MemberIDInt64
	BookID     core.BookIDInt64
	ReturnDate core.DayDate
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// The return date is normalized to day granularity.
func BuildCommand(memberID core.MemberIDInt64, bookID core.BookIDInt64, returnDate time.Time) Command {
	return Command{
		MemberID:   memberID,
		BookID:     bookID,
		ReturnDate: core.ToDay(returnDate),
	}
}
