package registeredmembers

import (
	"github.com/pustakalab/lending/core"
)

// MemberInfo represents one registered member.
type MemberInfo struct {
	ID             core.MemberIDInt64
	Code           string
	Name           string
	BorrowedBooks  int
	IsPenalized    bool
	PenaltyEndDate *core.DayDate
}

// RegisteredMembers represents the query result containing all registered members.
type RegisteredMembers struct {
	Members []MemberInfo
	Count   int
}
