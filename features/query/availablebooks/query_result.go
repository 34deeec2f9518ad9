package availablebooks

import (
	"github.com/pustakalab/lending/core"
)

// BookInfo represents one available book title.
type BookInfo struct {
	ID     core.BookIDInt64
	Code   string
	Title  string
	Author string
	Stock  int
}

// AvailableBooks represents the query result containing all books not
// currently on an active loan.
type AvailableBooks struct {
	Books []BookInfo
	Count int
}
