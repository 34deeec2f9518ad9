package core

// Book is the domain snapshot of a book title with its available copy count.
// Stock never goes below zero: it is decremented only when a borrow commits
// and incremented only when a return commits.
type Book struct {
	ID     BookIDInt64
	Code   string
	Title  string
	Author string
	Stock  int
}

// IsAvailable reports whether at least one copy can be borrowed.
func (b Book) IsAvailable() bool {
	return b.Stock > 0
}
