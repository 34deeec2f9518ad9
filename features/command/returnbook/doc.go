// Package returnbook implements the Return Book use case.
//
// A member returns a borrowed copy. Inside one store transaction the active
// borrowing record is located and closed, the book's stock and the member's
// borrowed counter are restored, and - when the return is late - the member's
// penalty window is extended per the pure penalty policy in core.
//
// A record can only be closed once: the guarded update requires the record to
// still be open, so a racing double return surfaces as not-found rather than
// double-incrementing stock.
package returnbook
