// Package availablebooks implements the Available Books query use case.
//
// This feature provides a pure read operation that returns the books not
// currently out on an active loan. The active-loan exclusion happens in the
// store (anti-join on open borrowing records), so the handler only shapes
// the result.
package availablebooks
