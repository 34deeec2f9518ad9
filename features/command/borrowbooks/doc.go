// Package borrowbooks implements the Borrow Books use case.
//
// A member borrows one or more titles in a single request. The whole request
// is processed inside one store transaction: the member is loaded and checked
// against the penalty window and the borrowing limit, then every requested
// title is resolved to an available copy, recorded, and its stock decremented.
// Any failure rolls the whole request back, so a two-title request never
// borrows just one of them.
//
// The admissibility rules live in the pure Decide function; the CommandHandler
// owns the unit of work and retries the transaction on concurrency conflicts.
package borrowbooks
