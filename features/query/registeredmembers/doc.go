// Package registeredmembers implements the Registered Members query use case.
//
// This feature provides a pure read operation that returns all registered
// members with their borrowed counters and penalty state.
package registeredmembers
