// Package httpapi is the thin HTTP adapter over the lending features.
//
// It owns nothing but transport concerns: routing, JSON bodies, the mapping
// from domain and store errors to response statuses, and request-scoped
// middleware (request IDs, access logging, panic recovery). All business
// behavior lives in the feature slices it delegates to.
package httpapi
