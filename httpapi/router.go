package httpapi

import (
	"net/http"
)

// NewRouter builds the HTTP handler for the API, with request-ID, access-log
// and panic-recovery middleware applied.
func NewRouter(api *API) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /books", api.handleListBooks)
	mux.HandleFunc("GET /members", api.handleListMembers)
	mux.HandleFunc("POST /members/borrow", api.handleBorrow)
	mux.HandleFunc("POST /members/return", api.handleReturn)
	mux.HandleFunc("GET /healthz", api.handleHealthz)

	return Chain(mux, RequestID, AccessLog(api.logger), Recovery(api.logger))
}
