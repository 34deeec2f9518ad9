package httpapi

import (
	"errors"
	"net/http"

	"github.com/pustakalab/lending/core"
	"github.com/pustakalab/lending/features/command/borrowbooks"
	"github.com/pustakalab/lending/lendingstore"
)

// msgInternalServerError is the only message ever exposed for unexpected
// failures; details stay in the logs.
const msgInternalServerError = "internal server error"

// MapError converts a feature error to an HTTP status and response message.
// This centralizes error handling logic for all handlers, ensuring consistent
// statuses and messages across the API. Business rule errors carry their
// user-facing message; everything unexpected collapses to a generic 500.
func MapError(err error) (int, string) {
	switch {
	// ===== Not Found → 404 =====
	case errors.Is(err, lendingstore.ErrMemberNotFound):
		return http.StatusNotFound, core.FailureReasonMemberNotFound
	case errors.Is(err, lendingstore.ErrNoActiveBorrowing):
		return http.StatusNotFound, core.FailureReasonNoActiveBorrowing

	// ===== Business rules → 400 =====
	case errors.Is(err, core.ErrMemberPenalized),
		errors.Is(err, core.ErrBorrowingLimitExceeded),
		errors.Is(err, core.ErrNoBorrowingsProvided),
		errors.Is(err, core.ErrBookOutOfStock),
		errors.Is(err, borrowbooks.ErrInvalidBorrowing):
		return http.StatusBadRequest, err.Error()

	// ===== Default → 500 =====
	default:
		return http.StatusInternalServerError, msgInternalServerError
	}
}
