package registeredmembers

import (
	"context"

	"github.com/pustakalab/lending/lendingstore"
)

// QueryHandler serves the Registered Members query from the lending store.
type QueryHandler struct {
	store lendingstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store lendingstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query and returns all members, ordered by id.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (RegisteredMembers, error) {
	records, err := h.store.ListMembers(ctx)
	if err != nil {
		return RegisteredMembers{}, err
	}

	members := make([]MemberInfo, 0, len(records))
	for _, record := range records {
		members = append(members, MemberInfo{
			ID:             record.ID,
			Code:           record.Code,
			Name:           record.Name,
			BorrowedBooks:  record.BorrowedBooks,
			IsPenalized:    record.IsPenalized,
			PenaltyEndDate: record.PenaltyEndDate,
		})
	}

	return RegisteredMembers{
		Members: members,
		Count:   len(members),
	}, nil
}
