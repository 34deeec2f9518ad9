package availablebooks

import (
	"context"

	"github.com/pustakalab/lending/lendingstore"
)

// QueryHandler serves the Available Books query from the lending store.
type QueryHandler struct {
	store lendingstore.Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store lendingstore.Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query and returns the books available for borrowing,
// ordered by id.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (AvailableBooks, error) {
	records, err := h.store.ListAvailableBooks(ctx)
	if err != nil {
		return AvailableBooks{}, err
	}

	books := make([]BookInfo, 0, len(records))
	for _, record := range records {
		books = append(books, BookInfo{
			ID:     record.ID,
			Code:   record.Code,
			Title:  record.Title,
			Author: record.Author,
			Stock:  record.Stock,
		})
	}

	return AvailableBooks{
		Books: books,
		Count: len(books),
	}, nil
}
