package availablebooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pustakalab/lending/features/command/borrowbooks"
	"github.com/pustakalab/lending/features/query/availablebooks"
	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/lendingstore/memoryengine"
)

func Test_Handle_ListsAllBooks_WhenNothingIsBorrowed(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	store.AddBook(lendingstore.BookRecord{Code: "JK-45", Title: "Harry Potter", Author: "J.K Rowling", Stock: 1})
	store.AddBook(lendingstore.BookRecord{Code: "SHR-1", Title: "A Study in Scarlet", Author: "Arthur Conan Doyle", Stock: 1})

	handler := availablebooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), availablebooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "Harry Potter", result.Books[0].Title)
	assert.Equal(t, "A Study in Scarlet", result.Books[1].Title)
}

func Test_Handle_ExcludesBooksOnActiveLoan(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	memberID := store.AddMember(lendingstore.MemberRecord{Code: "M001", Name: "Angga"})
	store.AddBook(lendingstore.BookRecord{Code: "JK-45", Title: "Harry Potter", Author: "J.K Rowling", Stock: 1})
	store.AddBook(lendingstore.BookRecord{Code: "SHR-1", Title: "A Study in Scarlet", Author: "Arthur Conan Doyle", Stock: 1})

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	command, err := borrowbooks.BuildCommand(memberID, []borrowbooks.BorrowingRequest{
		{BookTitle: "Harry Potter", StartDate: now, EndDate: now.AddDate(0, 0, 7)},
	}, now)
	require.NoError(t, err)

	_, _, err = borrowbooks.NewCommandHandler(store).Handle(context.Background(), command)
	require.NoError(t, err)

	handler := availablebooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), availablebooks.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "A Study in Scarlet", result.Books[0].Title)
}

func Test_Handle_ReturnsEmptyList_OnEmptyStore(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	handler := availablebooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), availablebooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Books)
}
