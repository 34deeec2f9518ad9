package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pustakalab/lending/features/command/borrowbooks"
	"github.com/pustakalab/lending/features/command/returnbook"
	"github.com/pustakalab/lending/features/query/availablebooks"
	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/lendingstore/memoryengine"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// borrowedFixture seeds one member and one book and borrows the book with the
// given loan period. It returns the store plus the member and book ids.
func borrowedFixture(t *testing.T, startDate, endDate time.Time) (*memoryengine.Store, int64, int64) {
	t.Helper()

	store := memoryengine.NewStore()
	memberID := store.AddMember(lendingstore.MemberRecord{Code: "M001", Name: "Angga"})
	bookID := store.AddBook(lendingstore.BookRecord{Code: "JK-45", Title: "Twilight", Author: "J.K Rowling", Stock: 1})

	command, err := borrowbooks.BuildCommand(memberID, []borrowbooks.BorrowingRequest{
		{BookTitle: "Twilight", StartDate: startDate, EndDate: endDate},
	}, startDate)
	require.NoError(t, err)

	_, _, err = borrowbooks.NewCommandHandler(store).Handle(context.Background(), command)
	require.NoError(t, err)

	return store, memberID, bookID
}

func Test_Handle_OnTimeReturn_AppliesNoPenalty(t *testing.T) {
	// arrange: due 2024-06-15, returned on the due date
	store, memberID, bookID := borrowedFixture(t, day(2024, time.June, 1), day(2024, time.June, 15))

	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(memberID, bookID, day(2024, time.June, 15))

	// act
	result, handlerResult, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.PenaltyApplied)
	assert.Equal(t, 1, handlerResult.RetryAttempts)

	member, _ := store.MemberByID(memberID)
	assert.False(t, member.IsPenalized)
	assert.Nil(t, member.PenaltyEndDate)
	assert.Equal(t, 0, member.BorrowedBooks)

	book, _ := store.BookByID(bookID)
	assert.Equal(t, 1, book.Stock)
}

func Test_Handle_LateReturn_AppliesPenalty(t *testing.T) {
	// arrange: due 2024-06-15, returned 2024-06-20
	store, memberID, bookID := borrowedFixture(t, day(2024, time.June, 1), day(2024, time.June, 15))

	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(memberID, bookID, day(2024, time.June, 20))

	// act
	result, _, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.PenaltyApplied)

	member, _ := store.MemberByID(memberID)
	assert.True(t, member.IsPenalized)
	require.NotNil(t, member.PenaltyEndDate)
	assert.Equal(t, day(2024, time.June, 23), *member.PenaltyEndDate)
}

func Test_Handle_LateReturn_StacksOnCurrentPenaltyWindow(t *testing.T) {
	// arrange: member already penalized until 2024-06-25
	store, memberID, bookID := borrowedFixture(t, day(2024, time.June, 1), day(2024, time.June, 15))

	currentEnd := day(2024, time.June, 25)
	require.NoError(t, store.WithinTransaction(context.Background(),
		func(ctx context.Context, tx lendingstore.Tx) error {
			return tx.SetMemberPenalty(ctx, memberID, currentEnd)
		}))

	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(memberID, bookID, day(2024, time.June, 20))

	// act
	result, _, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.PenaltyApplied)

	member, _ := store.MemberByID(memberID)
	require.NotNil(t, member.PenaltyEndDate)
	assert.Equal(t, day(2024, time.June, 28), *member.PenaltyEndDate)
}

func Test_Handle_Fails_WhenNoActiveBorrowing(t *testing.T) {
	// arrange: nothing borrowed
	store := memoryengine.NewStore()
	memberID := store.AddMember(lendingstore.MemberRecord{Code: "M001", Name: "Angga"})
	bookID := store.AddBook(lendingstore.BookRecord{Code: "JK-45", Title: "Twilight", Author: "J.K Rowling", Stock: 1})

	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(memberID, bookID, day(2024, time.June, 15))

	// act
	_, _, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrNoActiveBorrowing)
}

func Test_Handle_SecondReturn_FailsAndDoesNotDoubleIncrementStock(t *testing.T) {
	// arrange
	store, memberID, bookID := borrowedFixture(t, day(2024, time.June, 1), day(2024, time.June, 15))

	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(memberID, bookID, day(2024, time.June, 10))

	_, _, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act: the same return again
	_, _, err = handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrNoActiveBorrowing)

	book, _ := store.BookByID(bookID)
	assert.Equal(t, 1, book.Stock)

	member, _ := store.MemberByID(memberID)
	assert.Equal(t, 0, member.BorrowedBooks)
}

func Test_Handle_ReturnedBookBecomesAvailableAgain(t *testing.T) {
	// arrange
	store, memberID, bookID := borrowedFixture(t, day(2024, time.June, 1), day(2024, time.June, 15))

	books, err := availablebooks.NewQueryHandler(store).Handle(context.Background(), availablebooks.BuildQuery())
	require.NoError(t, err)
	require.Empty(t, books.Books)

	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(memberID, bookID, day(2024, time.June, 10))

	// act
	_, _, err = handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)

	books, err = availablebooks.NewQueryHandler(store).Handle(context.Background(), availablebooks.BuildQuery())
	require.NoError(t, err)
	require.Len(t, books.Books, 1)
	assert.Equal(t, "Twilight", books.Books[0].Title)
}
