package postgresengine_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // sqlite driver for the engine tests
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/lendingstore/postgresengine"
)

// newSQLiteStore opens a file-backed SQLite database in a test-scoped
// directory and bootstraps the schema. A single connection keeps all
// statements on one SQLite handle.
func newSQLiteStore(t *testing.T) (postgresengine.Store, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "lending.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := postgresengine.NewStoreFromSQLDB(db, postgresengine.WithDialect(postgresengine.DialectSQLite))
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(context.Background()))

	return store, db
}

func seedMemberRow(t *testing.T, db *sql.DB, code, name string) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO members (code, name) VALUES (?, ?)", code, name)
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)

	return id
}

func seedBookRow(t *testing.T, db *sql.DB, code, title, author string, stock int) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO books (code, title, author, stock) VALUES (?, ?, ?, ?)", code, title, author, stock)
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)

	return id
}

func Test_EnsureSchema_IsIdempotent(t *testing.T) {
	// arrange
	store, _ := newSQLiteStore(t)

	// act: the helper already ran EnsureSchema once
	err := store.EnsureSchema(context.Background())

	// assert
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
}

func Test_FindMemberByID_ReturnsSeededRow(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")

	// act
	var member lendingstore.MemberRecord
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		var findErr error
		member, findErr = tx.FindMemberByID(ctx, memberID)
		return findErr
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, memberID, member.ID)
	assert.Equal(t, "M001", member.Code)
	assert.Equal(t, "Angga", member.Name)
	assert.Equal(t, 0, member.BorrowedBooks)
	assert.False(t, member.IsPenalized)
	assert.Nil(t, member.PenaltyEndDate)
}

func Test_FindMemberByID_Fails_WhenMemberUnknown(t *testing.T) {
	// arrange
	store, _ := newSQLiteStore(t)

	// act
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		_, findErr := tx.FindMemberByID(ctx, 42)
		return findErr
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrMemberNotFound)
}

func Test_BorrowFlow_PersistsRecordAndCounters(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")
	bookID := seedBookRow(t, db, "JK-45", "Harry Potter", "J.K Rowling", 1)
	seedBookRow(t, db, "TW-11", "Twilight", "Stephenie Meyer", 1)

	recordID := uuid.New()
	startDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)

	// act
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		if _, findErr := tx.FindMemberByID(ctx, memberID); findErr != nil {
			return findErr
		}

		count, countErr := tx.CountActiveBorrowings(ctx, memberID)
		if countErr != nil {
			return countErr
		}
		require.Equal(t, 0, count)

		book, bookErr := tx.FindAvailableBookByTitle(ctx, "Harry Potter")
		if bookErr != nil {
			return bookErr
		}
		require.Equal(t, bookID, book.ID)
		require.Equal(t, 1, book.Stock)

		if insertErr := tx.InsertBorrowingRecord(ctx, lendingstore.BorrowingRecord{
			ID:        recordID,
			MemberID:  memberID,
			BookID:    bookID,
			StartDate: startDate,
			EndDate:   endDate,
		}); insertErr != nil {
			return insertErr
		}

		if stockErr := tx.UpdateBookStock(ctx, bookID, -1); stockErr != nil {
			return stockErr
		}

		return tx.UpdateMemberBorrowedCount(ctx, memberID, +1)
	})
	require.NoError(t, err)

	// assert: the committed state is visible outside the transaction
	books, err := store.ListAvailableBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Twilight", books[0].Title)

	members, err := store.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, 1, members[0].BorrowedBooks)

	err = store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		record, findErr := tx.FindActiveBorrowing(ctx, memberID, bookID)
		if findErr != nil {
			return findErr
		}

		assert.Equal(t, recordID, record.ID)
		assert.True(t, record.StartDate.Equal(startDate))
		assert.True(t, record.EndDate.Equal(endDate))
		assert.False(t, record.Returned)
		assert.Nil(t, record.ReturnDate)

		count, countErr := tx.CountActiveBorrowings(ctx, memberID)
		if countErr != nil {
			return countErr
		}
		assert.Equal(t, 1, count)

		return nil
	})
	require.NoError(t, err)
}

func Test_WithinTransaction_RollsBack_OnError(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")

	// act: the counter update succeeds, then the callback fails
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		if countErr := tx.UpdateMemberBorrowedCount(ctx, memberID, +1); countErr != nil {
			return countErr
		}

		return lendingstore.ErrMemberNotFound
	})

	// assert
	require.ErrorIs(t, err, lendingstore.ErrMemberNotFound)

	members, listErr := store.ListMembers(context.Background())
	require.NoError(t, listErr)
	require.Len(t, members, 1)
	assert.Equal(t, 0, members[0].BorrowedBooks)
}

func Test_FindAvailableBookByTitle_Fails_WhenOutOfStock(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	seedBookRow(t, db, "DN-01", "Dune", "Frank Herbert", 0)

	// act
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		_, findErr := tx.FindAvailableBookByTitle(ctx, "Dune")
		return findErr
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrBookNotAvailable)
}

func Test_UpdateBookStock_Fails_WhenStockWouldGoNegative(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	bookID := seedBookRow(t, db, "DN-01", "Dune", "Frank Herbert", 0)

	// act: the guard keeps stock at zero, so no row is affected
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.UpdateBookStock(ctx, bookID, -1)
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrConcurrencyConflict)
}

func Test_UpdateMemberBorrowedCount_Fails_WhenCounterWouldGoNegative(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")

	// act
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.UpdateMemberBorrowedCount(ctx, memberID, -1)
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrConcurrencyConflict)
}

func Test_CloseBorrowing_Twice_SecondCloseIsConcurrencyConflict(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")
	bookID := seedBookRow(t, db, "JK-45", "Harry Potter", "J.K Rowling", 1)

	recordID := uuid.New()
	startDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.InsertBorrowingRecord(ctx, lendingstore.BorrowingRecord{
			ID:        recordID,
			MemberID:  memberID,
			BookID:    bookID,
			StartDate: startDate,
			EndDate:   startDate.AddDate(0, 0, 14),
		})
	})
	require.NoError(t, err)

	// act
	err = store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.CloseBorrowing(ctx, recordID, returnDate)
	})
	require.NoError(t, err)

	err = store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.CloseBorrowing(ctx, recordID, returnDate)
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrConcurrencyConflict)
}

func Test_CloseBorrowing_MakesBookAvailableAgain(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")
	bookID := seedBookRow(t, db, "JK-45", "Harry Potter", "J.K Rowling", 1)

	recordID := uuid.New()
	startDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		if insertErr := tx.InsertBorrowingRecord(ctx, lendingstore.BorrowingRecord{
			ID:        recordID,
			MemberID:  memberID,
			BookID:    bookID,
			StartDate: startDate,
			EndDate:   startDate.AddDate(0, 0, 14),
		}); insertErr != nil {
			return insertErr
		}

		return tx.UpdateBookStock(ctx, bookID, -1)
	})
	require.NoError(t, err)

	books, err := store.ListAvailableBooks(context.Background())
	require.NoError(t, err)
	require.Empty(t, books)

	// act
	err = store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		if closeErr := tx.CloseBorrowing(ctx, recordID, returnDate); closeErr != nil {
			return closeErr
		}

		return tx.UpdateBookStock(ctx, bookID, +1)
	})
	require.NoError(t, err)

	// assert
	books, err = store.ListAvailableBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Harry Potter", books[0].Title)
	assert.Equal(t, 1, books[0].Stock)

	err = store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		_, findErr := tx.FindActiveBorrowing(ctx, memberID, bookID)
		return findErr
	})
	assert.ErrorIs(t, err, lendingstore.ErrNoActiveBorrowing)
}

func Test_SetMemberPenalty_PersistsPenaltyFields(t *testing.T) {
	// arrange
	store, db := newSQLiteStore(t)
	memberID := seedMemberRow(t, db, "M001", "Angga")
	penaltyEnd := time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC)

	// act
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.SetMemberPenalty(ctx, memberID, penaltyEnd)
	})

	// assert
	require.NoError(t, err)

	members, err := store.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].IsPenalized)
	require.NotNil(t, members[0].PenaltyEndDate)
	assert.True(t, members[0].PenaltyEndDate.Equal(penaltyEnd))
}

func Test_SetMemberPenalty_Fails_WhenMemberUnknown(t *testing.T) {
	// arrange
	store, _ := newSQLiteStore(t)

	// act
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx lendingstore.Tx) error {
		return tx.SetMemberPenalty(ctx, 42, time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC))
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrMemberNotFound)
}
