package postgresengine

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/lendingstore/postgresengine/internal/adapters"
)

const (
	defaultMembersTableName       = "members"
	defaultBooksTableName         = "books"
	defaultBorrowedBooksTableName = "borrowed_books"

	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgInvalidRow          = "row failed store-boundary validation"
	logMsgBeginTxFailed       = "failed to begin database transaction"
	logMsgCommitTxFailed      = "failed to commit database transaction"
	logMsgRollbackTxFailed    = "failed to roll back database transaction"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "lendingstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrOperation          = "operation"
	logAttrDurationMS         = "duration_ms"
	logAttrRowsAffected       = "rows_affected"
	logAttrMemberID           = "member_id"
	logAttrBookID             = "book_id"

	colID             = "id"
	colCode           = "code"
	colName           = "name"
	colTitle          = "title"
	colAuthor         = "author"
	colStock          = "stock"
	colBorrowedBooks  = "borrowed_books"
	colIsPenalized    = "is_penalized"
	colPenaltyEndDate = "penalty_end_date"
	colMemberID       = "member_id"
	colBookID         = "book_id"
	colStartDate      = "start_date"
	colEndDate        = "end_date"
	colIsReturned     = "is_returned"
	colReturnDate     = "return_date"

	// DialectPostgres selects the PostgreSQL goqu dialect (the default).
	DialectPostgres = "postgres"

	// DialectSQLite selects the SQLite goqu dialect for the sql.DB constructor.
	DialectSQLite = "sqlite3"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// TableNames holds the three table names the engine operates on.
type TableNames struct {
	Members       string
	Books         string
	BorrowedBooks string
}

// Store implements lendingstore.Store on a relational database.
type Store struct {
	db         adapters.DBAdapter
	dialect    string
	rowLocking bool
	tables     TableNames
	logger     lendingstore.Logger
	metrics    lendingstore.MetricsCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), DialectPostgres, options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
// Combine with WithDialect(DialectSQLite) when the handle is a SQLite database.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), DialectPostgres, options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), DialectPostgres, options...)
}

func newStore(db adapters.DBAdapter, dialect string, options ...Option) (Store, error) {
	s := Store{
		db:      db,
		dialect: dialect,
		tables: TableNames{
			Members:       defaultMembersTableName,
			Books:         defaultBooksTableName,
			BorrowedBooks: defaultBorrowedBooksTableName,
		},
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	// SQLite serializes writers on its own; FOR UPDATE is not supported there.
	s.rowLocking = s.dialect == DialectPostgres

	return s, nil
}

// runner is the common querying surface of a connection and a transaction.
type runner interface {
	Query(ctx context.Context, query string, args ...any) (adapters.DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (adapters.DBResult, error)
}

// txView is the store as seen inside one transaction.
type txView struct {
	s   Store
	run runner
}

var _ lendingstore.Tx = txView{}

// WithinTransaction runs fn inside one database transaction, rolling back
// when fn returns an error and committing otherwise.
func (s Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx lendingstore.Tx) error) error {
	dbTx, beginErr := s.db.Begin(ctx)
	if beginErr != nil {
		s.logError(logMsgBeginTxFailed, beginErr)
		return fmt.Errorf("%s: %w", logMsgBeginTxFailed, beginErr)
	}

	if fnErr := fn(ctx, txView{s: s, run: dbTx}); fnErr != nil {
		if rbErr := dbTx.Rollback(ctx); rbErr != nil {
			s.logWarn(logMsgRollbackTxFailed, rbErr)
		}

		return fnErr
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		s.logError(logMsgCommitTxFailed, commitErr)
		return fmt.Errorf("%s: %w", logMsgCommitTxFailed, commitErr)
	}

	return nil
}

// Ping verifies the database is reachable.
func (s Store) Ping(ctx context.Context) error {
	rows, err := s.db.Query(ctx, "SELECT 1")
	if err != nil {
		return err
	}

	return rows.Close()
}

func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

// ListAvailableBooks returns the books that are not currently on an active
// loan, using the same left-join shape as the listing endpoint contract.
func (s Store) ListAvailableBooks(ctx context.Context) ([]lendingstore.BookRecord, error) {
	stmt := s.builder().
		From(goqu.T(s.tables.Books).As("b")).
		LeftJoin(
			goqu.T(s.tables.BorrowedBooks).As("bb"),
			goqu.On(
				goqu.I("b."+colID).Eq(goqu.I("bb."+colBookID)),
				goqu.I("bb."+colIsReturned).Eq(false),
			),
		).
		Select(
			goqu.I("b."+colID), goqu.I("b."+colCode), goqu.I("b."+colTitle),
			goqu.I("b."+colAuthor), goqu.I("b."+colStock),
		).
		Where(goqu.I("bb." + colBookID).IsNull()).
		Order(goqu.I("b." + colID).Asc())

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr)
		return nil, toSQLErr
	}

	rows, duration, queryErr := s.executeQuery(ctx, s.db, "list_available_books", sqlQuery, args)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	books := make([]lendingstore.BookRecord, 0)

	for rows.Next() {
		record, scanErr := scanBookRow(rows)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, scanErr
		}

		books = append(books, record)
	}

	s.logOperation("books listed", "book_count", len(books), logAttrDurationMS, durationToMilliseconds(duration))

	return books, nil
}

// ListMembers returns all member rows.
func (s Store) ListMembers(ctx context.Context) ([]lendingstore.MemberRecord, error) {
	stmt := s.builder().
		From(s.tables.Members).
		Select(colID, colCode, colName, colBorrowedBooks, colIsPenalized, colPenaltyEndDate).
		Order(goqu.I(colID).Asc())

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr)
		return nil, toSQLErr
	}

	rows, duration, queryErr := s.executeQuery(ctx, s.db, "list_members", sqlQuery, args)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	members := make([]lendingstore.MemberRecord, 0)

	for rows.Next() {
		record, scanErr := scanMemberRow(rows)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, scanErr
		}

		members = append(members, record)
	}

	s.logOperation("members listed", "member_count", len(members), logAttrDurationMS, durationToMilliseconds(duration))

	return members, nil
}

// FindMemberByID loads one member row, locking it for the rest of the transaction.
func (t txView) FindMemberByID(ctx context.Context, memberID int64) (lendingstore.MemberRecord, error) {
	stmt := t.s.builder().
		From(t.s.tables.Members).
		Select(colID, colCode, colName, colBorrowedBooks, colIsPenalized, colPenaltyEndDate).
		Where(goqu.Ex{colID: memberID})

	stmt = t.s.withRowLock(stmt)

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return lendingstore.MemberRecord{}, toSQLErr
	}

	rows, _, queryErr := t.s.executeQuery(ctx, t.run, "find_member_by_id", sqlQuery, args)
	if queryErr != nil {
		return lendingstore.MemberRecord{}, queryErr
	}
	defer t.s.closeRows(rows)

	if !rows.Next() {
		return lendingstore.MemberRecord{}, lendingstore.ErrMemberNotFound
	}

	record, scanErr := scanMemberRow(rows)
	if scanErr != nil {
		t.s.logError(logMsgScanRowFailed, scanErr)
		return lendingstore.MemberRecord{}, scanErr
	}

	return record, nil
}

// CountActiveBorrowings counts the open borrowing records of one member.
func (t txView) CountActiveBorrowings(ctx context.Context, memberID int64) (int, error) {
	stmt := t.s.builder().
		From(t.s.tables.BorrowedBooks).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{colMemberID: memberID, colIsReturned: false})

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, toSQLErr
	}

	rows, _, queryErr := t.s.executeQuery(ctx, t.run, "count_active_borrowings", sqlQuery, args)
	if queryErr != nil {
		return 0, queryErr
	}
	defer t.s.closeRows(rows)

	var count int
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			t.s.logError(logMsgScanRowFailed, scanErr)
			return 0, scanErr
		}
	}

	return count, nil
}

// FindAvailableBookByTitle loads one book row with stock left matching the
// exact title, locking it for the rest of the transaction.
func (t txView) FindAvailableBookByTitle(ctx context.Context, title string) (lendingstore.BookRecord, error) {
	stmt := t.s.builder().
		From(t.s.tables.Books).
		Select(colID, colCode, colTitle, colAuthor, colStock).
		Where(goqu.Ex{colTitle: title}, goqu.C(colStock).Gt(0)).
		Order(goqu.I(colID).Asc()).
		Limit(1)

	stmt = t.s.withRowLock(stmt)

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return lendingstore.BookRecord{}, toSQLErr
	}

	rows, _, queryErr := t.s.executeQuery(ctx, t.run, "find_available_book_by_title", sqlQuery, args)
	if queryErr != nil {
		return lendingstore.BookRecord{}, queryErr
	}
	defer t.s.closeRows(rows)

	if !rows.Next() {
		return lendingstore.BookRecord{}, lendingstore.ErrBookNotAvailable
	}

	record, scanErr := scanBookRow(rows)
	if scanErr != nil {
		t.s.logError(logMsgScanRowFailed, scanErr)
		return lendingstore.BookRecord{}, scanErr
	}

	return record, nil
}

// InsertBorrowingRecord appends one open borrowing record.
func (t txView) InsertBorrowingRecord(ctx context.Context, record lendingstore.BorrowingRecord) error {
	if validateErr := record.Validate(); validateErr != nil {
		return validateErr
	}

	stmt := t.s.builder().
		Insert(t.s.tables.BorrowedBooks).
		Cols(colID, colMemberID, colBookID, colStartDate, colEndDate, colIsReturned).
		Vals(goqu.Vals{record.ID.String(), record.MemberID, record.BookID, record.StartDate, record.EndDate, false})

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return toSQLErr
	}

	_, execErr := t.s.executeExec(ctx, t.run, "insert_borrowing_record", sqlQuery, args)

	return execErr
}

// UpdateBookStock applies a relative stock change, guarded so stock can
// never go below zero. Zero rows affected is a concurrency conflict.
func (t txView) UpdateBookStock(ctx context.Context, bookID int64, delta int) error {
	stmt := t.s.builder().
		Update(t.s.tables.Books).
		Set(goqu.Record{colStock: goqu.L("? + ?", goqu.C(colStock), delta)}).
		Where(
			goqu.Ex{colID: bookID},
			goqu.L("? + ?", goqu.C(colStock), delta).Gte(0),
		)

	return t.execGuarded(ctx, "update_book_stock", stmt, logAttrBookID, bookID)
}

// UpdateMemberBorrowedCount applies a relative change to the member's
// borrowed counter, guarded so the counter can never go below zero.
func (t txView) UpdateMemberBorrowedCount(ctx context.Context, memberID int64, delta int) error {
	stmt := t.s.builder().
		Update(t.s.tables.Members).
		Set(goqu.Record{colBorrowedBooks: goqu.L("? + ?", goqu.C(colBorrowedBooks), delta)}).
		Where(
			goqu.Ex{colID: memberID},
			goqu.L("? + ?", goqu.C(colBorrowedBooks), delta).Gte(0),
		)

	return t.execGuarded(ctx, "update_member_borrowed_count", stmt, logAttrMemberID, memberID)
}

// SetMemberPenalty marks the member penalized until the given date.
// The flag is set here and never cleared by the engine.
func (t txView) SetMemberPenalty(ctx context.Context, memberID int64, penaltyEndDate time.Time) error {
	stmt := t.s.builder().
		Update(t.s.tables.Members).
		Set(goqu.Record{colIsPenalized: true, colPenaltyEndDate: penaltyEndDate}).
		Where(goqu.Ex{colID: memberID})

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return toSQLErr
	}

	rowsAffected, execErr := t.s.executeExec(ctx, t.run, "set_member_penalty", sqlQuery, args)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return lendingstore.ErrMemberNotFound
	}

	return nil
}

// FindActiveBorrowing loads the open borrowing record for the member/book
// pair, locking it for the rest of the transaction.
func (t txView) FindActiveBorrowing(ctx context.Context, memberID int64, bookID int64) (lendingstore.BorrowingRecord, error) {
	stmt := t.s.builder().
		From(t.s.tables.BorrowedBooks).
		Select(colID, colMemberID, colBookID, colStartDate, colEndDate, colIsReturned, colReturnDate).
		Where(goqu.Ex{
			colMemberID:   memberID,
			colBookID:     bookID,
			colIsReturned: false,
			colReturnDate: nil,
		}).
		Limit(1)

	stmt = t.s.withRowLock(stmt)

	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return lendingstore.BorrowingRecord{}, toSQLErr
	}

	rows, _, queryErr := t.s.executeQuery(ctx, t.run, "find_active_borrowing", sqlQuery, args)
	if queryErr != nil {
		return lendingstore.BorrowingRecord{}, queryErr
	}
	defer t.s.closeRows(rows)

	if !rows.Next() {
		return lendingstore.BorrowingRecord{}, lendingstore.ErrNoActiveBorrowing
	}

	record, scanErr := scanBorrowingRow(rows)
	if scanErr != nil {
		t.s.logError(logMsgScanRowFailed, scanErr)
		return lendingstore.BorrowingRecord{}, scanErr
	}

	return record, nil
}

// CloseBorrowing marks the record returned and sets its return date.
// The guard on is_returned makes a double close affect no rows, so a
// concurrent return cannot double-increment stock.
func (t txView) CloseBorrowing(ctx context.Context, recordID uuid.UUID, returnDate time.Time) error {
	stmt := t.s.builder().
		Update(t.s.tables.BorrowedBooks).
		Set(goqu.Record{colIsReturned: true, colReturnDate: returnDate}).
		Where(goqu.Ex{colID: recordID.String(), colIsReturned: false})

	return t.execGuarded(ctx, "close_borrowing", stmt, "record_id", recordID.String())
}

// execGuarded executes a guarded update and maps zero affected rows to
// lendingstore.ErrConcurrencyConflict.
func (t txView) execGuarded(ctx context.Context, operation string, stmt *goqu.UpdateDataset, logKey string, logVal any) error {
	sqlQuery, args, toSQLErr := stmt.Prepared(true).ToSQL()
	if toSQLErr != nil {
		t.s.logError(logMsgBuildQueryFailed, toSQLErr)
		return toSQLErr
	}

	rowsAffected, execErr := t.s.executeExec(ctx, t.run, operation, sqlQuery, args)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		t.s.logOperation(logMsgConcurrencyConflict, logAttrOperation, operation, logKey, logVal)
		t.s.incrementCounter("lendingstore_concurrency_conflicts_total", map[string]string{"operation": operation})

		return lendingstore.ErrConcurrencyConflict
	}

	return nil
}

func (s Store) withRowLock(stmt *goqu.SelectDataset) *goqu.SelectDataset {
	if s.rowLocking {
		return stmt.ForUpdate(goqu.Wait)
	}

	return stmt
}

// executeQuery executes a SQL query and returns rows with timing information.
func (s Store) executeQuery(ctx context.Context, run runner, operation string, sqlQuery sqlQueryString, args []any) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := run.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, operation, duration)
	s.recordDuration(operation, duration, queryErr == nil)

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, fmt.Errorf("%s (%s): %w", logMsgDBQueryFailed, operation, queryErr)
	}

	return rows, duration, nil
}

// executeExec executes a SQL statement and returns the affected row count.
func (s Store) executeExec(ctx context.Context, run runner, operation string, sqlQuery sqlQueryString, args []any) (
	rowsAffectedInt64,
	error,
) {

	start := time.Now()
	result, execErr := run.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, operation, duration)
	s.recordDuration(operation, duration, execErr == nil)

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, fmt.Errorf("%s (%s): %w", logMsgDBExecFailed, operation, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, fmt.Errorf("%s (%s): %w", logMsgRowsAffectedFailed, operation, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(logMsgCloseRowsFailed, closeErr)
	}
}

func scanMemberRow(rows adapters.DBRows) (lendingstore.MemberRecord, error) {
	var record lendingstore.MemberRecord
	var penaltyEnd sql.NullTime

	if err := rows.Scan(&record.ID, &record.Code, &record.Name, &record.BorrowedBooks, &record.IsPenalized, &penaltyEnd); err != nil {
		return lendingstore.MemberRecord{}, err
	}

	if penaltyEnd.Valid {
		end := penaltyEnd.Time
		record.PenaltyEndDate = &end
	}

	if err := record.Validate(); err != nil {
		return lendingstore.MemberRecord{}, fmt.Errorf("%s: %w", logMsgInvalidRow, err)
	}

	return record, nil
}

func scanBookRow(rows adapters.DBRows) (lendingstore.BookRecord, error) {
	var record lendingstore.BookRecord

	if err := rows.Scan(&record.ID, &record.Code, &record.Title, &record.Author, &record.Stock); err != nil {
		return lendingstore.BookRecord{}, err
	}

	if err := record.Validate(); err != nil {
		return lendingstore.BookRecord{}, fmt.Errorf("%s: %w", logMsgInvalidRow, err)
	}

	return record, nil
}

func scanBorrowingRow(rows adapters.DBRows) (lendingstore.BorrowingRecord, error) {
	var record lendingstore.BorrowingRecord
	var rawID string
	var returnDate sql.NullTime

	if err := rows.Scan(&rawID, &record.MemberID, &record.BookID, &record.StartDate, &record.EndDate, &record.Returned, &returnDate); err != nil {
		return lendingstore.BorrowingRecord{}, err
	}

	recordID, parseErr := uuid.Parse(rawID)
	if parseErr != nil {
		return lendingstore.BorrowingRecord{}, fmt.Errorf("%s: %w", logMsgInvalidRow, parseErr)
	}
	record.ID = recordID

	if returnDate.Valid {
		ret := returnDate.Time
		record.ReturnDate = &ret
	}

	if err := record.Validate(); err != nil {
		return lendingstore.BorrowingRecord{}, fmt.Errorf("%s: %w", logMsgInvalidRow, err)
	}

	return record, nil
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery string, operation string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s Store) logWarn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, logAttrError, err.Error())
	}
}

func (s Store) logError(msg string, err error, args ...any) {
	if s.logger != nil {
		allArgs := append([]any{logAttrError, err.Error()}, args...)
		s.logger.Error(msg, allArgs...)
	}
}

func (s Store) recordDuration(operation string, duration time.Duration, success bool) {
	if s.metrics == nil {
		return
	}

	status := "success"
	if !success {
		status = "error"
	}

	s.metrics.RecordDuration(
		"lendingstore_operation_duration_seconds",
		duration,
		map[string]string{"operation": operation, "status": status},
	)
}

func (s Store) incrementCounter(metric string, labels map[string]string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(metric, labels)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
