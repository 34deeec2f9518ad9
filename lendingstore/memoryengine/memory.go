package memoryengine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pustakalab/lending/lendingstore"
)

// Store is a mutex-guarded in-memory implementation of lendingstore.Store.
// WithinTransaction works on a deep copy of the state and swaps it in on
// success, so a failing unit of work leaves no trace, exactly like a rolled
// back database transaction.
type Store struct {
	mu sync.Mutex

	members    map[int64]lendingstore.MemberRecord
	books      map[int64]lendingstore.BookRecord
	borrowings map[uuid.UUID]lendingstore.BorrowingRecord

	nextMemberID int64
	nextBookID   int64
}

var _ lendingstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		members:    make(map[int64]lendingstore.MemberRecord),
		books:      make(map[int64]lendingstore.BookRecord),
		borrowings: make(map[uuid.UUID]lendingstore.BorrowingRecord),
	}
}

// AddMember inserts a member row and returns its assigned id.
func (s *Store) AddMember(record lendingstore.MemberRecord) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMemberID++
	record.ID = s.nextMemberID
	s.members[record.ID] = record

	return record.ID
}

// AddBook inserts a book row and returns its assigned id.
func (s *Store) AddBook(record lendingstore.BookRecord) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBookID++
	record.ID = s.nextBookID
	s.books[record.ID] = record

	return record.ID
}

// MemberByID returns a member row for test assertions.
func (s *Store) MemberByID(memberID int64) (lendingstore.MemberRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.members[memberID]

	return record, ok
}

// BookByID returns a book row for test assertions.
func (s *Store) BookByID(bookID int64) (lendingstore.BookRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.books[bookID]

	return record, ok
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// WithinTransaction runs fn against a copy of the state and commits the copy
// when fn succeeds.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx lendingstore.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &txView{
		members:    copyMap(s.members),
		books:      copyMap(s.books),
		borrowings: copyMap(s.borrowings),
	}

	if err := fn(ctx, view); err != nil {
		return err
	}

	s.members = view.members
	s.books = view.books
	s.borrowings = view.borrowings

	return nil
}

// ListAvailableBooks returns the books without an active loan, ordered by id.
func (s *Store) ListAvailableBooks(_ context.Context) ([]lendingstore.BookRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	onLoan := make(map[int64]bool)
	for _, b := range s.borrowings {
		if !b.Returned {
			onLoan[b.BookID] = true
		}
	}

	books := make([]lendingstore.BookRecord, 0)
	for _, record := range s.books {
		if !onLoan[record.ID] {
			books = append(books, record)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })

	return books, nil
}

// ListMembers returns all members, ordered by id.
func (s *Store) ListMembers(_ context.Context) ([]lendingstore.MemberRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]lendingstore.MemberRecord, 0, len(s.members))
	for _, record := range s.members {
		members = append(members, record)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	return members, nil
}

type txView struct {
	members    map[int64]lendingstore.MemberRecord
	books      map[int64]lendingstore.BookRecord
	borrowings map[uuid.UUID]lendingstore.BorrowingRecord
}

var _ lendingstore.Tx = (*txView)(nil)

func (t *txView) FindMemberByID(_ context.Context, memberID int64) (lendingstore.MemberRecord, error) {
	record, ok := t.members[memberID]
	if !ok {
		return lendingstore.MemberRecord{}, lendingstore.ErrMemberNotFound
	}

	return record, nil
}

func (t *txView) CountActiveBorrowings(_ context.Context, memberID int64) (int, error) {
	count := 0
	for _, b := range t.borrowings {
		if b.MemberID == memberID && !b.Returned {
			count++
		}
	}

	return count, nil
}

func (t *txView) FindAvailableBookByTitle(_ context.Context, title string) (lendingstore.BookRecord, error) {
	var candidates []lendingstore.BookRecord
	for _, record := range t.books {
		if record.Title == title && record.Stock > 0 {
			candidates = append(candidates, record)
		}
	}

	if len(candidates) == 0 {
		return lendingstore.BookRecord{}, lendingstore.ErrBookNotAvailable
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	return candidates[0], nil
}

func (t *txView) InsertBorrowingRecord(_ context.Context, record lendingstore.BorrowingRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	t.borrowings[record.ID] = record

	return nil
}

func (t *txView) UpdateBookStock(_ context.Context, bookID int64, delta int) error {
	record, ok := t.books[bookID]
	if !ok || record.Stock+delta < 0 {
		return lendingstore.ErrConcurrencyConflict
	}

	record.Stock += delta
	t.books[bookID] = record

	return nil
}

func (t *txView) UpdateMemberBorrowedCount(_ context.Context, memberID int64, delta int) error {
	record, ok := t.members[memberID]
	if !ok || record.BorrowedBooks+delta < 0 {
		return lendingstore.ErrConcurrencyConflict
	}

	record.BorrowedBooks += delta
	t.members[memberID] = record

	return nil
}

func (t *txView) SetMemberPenalty(_ context.Context, memberID int64, penaltyEndDate time.Time) error {
	record, ok := t.members[memberID]
	if !ok {
		return lendingstore.ErrMemberNotFound
	}

	end := penaltyEndDate
	record.IsPenalized = true
	record.PenaltyEndDate = &end
	t.members[memberID] = record

	return nil
}

func (t *txView) FindActiveBorrowing(_ context.Context, memberID int64, bookID int64) (lendingstore.BorrowingRecord, error) {
	for _, b := range t.borrowings {
		if b.MemberID == memberID && b.BookID == bookID && !b.Returned && b.ReturnDate == nil {
			return b, nil
		}
	}

	return lendingstore.BorrowingRecord{}, lendingstore.ErrNoActiveBorrowing
}

func (t *txView) CloseBorrowing(_ context.Context, recordID uuid.UUID, returnDate time.Time) error {
	record, ok := t.borrowings[recordID]
	if !ok || record.Returned {
		return lendingstore.ErrConcurrencyConflict
	}

	ret := returnDate
	record.Returned = true
	record.ReturnDate = &ret
	t.borrowings[recordID] = record

	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
