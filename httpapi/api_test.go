package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pustakalab/lending/httpapi"
	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/lendingstore/memoryengine"
	"github.com/pustakalab/lending/shell"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func newTestServer(t *testing.T, store *memoryengine.Store, now func() time.Time) *httptest.Server {
	t.Helper()

	api := httpapi.NewAPI(store, httpapi.WithClock(now))
	server := httptest.NewServer(httpapi.NewRouter(api))
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func seededStore() *memoryengine.Store {
	store := memoryengine.NewStore()
	store.AddMember(lendingstore.MemberRecord{Code: "M001", Name: "Angga"})
	store.AddBook(lendingstore.BookRecord{Code: "JK-45", Title: "Harry Potter", Author: "J.K Rowling", Stock: 1})
	store.AddBook(lendingstore.BookRecord{Code: "TW-11", Title: "Twilight", Author: "Stephenie Meyer", Stock: 1})

	return store
}

func Test_GetBooks_ListsAvailableBooks(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	// act
	resp, body := doJSON(t, http.MethodGet, server.URL+"/books", "")

	// assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Check the book success", body["message"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	first := data[0].(map[string]any)
	assert.Equal(t, "JK-45", first["code"])
	assert.Equal(t, "Harry Potter", first["title"])
	assert.Equal(t, float64(1), first["stock"])
}

func Test_GetMembers_ListsMembers(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	// act
	resp, body := doJSON(t, http.MethodGet, server.URL+"/members", "")

	// assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Success", body["message"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	member := data[0].(map[string]any)
	assert.Equal(t, "Angga", member["name"])
	assert.Equal(t, float64(0), member["borrowedBooks"])
	assert.Equal(t, false, member["isPenalized"])
	assert.Nil(t, member["penaltyEndDate"])
}

func Test_PostBorrow_Succeeds(t *testing.T) {
	// arrange
	store := seededStore()
	server := newTestServer(t, store, fixedClock(2024, time.June, 1))

	requestBody := `{
		"memberId": 1,
		"borrowings": [
			{"bookTitle": "Harry Potter", "startDate": "2024-06-01", "endDate": "2024-06-08"}
		]
	}`

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/borrow", requestBody)

	// assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Books borrowed successfully", body["message"])

	borrowed, ok := body["borrowedBooks"].([]any)
	require.True(t, ok)
	require.Len(t, borrowed, 1)

	entry := borrowed[0].(map[string]any)
	assert.NotEmpty(t, entry["id"])
	assert.Equal(t, "JK-45", entry["code"])
	assert.Equal(t, "Harry Potter", entry["title"])
	assert.Equal(t, "Angga", entry["borrowedBy"])
	assert.Equal(t, "2024-06-01", entry["borrowedDate"])

	book, _ := store.BookByID(1)
	assert.Equal(t, 0, book.Stock)
}

func Test_PostBorrow_Fails_WithoutBorrowings(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/borrow", `{"memberId": 1, "borrowings": []}`)

	// assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No borrowings provided", body["message"])
}

func Test_PostBorrow_Fails_WhenMemberUnknown(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	requestBody := `{
		"memberId": 42,
		"borrowings": [
			{"bookTitle": "Harry Potter", "startDate": "2024-06-01", "endDate": "2024-06-08"}
		]
	}`

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/borrow", requestBody)

	// assert
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Member not found", body["message"])
}

func Test_PostBorrow_Fails_WhenTitleOutOfStock(t *testing.T) {
	// arrange
	store := seededStore()
	store.AddBook(lendingstore.BookRecord{Code: "DN-01", Title: "Dune", Author: "Frank Herbert", Stock: 0})
	server := newTestServer(t, store, fixedClock(2024, time.June, 1))

	requestBody := `{
		"memberId": 1,
		"borrowings": [
			{"bookTitle": "Dune", "startDate": "2024-06-01", "endDate": "2024-06-08"}
		]
	}`

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/borrow", requestBody)

	// assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Book 'Dune' is out of stock", body["message"])
}

func Test_PostBorrow_Fails_WhenMemberPenalized(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	penaltyEnd := time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC)
	store.AddMember(lendingstore.MemberRecord{
		Code: "M001", Name: "Angga", IsPenalized: true, PenaltyEndDate: &penaltyEnd,
	})
	store.AddBook(lendingstore.BookRecord{Code: "JK-45", Title: "Harry Potter", Author: "J.K Rowling", Stock: 1})
	server := newTestServer(t, store, fixedClock(2024, time.June, 20))

	requestBody := `{
		"memberId": 1,
		"borrowings": [
			{"bookTitle": "Harry Potter", "startDate": "2024-06-20", "endDate": "2024-06-27"}
		]
	}`

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/borrow", requestBody)

	// assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Member is currently penalized", body["message"])
}

func Test_PostBorrow_Fails_OnMalformedBody(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/borrow", `{"memberId": `)

	// assert
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", body["message"])
}

func Test_PostReturn_OnTime(t *testing.T) {
	// arrange
	store := seededStore()
	server := newTestServer(t, store, fixedClock(2024, time.June, 1))

	borrowBody := `{
		"memberId": 1,
		"borrowings": [
			{"bookTitle": "Harry Potter", "startDate": "2024-06-01", "endDate": "2024-06-15"}
		]
	}`
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/members/borrow", borrowBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/return",
		`{"memberId": 1, "bookId": 1, "returnDate": "2024-06-15"}`)

	// assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Book returned successfully", body["message"])
	assert.Equal(t, false, body["penaltyApplied"])
}

func Test_PostReturn_Late_AppliesPenalty(t *testing.T) {
	// arrange
	store := seededStore()
	server := newTestServer(t, store, fixedClock(2024, time.June, 1))

	borrowBody := `{
		"memberId": 1,
		"borrowings": [
			{"bookTitle": "Harry Potter", "startDate": "2024-06-01", "endDate": "2024-06-15"}
		]
	}`
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/members/borrow", borrowBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/return",
		`{"memberId": 1, "bookId": 1, "returnDate": "2024-06-20"}`)

	// assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["penaltyApplied"])

	member, _ := store.MemberByID(1)
	require.NotNil(t, member.PenaltyEndDate)
	assert.Equal(t, time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC), *member.PenaltyEndDate)
}

func Test_PostReturn_Fails_WithoutActiveBorrowing(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	// act
	resp, body := doJSON(t, http.MethodPost, server.URL+"/members/return",
		`{"memberId": 1, "bookId": 1, "returnDate": "2024-06-15"}`)

	// assert
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No active borrowing found for this member and book", body["message"])
}

func Test_GetHealthz(t *testing.T) {
	// arrange
	server := newTestServer(t, memoryengine.NewStore(), fixedClock(2024, time.June, 1))

	// act
	resp, body := doJSON(t, http.MethodGet, server.URL+"/healthz", "")

	// assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["message"])
}

// counterSpy collects counter increments so tests can assert the handler
// wrappers record metrics for requests served over HTTP.
type counterSpy struct {
	mu       sync.Mutex
	counters map[string][]map[string]string
}

func newCounterSpy() *counterSpy {
	return &counterSpy{counters: make(map[string][]map[string]string)}
}

func (c *counterSpy) RecordDuration(string, time.Duration, map[string]string) {}

func (c *counterSpy) IncrementCounter(metric string, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[metric] = append(c.counters[metric], labels)
}

func (c *counterSpy) RecordValue(string, float64, map[string]string) {}

func (c *counterSpy) labelsFor(metric string) []map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[metric]
}

func Test_Requests_RecordHandlerMetrics(t *testing.T) {
	// arrange
	metrics := newCounterSpy()
	api := httpapi.NewAPI(seededStore(),
		httpapi.WithClock(fixedClock(2024, time.June, 1)),
		httpapi.WithMetrics(metrics),
	)
	server := httptest.NewServer(httpapi.NewRouter(api))
	t.Cleanup(server.Close)

	borrowBody := `{
		"memberId": 1,
		"borrowings": [
			{"bookTitle": "Harry Potter", "startDate": "2024-06-01", "endDate": "2024-06-08"}
		]
	}`

	// act
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/members/borrow", borrowBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/books", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// assert
	commandCalls := metrics.labelsFor(shell.CommandHandlerCallsMetric)
	require.Len(t, commandCalls, 1)
	assert.Equal(t, "BorrowBooks", commandCalls[0][shell.LogAttrCommandType])
	assert.Equal(t, shell.StatusSuccess, commandCalls[0][shell.LogAttrStatus])

	queryCalls := metrics.labelsFor(shell.QueryHandlerCallsMetric)
	require.Len(t, queryCalls, 1)
	assert.Equal(t, "AvailableBooks", queryCalls[0][shell.LogAttrQueryType])
	assert.Equal(t, shell.StatusSuccess, queryCalls[0][shell.LogAttrStatus])
}

func Test_RequestID_IsEchoedInResponseHeader(t *testing.T) {
	// arrange
	server := newTestServer(t, seededStore(), fixedClock(2024, time.June, 1))

	req, err := http.NewRequest(http.MethodGet, server.URL+"/books", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "test-request-id")

	// act
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// assert
	assert.Equal(t, "test-request-id", resp.Header.Get("X-Request-ID"))
}
