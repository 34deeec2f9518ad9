package httpapi

import (
	"net/http"
	"time"

	"github.com/pustakalab/lending/features/command/borrowbooks"
	"github.com/pustakalab/lending/features/command/returnbook"
	"github.com/pustakalab/lending/features/query/availablebooks"
	"github.com/pustakalab/lending/features/query/registeredmembers"
	"github.com/pustakalab/lending/lendingstore"
	"github.com/pustakalab/lending/shell"
	"github.com/pustakalab/lending/shell/observable"
)

// Response messages for the success paths.
const (
	msgCheckBookSuccess = "Check the book success"
	msgSuccess          = "Success"
	msgBooksBorrowed    = "Books borrowed successfully"
	msgBookReturned     = "Book returned successfully"
	msgInvalidBody      = "invalid request body"
	msgHealthy          = "ok"
	msgStoreUnavailable = "store unavailable"
)

// API bundles the feature handlers behind the HTTP surface. The handlers are
// held as interfaces so each one can be decorated with the observable wrappers
// at wiring time.
type API struct {
	availableBooks    shell.QueryHandler[availablebooks.Query, availablebooks.AvailableBooks]
	registeredMembers shell.QueryHandler[registeredmembers.Query, registeredmembers.RegisteredMembers]
	borrowBooks       shell.CommandHandler[borrowbooks.Command, []borrowbooks.BorrowedBook]
	returnBook        shell.CommandHandler[returnbook.Command, returnbook.Result]
	store             lendingstore.Store
	logger            shell.Logger
	metrics           shell.MetricsCollector
	tracing           shell.TracingCollector
	now               func() time.Time
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger used by the handlers and middleware.
func WithLogger(logger shell.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// WithMetrics sets the metrics collector the handler wrappers record into.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(a *API) {
		a.metrics = collector
	}
}

// WithTracing sets the tracing collector the handler wrappers emit spans to.
func WithTracing(collector shell.TracingCollector) Option {
	return func(a *API) {
		a.tracing = collector
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

// NewAPI wires the feature slices over the given store, each behind an
// observable wrapper built from the configured logger, metrics, and tracing
// collaborators. Options run first so the wrappers see the final configuration.
func NewAPI(store lendingstore.Store, opts ...Option) *API {
	api := &API{
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(api)
	}

	contextualLogger, _ := api.logger.(shell.ContextualLogger)

	api.availableBooks = observable.NewQueryWrapper[availablebooks.Query, availablebooks.AvailableBooks](
		availablebooks.NewQueryHandler(store),
		observable.WithQueryMetrics[availablebooks.Query, availablebooks.AvailableBooks](api.metrics),
		observable.WithQueryTracing[availablebooks.Query, availablebooks.AvailableBooks](api.tracing),
		observable.WithQueryContextualLogging[availablebooks.Query, availablebooks.AvailableBooks](contextualLogger),
		observable.WithQueryLogging[availablebooks.Query, availablebooks.AvailableBooks](api.logger),
	)
	api.registeredMembers = observable.NewQueryWrapper[registeredmembers.Query, registeredmembers.RegisteredMembers](
		registeredmembers.NewQueryHandler(store),
		observable.WithQueryMetrics[registeredmembers.Query, registeredmembers.RegisteredMembers](api.metrics),
		observable.WithQueryTracing[registeredmembers.Query, registeredmembers.RegisteredMembers](api.tracing),
		observable.WithQueryContextualLogging[registeredmembers.Query, registeredmembers.RegisteredMembers](contextualLogger),
		observable.WithQueryLogging[registeredmembers.Query, registeredmembers.RegisteredMembers](api.logger),
	)
	api.borrowBooks = observable.NewCommandWrapper[borrowbooks.Command, []borrowbooks.BorrowedBook](
		borrowbooks.NewCommandHandler(store),
		observable.WithCommandMetrics[borrowbooks.Command, []borrowbooks.BorrowedBook](api.metrics),
		observable.WithCommandTracing[borrowbooks.Command, []borrowbooks.BorrowedBook](api.tracing),
		observable.WithCommandContextualLogging[borrowbooks.Command, []borrowbooks.BorrowedBook](contextualLogger),
		observable.WithCommandLogging[borrowbooks.Command, []borrowbooks.BorrowedBook](api.logger),
	)
	api.returnBook = observable.NewCommandWrapper[returnbook.Command, returnbook.Result](
		returnbook.NewCommandHandler(store),
		observable.WithCommandMetrics[returnbook.Command, returnbook.Result](api.metrics),
		observable.WithCommandTracing[returnbook.Command, returnbook.Result](api.tracing),
		observable.WithCommandContextualLogging[returnbook.Command, returnbook.Result](contextualLogger),
		observable.WithCommandLogging[returnbook.Command, returnbook.Result](api.logger),
	)

	return api
}

// bookJSON is the wire shape of one available book.
type bookJSON struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Stock  int    `json:"stock"`
}

// memberJSON is the wire shape of one member.
type memberJSON struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	BorrowedBooks  int    `json:"borrowedBooks"`
	IsPenalized    bool   `json:"isPenalized"`
	PenaltyEndDate *Date  `json:"penaltyEndDate"`
}

// borrowedBookJSON is one entry of the borrow response.
type borrowedBookJSON struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	BorrowedBy   string `json:"borrowedBy"`
	BorrowedDate Date   `json:"borrowedDate"`
}

type listBooksResponse struct {
	Message string     `json:"message"`
	Data    []bookJSON `json:"data"`
}

type listMembersResponse struct {
	Message string       `json:"message"`
	Data    []memberJSON `json:"data"`
}

type borrowRequest struct {
	MemberID   int64 `json:"memberId"`
	Borrowings []struct {
		BookTitle string `json:"bookTitle"`
		StartDate Date   `json:"startDate"`
		EndDate   Date   `json:"endDate"`
	} `json:"borrowings"`
}

type borrowResponse struct {
	Message       string             `json:"message"`
	BorrowedBooks []borrowedBookJSON `json:"borrowedBooks"`
}

type returnRequest struct {
	MemberID   int64 `json:"memberId"`
	BookID     int64 `json:"bookId"`
	ReturnDate Date  `json:"returnDate"`
}

type returnResponse struct {
	Message        string `json:"message"`
	PenaltyApplied bool   `json:"penaltyApplied"`
}

// handleListBooks serves GET /books: the books not currently on an active loan.
func (a *API) handleListBooks(w http.ResponseWriter, r *http.Request) {
	result, err := a.availableBooks.Handle(r.Context(), availablebooks.BuildQuery())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	data := make([]bookJSON, 0, len(result.Books))
	for _, book := range result.Books {
		data = append(data, bookJSON{
			ID:     book.ID,
			Code:   book.Code,
			Title:  book.Title,
			Author: book.Author,
			Stock:  book.Stock,
		})
	}

	WriteJSON(w, http.StatusOK, listBooksResponse{Message: msgCheckBookSuccess, Data: data})
}

// handleListMembers serves GET /members.
func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	result, err := a.registeredMembers.Handle(r.Context(), registeredmembers.BuildQuery())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	data := make([]memberJSON, 0, len(result.Members))
	for _, member := range result.Members {
		var penaltyEnd *Date
		if member.PenaltyEndDate != nil {
			d := Date(*member.PenaltyEndDate)
			penaltyEnd = &d
		}

		data = append(data, memberJSON{
			ID:             member.ID,
			Code:           member.Code,
			Name:           member.Name,
			BorrowedBooks:  member.BorrowedBooks,
			IsPenalized:    member.IsPenalized,
			PenaltyEndDate: penaltyEnd,
		})
	}

	WriteJSON(w, http.StatusOK, listMembersResponse{Message: msgSuccess, Data: data})
}

// handleBorrow serves POST /members/borrow.
func (a *API) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	borrowings := make([]borrowbooks.BorrowingRequest, 0, len(req.Borrowings))
	for _, b := range req.Borrowings {
		borrowings = append(borrowings, borrowbooks.BorrowingRequest{
			BookTitle: b.BookTitle,
			StartDate: b.StartDate.Time(),
			EndDate:   b.EndDate.Time(),
		})
	}

	command, err := borrowbooks.BuildCommand(req.MemberID, borrowings, a.now())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	borrowed, _, err := a.borrowBooks.Handle(r.Context(), command)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	books := make([]borrowedBookJSON, 0, len(borrowed))
	for _, book := range borrowed {
		books = append(books, borrowedBookJSON{
			ID:           book.ID.String(),
			Code:         book.Code,
			Title:        book.Title,
			BorrowedBy:   book.BorrowedBy,
			BorrowedDate: Date(book.BorrowedDate),
		})
	}

	WriteJSON(w, http.StatusOK, borrowResponse{Message: msgBooksBorrowed, BorrowedBooks: books})
}

// handleReturn serves POST /members/return.
func (a *API) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	command := returnbook.BuildCommand(req.MemberID, req.BookID, req.ReturnDate.Time())

	result, _, err := a.returnBook.Handle(r.Context(), command)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, returnResponse{Message: msgBookReturned, PenaltyApplied: result.PenaltyApplied})
}

// handleHealthz serves GET /healthz by pinging the store.
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		WriteMessage(w, http.StatusServiceUnavailable, msgStoreUnavailable)
		return
	}

	WriteMessage(w, http.StatusOK, msgHealthy)
}

// writeError maps the error through MapError and logs unexpected failures.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := MapError(err)

	if status == http.StatusInternalServerError && a.logger != nil {
		a.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", GetRequestID(r.Context()),
			"error", err.Error(),
		)
	}

	WriteMessage(w, status, message)
}
