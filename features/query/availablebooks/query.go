package availablebooks

const (
	queryType = "AvailableBooks"
)

// Query represents the intent to list the books available for borrowing.
type Query struct {
}

// BuildQuery creates a new Query (currently empty).
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
