package registeredmembers

const (
	queryType = "RegisteredMembers"
)

// Query represents the intent to list the registered members.
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
