package types

// Page is the paginated envelope returned by list endpoints.
// Count is the total number of matches, not the number of Results.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// EmptyPage returns a page with no matches and a non-nil empty result slice
func EmptyPage[T any]() Page[T] {
	return Page[T]{Results: []T{}}
}

// ArticleQuery holds the filters of an article listing.
// Page is 1-indexed; empty filters are not sent to the backend.
type ArticleQuery struct {
	Page     int
	Category string
	Source   string
	Country  string
	Search   string
}

// IngestRequest is the body of a manual ingestion trigger
type IngestRequest struct {
	Category string `json:"category,omitempty"`
	Country  string `json:"country,omitempty"`
	Query    string `json:"query,omitempty"`
}

// IngestResponse is the acknowledgement of an ingestion trigger.
// The backend reports failures in Error instead of Message.
type IngestResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
