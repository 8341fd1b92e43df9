package api

type SearchRequest struct {
	// Required params
	Query string

	// Optional params
	Limit      int
	Highlights bool
}

type SearchResponse struct {
	Query   string
	Results []*SearchResult
}

type SearchResult struct {
	Title string
	Url   string

	// Highlights are the relevant excerpts the search provider
	// extracted from the page, in provider order.
	Highlights []string

	Score float64
}
