// Package search adapts a web search provider into the single
// tool exposed to the prospect agent: one semantic query, a fixed
// number of hits, serialized into tagged segments.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/provider"
)

// ResultLimit is the number of hits requested per search. The
// formatted blob always covers exactly the returned hits, in
// provider order.
const ResultLimit = 3

var ErrEmptyQuery = errors.New("query must not be empty")

type Adapter struct {
	searcher provider.WebSearcher
}

func NewAdapter(searcher provider.WebSearcher) *Adapter {
	return &Adapter{
		searcher: searcher,
	}
}

// SearchAndFormat performs one semantic search with highlights
// enabled and returns the serialized result blob. Provider errors
// are not handled here; they propagate to the caller. No retry,
// no pagination, no deduplication.
func (a *Adapter) SearchAndFormat(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", ErrEmptyQuery
	}

	resp, err := a.searcher.Search(ctx, api.SearchRequest{
		Query:      query,
		Limit:      ResultLimit,
		Highlights: true,
	})
	if err != nil {
		return "", err
	}

	return Format(resp.Results), nil
}

// Format serializes hits into tagged segments keyed by rank:
//
//	<Title id=0>..</Title><URL id=0>..</URL><Highlight id=0>..</Highlight>...
//
// Highlight snippets are concatenated without a separator. No
// whitespace is inserted between segments.
func Format(results []*api.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "<Title id=%d>%s</Title>", i, r.Title)
		fmt.Fprintf(&sb, "<URL id=%d>%s</URL>", i, r.Url)
		fmt.Fprintf(&sb, "<Highlight id=%d>%s</Highlight>", i, strings.Join(r.Highlights, ""))
	}
	return sb.String()
}
