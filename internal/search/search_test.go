package search_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/search"
)

type fakeSearcher struct {
	lastReq api.SearchRequest
	results []*api.SearchResult
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.SearchResponse{
		Query:   req.Query,
		Results: f.results,
	}, nil
}

func TestSearchRequestsThreeResultsWithHighlights(t *testing.T) {
	fake := &fakeSearcher{
		results: []*api.SearchResult{
			{Title: "A", Url: "u1", Highlights: []string{"h1"}},
			{Title: "B", Url: "u2", Highlights: []string{"h2"}},
			{Title: "C", Url: "u3", Highlights: []string{"h3"}},
		},
	}
	adapter := search.NewAdapter(fake)

	blob, err := adapter.SearchAndFormat(context.Background(), "employees at Acme")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if fake.lastReq.Limit != 3 {
		t.Errorf("expected limit 3, got %d", fake.lastReq.Limit)
	}
	if !fake.lastReq.Highlights {
		t.Errorf("expected highlights enabled")
	}

	for i := range 3 {
		for _, tag := range []string{"Title", "URL", "Highlight"} {
			open := fmt.Sprintf("<%s id=%d>", tag, i)
			if strings.Count(blob, open) != 1 {
				t.Errorf("expected exactly one segment '%s' in blob '%s'", open, blob)
			}
		}
	}
}

func TestFormatSingleResult(t *testing.T) {
	results := []*api.SearchResult{
		{Title: "A", Url: "u1", Highlights: []string{"h1"}},
	}

	got := search.Format(results)
	expected := "<Title id=0>A</Title><URL id=0>u1</URL><Highlight id=0>h1</Highlight>"
	if got != expected {
		t.Errorf("expected blob '%s', got '%s'", expected, got)
	}
}

func TestFormatPreservesProviderOrder(t *testing.T) {
	results := []*api.SearchResult{
		{Title: "second-ranked-first", Url: "u1", Highlights: []string{"x", "y"}},
		{Title: "another", Url: "u2", Highlights: nil},
	}

	got := search.Format(results)
	expected := "<Title id=0>second-ranked-first</Title><URL id=0>u1</URL><Highlight id=0>xy</Highlight>" +
		"<Title id=1>another</Title><URL id=1>u2</URL><Highlight id=1></Highlight>"
	if got != expected {
		t.Errorf("expected blob '%s', got '%s'", expected, got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	fake := &fakeSearcher{}
	adapter := search.NewAdapter(fake)

	_, err := adapter.SearchAndFormat(context.Background(), "")
	if !errors.Is(err, search.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchProviderErrorPropagates(t *testing.T) {
	provErr := errors.New("provider unavailable")
	fake := &fakeSearcher{err: provErr}
	adapter := search.NewAdapter(fake)

	_, err := adapter.SearchAndFormat(context.Background(), "Acme")
	if !errors.Is(err, provErr) {
		t.Errorf("expected provider error to propagate, got %v", err)
	}
}
