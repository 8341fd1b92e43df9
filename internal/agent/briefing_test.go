package agent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alednik/leadscout/internal/agent"
	"github.com/alednik/leadscout/internal/api"
)

type fakeReranker struct {
	lastReq api.RerankRequest
	docs    []*api.ScoredDocument
}

func (f *fakeReranker) Rerank(ctx context.Context, req api.RerankRequest) (*api.RerankResponse, error) {
	f.lastReq = req
	return &api.RerankResponse{Query: req.Query, Documents: f.docs}, nil
}

func TestBriefingCollect(t *testing.T) {
	searcher := &fakeSearcher{
		results: []*api.SearchResult{
			{Title: "News", Url: "u1", Highlights: []string{"Acme raised a round", "in 2025"}},
			{Title: "About", Url: "u2", Highlights: []string{"Acme builds anvils"}},
			{Title: "Empty", Url: "u3"},
		},
	}
	reranker := &fakeReranker{
		docs: []*api.ScoredDocument{
			{Content: "Acme raised a round in 2025", Score: 0.9},
			{Content: "Acme builds anvils", Score: 0.7},
		},
	}

	briefing := agent.NewBriefing(searcher, reranker)
	out, err := briefing.Collect(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	req := searcher.requests[0]
	if req.Limit != 8 || !req.Highlights {
		t.Errorf("unexpected search request %+v", req)
	}
	if !strings.Contains(req.Query, "Acme Corp") {
		t.Errorf("expected company in search query, got '%s'", req.Query)
	}

	if reranker.lastReq.Query != "Acme Corp" {
		t.Errorf("expected rerank by company, got '%s'", reranker.lastReq.Query)
	}
	if reranker.lastReq.Limit != 3 {
		t.Errorf("expected rerank limit 3, got %d", reranker.lastReq.Limit)
	}
	// result with no highlight text is not offered to the reranker
	if len(reranker.lastReq.Documents) != 2 {
		t.Errorf("expected 2 rerank documents, got %d", len(reranker.lastReq.Documents))
	}

	if !strings.Contains(out, "Acme builds anvils") || !strings.Contains(out, "\n---\n") {
		t.Errorf("unexpected briefing output '%s'", out)
	}
}

func TestBriefingNoUsableResults(t *testing.T) {
	briefing := agent.NewBriefing(&fakeSearcher{}, &fakeReranker{})

	out, err := briefing.Collect(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty briefing, got '%s'", out)
	}
}
