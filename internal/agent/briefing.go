package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/provider"
)

const (
	briefingSearchLimit = 8
	briefingTopN        = 3
)

// Briefing gathers recent context about a company before the
// prospect search starts: one wide web search, reranked down to
// the few most relevant snippets. The result is injected into the
// task prompt; it never flows through the agent's search tool.
type Briefing struct {
	searcher provider.WebSearcher
	reranker provider.Reranker
}

func NewBriefing(searcher provider.WebSearcher, reranker provider.Reranker) *Briefing {
	return &Briefing{
		searcher: searcher,
		reranker: reranker,
	}
}

func (b *Briefing) Collect(ctx context.Context, company string) (string, error) {
	query := fmt.Sprintf("recent news, leadership and company overview for %s", company)

	resp, err := b.searcher.Search(ctx, api.SearchRequest{
		Query:      query,
		Limit:      briefingSearchLimit,
		Highlights: true,
	})
	if err != nil {
		return "", fmt.Errorf("briefing search failed: %w", err)
	}

	documents := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		text := strings.TrimSpace(strings.Join(r.Highlights, " "))
		if text == "" {
			continue
		}
		documents = append(documents, text)
	}
	if len(documents) == 0 {
		return "", nil
	}

	reranked, err := b.reranker.Rerank(ctx, api.RerankRequest{
		Query:     company,
		Documents: documents,
		Limit:     briefingTopN,
	})
	if err != nil {
		return "", fmt.Errorf("briefing rerank failed: %w", err)
	}

	var sb strings.Builder
	for _, doc := range reranked.Documents {
		sb.WriteString(strings.TrimSpace(doc.Content))
		sb.WriteString("\n---\n")
	}
	return sb.String(), nil
}
