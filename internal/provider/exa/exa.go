// Package exa implements web search against the Exa API.
// Exa ranks by embedding similarity ("neural" search), which is
// what the prospect pipeline relies on; keyword fallback is left
// to the tavily provider.
package exa

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/http"
)

const (
	Endpoint           = "https://api.exa.ai"
	SearchDefaultLimit = 3
)

type SearchResponse struct {
	RequestID string          `json:"requestId"`
	Results   []*SearchResult `json:"results"`
}

type SearchResult struct {
	Title      string   `json:"title"`
	Url        string   `json:"url"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights"`
	Text       string   `json:"text"`
}

type ExaProvider struct {
	client http.Client
}

func New() *ExaProvider {
	c := http.NewClient(
		Endpoint,
		http.WithMaxRetries(3),
		http.WithApiKeyHeader("x-api-key", os.Getenv("EXA_API_KEY")),
	)
	p := &ExaProvider{
		client: c,
	}
	return p
}

func (p ExaProvider) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	var limit int
	if req.Limit != 0 {
		limit = req.Limit
	} else {
		limit = SearchDefaultLimit
	}

	requestData := map[string]any{
		"query":      req.Query,
		"type":       "neural",
		"numResults": limit,
	}
	if req.Highlights {
		requestData["contents"] = map[string]any{
			"highlights": true,
		}
	}

	resp, err := p.client.Request(http.MethodPost, "/search", requestData)
	if err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize web search response: %w", err)
	}

	var searchResponse SearchResponse
	err = json.Unmarshal(jsonData, &searchResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize web search response: %w", err)
	}

	results := make([]*api.SearchResult, 0, len(searchResponse.Results))
	for _, result := range searchResponse.Results {
		highlights := result.Highlights
		if len(highlights) == 0 && result.Text != "" {
			highlights = []string{result.Text}
		}
		results = append(results, &api.SearchResult{
			Title:      result.Title,
			Url:        result.Url,
			Score:      result.Score,
			Highlights: highlights,
		})
	}

	return &api.SearchResponse{
		Query:   req.Query,
		Results: results,
	}, nil
}
