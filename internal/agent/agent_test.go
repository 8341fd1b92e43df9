package agent_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alednik/leadscout/internal/agent"
	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/search"
)

type fakeSearcher struct {
	requests []api.SearchRequest
	results  []*api.SearchResult
	err      error
}

func (f *fakeSearcher) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &api.SearchResponse{Query: req.Query, Results: f.results}, nil
}

// scriptedLM returns one prepared turn per ChatTurn call and
// records every request it receives.
type scriptedLM struct {
	turns    []*api.ChatTurn
	requests []api.ChatRequest
	err      error
}

func (f *scriptedLM) ChatTurn(ctx context.Context, req api.ChatRequest) (*api.ChatTurn, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.requests) - 1
	if idx >= len(f.turns) {
		idx = len(f.turns) - 1
	}
	return f.turns[idx], nil
}

func toolCallTurn(question string) *api.ChatTurn {
	return &api.ChatTurn{
		ToolCalls: []*api.ToolCall{
			{
				ID:        "call-0",
				Name:      agent.ToolNameSearch,
				Arguments: `{"question": "` + question + `"}`,
			},
		},
	}
}

func TestPipelineRunsToolLoop(t *testing.T) {
	searcher := &fakeSearcher{
		results: []*api.SearchResult{
			{Title: "Jane Doe - CTO", Url: "https://linkedin.com/in/janedoe", Highlights: []string{"CTO at Acme"}},
		},
	}
	lm := &scriptedLM{
		turns: []*api.ChatTurn{
			toolCallTurn("CTO at Acme Corp LinkedIn"),
			{Content: "| Jane Doe | CTO | Technology | https://linkedin.com/in/janedoe |"},
		},
	}

	dir := t.TempDir()
	pipeline := agent.NewPipeline(lm, search.NewAdapter(searcher), agent.WithOutputDir(dir))

	out, err := pipeline.Run(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "Jane Doe") {
		t.Errorf("expected final output, got '%s'", out)
	}

	if len(searcher.requests) != 1 {
		t.Fatalf("expected 1 search, got %d", len(searcher.requests))
	}
	if searcher.requests[0].Query != "CTO at Acme Corp LinkedIn" {
		t.Errorf("unexpected search question '%s'", searcher.requests[0].Query)
	}

	// the second turn must carry the tool result blob
	last := lm.requests[1].History[len(lm.requests[1].History)-1]
	if last.Role != api.RoleTool {
		t.Fatalf("expected trailing tool message, got role %v", last.Role)
	}
	expectedBlob := "<Title id=0>Jane Doe - CTO</Title><URL id=0>https://linkedin.com/in/janedoe</URL><Highlight id=0>CTO at Acme</Highlight>"
	if last.Content != expectedBlob {
		t.Errorf("expected tool blob '%s', got '%s'", expectedBlob, last.Content)
	}

	// side-effect file carries the raw output
	raw, err := os.ReadFile(filepath.Join(dir, agent.OutputFileName))
	if err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	if string(raw) != out {
		t.Errorf("output file does not match returned output")
	}
}

func TestPipelineTaskPromptContainsCompany(t *testing.T) {
	lm := &scriptedLM{
		turns: []*api.ChatTurn{{Content: "done"}},
	}
	pipeline := agent.NewPipeline(lm, search.NewAdapter(&fakeSearcher{}), agent.WithOutputDir(t.TempDir()))

	if _, err := pipeline.Run(context.Background(), "Globex"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	task := lm.requests[0].History[0]
	if task.Role != api.RoleUser {
		t.Errorf("expected user task message, got role %v", task.Role)
	}
	if !strings.Contains(task.Content, "Globex") {
		t.Errorf("expected task prompt to contain company name")
	}
}

func TestPipelineMaxTurns(t *testing.T) {
	lm := &scriptedLM{
		turns: []*api.ChatTurn{toolCallTurn("anything")},
	}
	searcher := &fakeSearcher{results: []*api.SearchResult{{Title: "t", Url: "u"}}}
	pipeline := agent.NewPipeline(lm, search.NewAdapter(searcher),
		agent.WithOutputDir(t.TempDir()), agent.WithMaxTurns(3))

	_, err := pipeline.Run(context.Background(), "Acme")
	var maxErr agent.ErrMaxTurnsExceeded
	if !errors.As(err, &maxErr) {
		t.Fatalf("expected ErrMaxTurnsExceeded, got %v", err)
	}
	if maxErr.Turns != 3 {
		t.Errorf("expected 3 turns, got %d", maxErr.Turns)
	}
	if len(lm.requests) != 3 {
		t.Errorf("expected 3 chat turns, got %d", len(lm.requests))
	}
}

func TestPipelineSearchErrorPropagates(t *testing.T) {
	provErr := errors.New("search provider down")
	lm := &scriptedLM{
		turns: []*api.ChatTurn{toolCallTurn("anything")},
	}
	var events []agent.ProgressEvent
	pipeline := agent.NewPipeline(lm, search.NewAdapter(&fakeSearcher{err: provErr}),
		agent.WithOutputDir(t.TempDir()),
		agent.WithProgressFunc(func(evt agent.ProgressEvent) {
			events = append(events, evt)
		}))

	_, err := pipeline.Run(context.Background(), "Acme")
	if !errors.Is(err, provErr) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}

	last := events[len(events)-1]
	if last.Type != agent.ProgressEventError {
		t.Errorf("expected trailing error event, got %v", last.Type)
	}
}

func TestPipelineEmptyCompany(t *testing.T) {
	lm := &scriptedLM{turns: []*api.ChatTurn{{Content: "x"}}}
	pipeline := agent.NewPipeline(lm, search.NewAdapter(&fakeSearcher{}))

	_, err := pipeline.Run(context.Background(), "")
	var emptyErr agent.ErrEmptyCompany
	if !errors.As(err, &emptyErr) {
		t.Errorf("expected ErrEmptyCompany, got %v", err)
	}
	if len(lm.requests) != 0 {
		t.Errorf("expected no chat turns for empty company")
	}
}
