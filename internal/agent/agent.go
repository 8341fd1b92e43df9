// Package agent runs the prospect-finder pipeline: a bounded
// tool-calling loop between one language model and the search
// adapter, producing a markdown prospect list.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/provider"
	"github.com/alednik/leadscout/internal/search"
)

const (
	// ToolNameSearch is the single tool exposed to the model.
	ToolNameSearch = "search_and_get_contents"

	// OutputFileName is the fixed-name file the pipeline writes
	// its raw final output to as a side effect. It is never read
	// back.
	OutputFileName = "linkedin.md"

	defaultMaxTurns = 8
)

type ErrMaxTurnsExceeded struct {
	Turns int
}

func (e ErrMaxTurnsExceeded) Error() string {
	return fmt.Sprintf("agent did not produce a final answer within %d turns", e.Turns)
}

type ErrEmptyCompany struct{}

func (e ErrEmptyCompany) Error() string {
	return "company name must not be empty"
}

type Pipeline struct {
	lm      provider.LMProvider
	adapter *search.Adapter

	modelName   string
	temperature float32
	maxTurns    int
	outputDir   string
	briefing    *Briefing
	onProgress  func(ProgressEvent)

	taskTemplate *template.Template
}

type PipelineOption func(*Pipeline)

func WithModelName(name string) PipelineOption {
	return func(p *Pipeline) {
		p.modelName = name
	}
}

func WithMaxTurns(turns int) PipelineOption {
	return func(p *Pipeline) {
		p.maxTurns = turns
	}
}

// WithOutputDir sets the directory the fixed-name side-effect
// file is written to. Defaults to the working directory.
func WithOutputDir(dir string) PipelineOption {
	return func(p *Pipeline) {
		p.outputDir = dir
	}
}

func WithBriefing(b *Briefing) PipelineOption {
	return func(p *Pipeline) {
		p.briefing = b
	}
}

// WithProgressFunc registers a hook invoked on every progress
// event. The hook runs on the pipeline goroutine and must not
// block.
func WithProgressFunc(f func(ProgressEvent)) PipelineOption {
	return func(p *Pipeline) {
		p.onProgress = f
	}
}

func NewPipeline(lm provider.LMProvider, adapter *search.Adapter, opts ...PipelineOption) *Pipeline {
	templ := template.Must(template.New("taskPrompt").Parse(taskPromptTemplate))

	p := &Pipeline{
		lm:           lm,
		adapter:      adapter,
		temperature:  0,
		maxTurns:     defaultMaxTurns,
		taskTemplate: templ,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for one company and returns the final
// markdown output. The call blocks until the model produces a
// final answer or fails; there is no cancellation beyond ctx and
// no automatic retry.
func (p *Pipeline) Run(ctx context.Context, company string) (string, error) {
	if company == "" {
		return "", ErrEmptyCompany{}
	}

	p.emit(StartedEvent(company))

	task, err := p.renderTask(ctx, company)
	if err != nil {
		p.emit(ErrorEvent(err))
		return "", err
	}

	history := []*api.ChatMessage{api.UserMessage(task)}
	tools := []*api.ToolDefinition{searchToolDefinition()}

	for turn := range p.maxTurns {
		resp, err := p.lm.ChatTurn(ctx, api.ChatRequest{
			ModelName:    p.modelName,
			SystemPrompt: systemPrompt,
			Temperature:  p.temperature,
			History:      history,
			Tools:        tools,
		})
		if err != nil {
			p.emit(ErrorEvent(err))
			return "", fmt.Errorf("chat turn %d failed: %w", turn, err)
		}

		if !resp.HasToolCalls() {
			p.writeOutputFile(resp.Content)
			p.emit(CompleteEvent())
			return resp.Content, nil
		}

		history = append(history, api.AssistantMessage(resp.Content, resp.ToolCalls...))

		for _, call := range resp.ToolCalls {
			result, err := p.executeToolCall(ctx, call)
			if err != nil {
				p.emit(ErrorEvent(err))
				return "", err
			}
			history = append(history, api.ToolMessage(call.ID, call.Name, result))
		}
	}

	err = ErrMaxTurnsExceeded{Turns: p.maxTurns}
	p.emit(ErrorEvent(err))
	return "", err
}

func (p *Pipeline) executeToolCall(ctx context.Context, call *api.ToolCall) (string, error) {
	if call.Name != ToolNameSearch {
		// Tell the model instead of failing the run; the next
		// turn may recover.
		slog.Warn("model requested unknown tool", "tool", call.Name)
		return fmt.Sprintf("unknown tool '%s'", call.Name), nil
	}

	var args struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return "", fmt.Errorf("failed to parse tool arguments '%s': %w", call.Arguments, err)
	}

	p.emit(SearchingEvent(args.Question))
	slog.Info("executing search tool", "question", args.Question)

	return p.adapter.SearchAndFormat(ctx, args.Question)
}

func (p *Pipeline) renderTask(ctx context.Context, company string) (string, error) {
	type templatePayload struct {
		Company string
		Context string
	}
	tp := templatePayload{Company: company}

	if p.briefing != nil {
		briefingContext, err := p.briefing.Collect(ctx, company)
		if err != nil {
			// The briefing is enrichment only; a failure must not
			// take the run down.
			slog.Warn("company briefing failed", "company", company, "err", err)
		} else {
			tp.Context = briefingContext
		}
	}

	var buf bytes.Buffer
	if err := p.taskTemplate.Execute(&buf, tp); err != nil {
		return "", fmt.Errorf("failed to render task prompt for '%s': %w", company, err)
	}
	return buf.String(), nil
}

func (p *Pipeline) writeOutputFile(content string) {
	path := filepath.Join(p.outputDir, OutputFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		slog.Warn("failed to write agent output file", "path", path, "err", err)
	}
}

func (p *Pipeline) emit(evt ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(evt)
	}
}

func searchToolDefinition() *api.ToolDefinition {
	return &api.ToolDefinition{
		Name:        ToolNameSearch,
		Description: toolDescription,
		Parameters: &api.Schema{
			Type: api.TypeObject,
			Properties: map[string]*api.Schema{
				"question": {
					Type:        api.TypeString,
					Description: "The search question.",
				},
			},
			Required: []string{"question"},
		},
	}
}
