// Package tasks defines the queued prospect-find task and its
// worker-side handler.
package tasks

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/alednik/leadscout/internal/agent"
	"github.com/alednik/leadscout/internal/provider"
	"github.com/alednik/leadscout/internal/search"
	"github.com/alednik/leadscout/internal/transport"
)

const (
	TypeFind = "leadscout:find"
)

type findTaskPayload struct {
	Company   string
	Requester string
}

func NewFindTask(company, requester string) (*asynq.Task, error) {
	tp := findTaskPayload{
		Company:   company,
		Requester: requester,
	}
	payload, err := json.Marshal(tp)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFind, payload), nil
}

// FindTaskHandler runs the prospect pipeline for queued find
// tasks, streaming progress and the final result over the task's
// message stream (keyed by the asynq task ID).
type FindTaskHandler struct {
	transport transport.Transport

	lmType       provider.LMProviderType
	searcherType provider.WebSearcherType
	modelName    string
	briefing     bool
}

type FindTaskHandlerOption func(*FindTaskHandler)

func WithLMProviderType(t provider.LMProviderType) FindTaskHandlerOption {
	return func(h *FindTaskHandler) {
		h.lmType = t
	}
}

func WithWebSearcherType(t provider.WebSearcherType) FindTaskHandlerOption {
	return func(h *FindTaskHandler) {
		h.searcherType = t
	}
}

func WithModelName(name string) FindTaskHandlerOption {
	return func(h *FindTaskHandler) {
		h.modelName = name
	}
}

func WithBriefing(enabled bool) FindTaskHandlerOption {
	return func(h *FindTaskHandler) {
		h.briefing = enabled
	}
}

func NewFindTaskHandler(t transport.Transport, opts ...FindTaskHandlerOption) *FindTaskHandler {
	h := &FindTaskHandler{
		transport:    t,
		lmType:       provider.LMProviderTypeOpenAI,
		searcherType: provider.WebSearcherTypeExa,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *FindTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p findTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	id := t.ResultWriter().TaskID()

	slog.Info("received find task", "id", id, "company", p.Company, "requester", p.Requester)

	ms, err := h.transport.GetMessageStream(id)
	if err != nil {
		return err
	}

	trace := &transport.RequestTrace{
		ID:        id,
		Status:    transport.TraceStatusRunning,
		StartedAt: time.Now().Unix(),
		Company:   p.Company,
		Requester: p.Requester,
	}
	if err := h.transport.SetTrace(ctx, trace); err != nil {
		slog.Warn("failed to store request trace", "id", id, "err", err)
	}

	msgId := 0
	send := func(payload transport.MessageStreamPayload) {
		payload.ID = msgId
		msgId += 1
		if err := ms.Send(ctx, payload); err != nil {
			slog.Debug("failed sending payload to message stream", "id", id, "err", err)
		}
	}

	pipeline, err := h.buildPipeline(func(evt agent.ProgressEvent) {
		if evt.Type != agent.ProgressEventSearching {
			return
		}
		send(transport.MessageStreamPayload{
			Status:  transport.StatusOK,
			Type:    transport.MessageTypeProgress,
			Content: evt.Detail,
		})
	})
	if err != nil {
		slog.Warn("failed to build pipeline, cancelling task", "id", id, "err", err)
		send(transport.MessageStreamPayload{Status: transport.StatusErr, Content: "something went wrong"})
		h.closeTrace(ctx, trace, transport.TraceStatusFailed)
		return err
	}

	result, err := pipeline.Run(ctx, p.Company)
	if err != nil {
		slog.Warn("find task failed", "id", id, "company", p.Company, "err", err)
		send(transport.MessageStreamPayload{Status: transport.StatusErr, Content: err.Error()})
		h.closeTrace(ctx, trace, transport.TraceStatusFailed)
		return err
	}

	send(transport.MessageStreamPayload{
		Status:  transport.StatusDone,
		Type:    transport.MessageTypeResult,
		Content: result,
	})
	h.closeTrace(ctx, trace, transport.TraceStatusCompleted)

	return nil
}

func (h *FindTaskHandler) buildPipeline(onProgress func(agent.ProgressEvent)) (*agent.Pipeline, error) {
	lm, err := provider.NewLMProvider(h.lmType)
	if err != nil {
		return nil, err
	}
	searcher, err := provider.NewWebSearcher(h.searcherType)
	if err != nil {
		return nil, err
	}

	opts := []agent.PipelineOption{agent.WithProgressFunc(onProgress)}
	if h.modelName != "" {
		opts = append(opts, agent.WithModelName(h.modelName))
	}
	if h.briefing {
		reranker, err := provider.NewReranker(provider.RerankerTypeCohere)
		if err != nil {
			return nil, err
		}
		opts = append(opts, agent.WithBriefing(agent.NewBriefing(searcher, reranker)))
	}

	return agent.NewPipeline(lm, search.NewAdapter(searcher), opts...), nil
}

func (h *FindTaskHandler) closeTrace(ctx context.Context, trace *transport.RequestTrace, status int) {
	trace.Status = status
	trace.CompletedAt = time.Now().Unix()
	if err := h.transport.SetTrace(ctx, trace); err != nil {
		slog.Warn("failed to update request trace", "id", trace.ID, "err", err)
	}
}
