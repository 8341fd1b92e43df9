// Package worker runs the queued-task consumer: it pulls find
// tasks off redis and executes the prospect pipeline for each.
package worker

import (
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/alednik/leadscout/internal/provider"
	"github.com/alednik/leadscout/internal/tasks"
	"github.com/alednik/leadscout/internal/transport"
)

type Worker struct {
	rdb         *redis.Client
	asynqServer *asynq.Server

	transport transport.Transport

	redisAddr    string
	concurrency  int
	lmType       provider.LMProviderType
	searcherType provider.WebSearcherType
	modelName    string
	briefing     bool
}

type Option func(*Worker)

func WithRedisAddr(addr string) Option {
	return func(w *Worker) {
		w.redisAddr = addr
	}
}

func WithConcurrency(n int) Option {
	return func(w *Worker) {
		w.concurrency = n
	}
}

func WithLMProviderType(t provider.LMProviderType) Option {
	return func(w *Worker) {
		w.lmType = t
	}
}

func WithWebSearcherType(t provider.WebSearcherType) Option {
	return func(w *Worker) {
		w.searcherType = t
	}
}

func WithModelName(name string) Option {
	return func(w *Worker) {
		w.modelName = name
	}
}

func WithBriefing(enabled bool) Option {
	return func(w *Worker) {
		w.briefing = enabled
	}
}

func New(opts ...Option) *Worker {
	w := &Worker{
		redisAddr:    "localhost:6379",
		concurrency:  10,
		lmType:       provider.LMProviderTypeOpenAI,
		searcherType: provider.WebSearcherTypeExa,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start blocks processing tasks until the server is shut down.
func (w *Worker) Start() error {
	w.rdb = redis.NewClient(&redis.Options{
		Addr:     w.redisAddr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	defer w.rdb.Close()

	w.asynqServer = asynq.NewServerFromRedisClient(
		w.rdb,
		asynq.Config{
			Concurrency: w.concurrency,
		},
	)

	w.transport = transport.NewRedisTransport(w.rdb)

	handler := tasks.NewFindTaskHandler(
		w.transport,
		tasks.WithLMProviderType(w.lmType),
		tasks.WithWebSearcherType(w.searcherType),
		tasks.WithModelName(w.modelName),
		tasks.WithBriefing(w.briefing),
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeFind, handler)

	if err := w.asynqServer.Run(mux); err != nil {
		return err
	}
	return nil
}
