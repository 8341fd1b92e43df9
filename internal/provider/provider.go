package provider

import (
	"context"
	"errors"
	"sync"

	"github.com/alednik/leadscout/internal/api"
	"github.com/alednik/leadscout/internal/provider/cohere"
	"github.com/alednik/leadscout/internal/provider/exa"
	"github.com/alednik/leadscout/internal/provider/gemini"
	"github.com/alednik/leadscout/internal/provider/openai"
	"github.com/alednik/leadscout/internal/provider/tavily"
)

var (
	ErrInvalidLMProviderType  = errors.New("no lmprovider found for given type")
	ErrInvalidWebSearcherType = errors.New("no web searcher found for given type")
	ErrInvalidRerankerType    = errors.New("no reranker found for given type")
)

type LMProviderType int
type WebSearcherType int
type RerankerType int

const (
	LMProviderTypeOpenAI LMProviderType = iota
	LMProviderTypeGemini
)

const (
	WebSearcherTypeExa WebSearcherType = iota
	WebSearcherTypeTavily
)

const (
	RerankerTypeCohere RerankerType = iota
)

type LMProvider interface {
	// ChatTurn performs one chat completion that may return tool
	// calls instead of final content.
	ChatTurn(ctx context.Context, req api.ChatRequest) (*api.ChatTurn, error)
}

type WebSearcher interface {
	Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
}

type Reranker interface {
	Rerank(ctx context.Context, req api.RerankRequest) (*api.RerankResponse, error)
}

// Provider handles are constructed once per process and reused.
// Construction is guarded and idempotent so concurrent sessions
// share the same underlying clients.
var (
	mu           sync.Mutex
	lmProviders  = make(map[LMProviderType]LMProvider)
	webSearchers = make(map[WebSearcherType]WebSearcher)
	rerankers    = make(map[RerankerType]Reranker)
)

func NewLMProvider(t LMProviderType) (LMProvider, error) {
	mu.Lock()
	defer mu.Unlock()

	if p, ok := lmProviders[t]; ok {
		return p, nil
	}

	var p LMProvider
	switch t {
	case LMProviderTypeOpenAI:
		p = openai.New()
	case LMProviderTypeGemini:
		gp, err := gemini.New()
		if err != nil {
			return nil, err
		}
		p = gp
	default:
		return nil, ErrInvalidLMProviderType
	}

	lmProviders[t] = p
	return p, nil
}

func NewWebSearcher(t WebSearcherType) (WebSearcher, error) {
	mu.Lock()
	defer mu.Unlock()

	if s, ok := webSearchers[t]; ok {
		return s, nil
	}

	var s WebSearcher
	switch t {
	case WebSearcherTypeExa:
		s = exa.New()
	case WebSearcherTypeTavily:
		s = tavily.New()
	default:
		return nil, ErrInvalidWebSearcherType
	}

	webSearchers[t] = s
	return s, nil
}

func NewReranker(t RerankerType) (Reranker, error) {
	mu.Lock()
	defer mu.Unlock()

	if r, ok := rerankers[t]; ok {
		return r, nil
	}

	var r Reranker
	switch t {
	case RerankerTypeCohere:
		r = cohere.New()
	default:
		return nil, ErrInvalidRerankerType
	}

	rerankers[t] = r
	return r, nil
}

// ParseLMProviderType maps a config value to a provider type.
func ParseLMProviderType(name string) (LMProviderType, error) {
	switch name {
	case "", "openai":
		return LMProviderTypeOpenAI, nil
	case "gemini":
		return LMProviderTypeGemini, nil
	default:
		return 0, ErrInvalidLMProviderType
	}
}

// ParseWebSearcherType maps a config value to a searcher type.
func ParseWebSearcherType(name string) (WebSearcherType, error) {
	switch name {
	case "", "exa":
		return WebSearcherTypeExa, nil
	case "tavily":
		return WebSearcherTypeTavily, nil
	default:
		return 0, ErrInvalidWebSearcherType
	}
}
