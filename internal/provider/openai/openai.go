package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/alednik/leadscout/internal/api"
	"github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client *openai.Client
}

func New() *OpenAIProvider {
	c := openai.NewClient(os.Getenv("OPENAI_API_KEY"))
	return &OpenAIProvider{
		client: c,
	}
}

func (p OpenAIProvider) ChatTurn(ctx context.Context, req api.ChatRequest) (*api.ChatTurn, error) {
	openaiReq := openai.ChatCompletionRequest{
		Model:       openai.GPT4Dot1Mini,
		Temperature: req.Temperature,
		Messages:    p.buildMessages(req),
	}

	if req.ModelName != "" {
		openaiReq.Model = req.ModelName
	}

	for _, tool := range req.Tools {
		openaiReq.Tools = append(openaiReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	res, err := p.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return nil, err
	}

	if len(res.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	msg := res.Choices[0].Message
	turn := &api.ChatTurn{
		Content: msg.Content,
	}
	for _, tc := range msg.ToolCalls {
		turn.ToolCalls = append(turn.ToolCalls, &api.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return turn, nil
}

func (p OpenAIProvider) buildMessages(req api.ChatRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	messages = append(messages, p.parseRequestHistory(req.History)...)

	if req.Query != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Query,
		})
	}

	return messages
}

func (p OpenAIProvider) parseRequestHistory(h []*api.ChatMessage) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, len(h))
	for i, m := range h {
		ccm := openai.ChatCompletionMessage{
			Role:    m.Role.String(),
			Content: m.Content,
		}

		for _, tc := range m.ToolCalls {
			ccm.ToolCalls = append(ccm.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		if m.Role == api.RoleTool {
			ccm.ToolCallID = m.ToolCallID
			ccm.Name = m.ToolName
		}

		msgs[i] = ccm
	}
	return msgs
}
