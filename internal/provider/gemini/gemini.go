package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alednik/leadscout/internal/api"
	"google.golang.org/genai"
)

type GeminiProvider struct {
	client *genai.Client
}

func New() (*GeminiProvider, error) {
	c, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client: c,
	}, nil
}

func (p GeminiProvider) ChatTurn(ctx context.Context, req api.ChatRequest) (*api.ChatTurn, error) {
	contents, err := parseRequestHistory(req.History)
	if err != nil {
		return nil, err
	}
	if req.Query != "" {
		contents = append(contents, genai.NewContentFromText(req.Query, genai.RoleUser))
	}

	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, "")
	}

	if len(req.Tools) > 0 {
		declarations := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			declarations = append(declarations, &genai.FunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  parseSchema(tool.Parameters),
			})
		}
		config.Tools = []*genai.Tool{
			{FunctionDeclarations: declarations},
		}
	}

	resp, err := p.client.Models.GenerateContent(
		ctx,
		p.modelName(req.ModelName),
		contents,
		config,
	)
	if err != nil {
		return nil, err
	}

	turn := &api.ChatTurn{}
	for _, fc := range resp.FunctionCalls() {
		args, err := json.Marshal(fc.Args)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize function call arguments: %w", err)
		}
		turn.ToolCalls = append(turn.ToolCalls, &api.ToolCall{
			ID:        fc.ID,
			Name:      fc.Name,
			Arguments: string(args),
		})
	}
	if len(turn.ToolCalls) == 0 {
		turn.Content = resp.Text()
	}

	return turn, nil
}

func (p GeminiProvider) modelName(requested string) string {
	if requested != "" {
		return requested
	}
	return "gemini-2.0-flash"
}

func parseRequestHistory(h []*api.ChatMessage) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(h))
	for _, m := range h {
		switch m.Role {
		case api.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))

		case api.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
				continue
			}

			parts := make([]*genai.Part, 0, len(m.ToolCalls)+1)
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var args map[string]any
				if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
					return nil, fmt.Errorf("failed to deserialize function call arguments: %w", err)
				}
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, args))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))

		case api.RoleTool:
			part := genai.NewPartFromFunctionResponse(m.ToolName, map[string]any{
				"result": m.Content,
			})
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))
		}
	}
	return contents, nil
}

func parseSchema(s *api.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	schema := &genai.Schema{
		Description: s.Description,
		Title:       s.Title,
		Required:    s.Required,
		Type:        genai.Type(s.Type),
	}

	if s.Items != nil {
		schema.Items = parseSchema(s.Items)
	}

	if s.Properties != nil {
		properties := make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			properties[k] = parseSchema(v)
		}
		schema.Properties = properties
	}

	return schema
}
