// Copyright 2025 The leadscout authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package api

type ChatMessageRole int

const (
	RoleUser ChatMessageRole = iota
	RoleAssistant
	RoleTool
)

var roleName = map[ChatMessageRole]string{
	RoleUser:      "user",
	RoleAssistant: "assistant",
	RoleTool:      "tool",
}

func (r ChatMessageRole) String() string {
	return roleName[r]
}

type ChatMessage struct {
	Role    ChatMessageRole
	Content string

	// ToolCalls is set on assistant messages that requested
	// tool invocations.
	ToolCalls []*ToolCall

	// ToolCallID and ToolName identify the call a RoleTool
	// message responds to.
	ToolCallID string
	ToolName   string
}

func UserMessage(content string) *ChatMessage {
	return &ChatMessage{Role: RoleUser, Content: content}
}

func AssistantMessage(content string, toolCalls ...*ToolCall) *ChatMessage {
	return &ChatMessage{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

func ToolMessage(callID string, toolName string, content string) *ChatMessage {
	return &ChatMessage{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: callID,
		ToolName:   toolName,
	}
}
