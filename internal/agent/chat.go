// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent coordinates the chat model and the MCP search tool: it
// exposes the search tool to the model as an OpenAI function tool, runs
// the tool calls the model asks for, feeds the results back, and has the
// model summarize the processed notes.
// Implements: prd003-agent; docs/ARCHITECTURE § Agent Loop.
package agent

import (
	"context"
	"encoding/json"
)

// ChatRequest is the OpenAI-compatible chat-completions request body.
type ChatRequest struct {
	Model       string     `json:"model"`
	Messages    []Message  `json:"messages"`
	Temperature float64    `json:"temperature"`
	Tools       []ToolSpec `json:"tools,omitempty"`
	ToolChoice  string     `json:"tool_choice,omitempty"`
}

// Message is one chat turn. Tool results set Role "tool" plus ToolCallID
// and Name.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is the model's request to invoke a function tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolSpec declares a function tool to the model.
type ToolSpec struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

// FunctionSpec describes one callable function. Parameters is a JSON
// Schema object, passed through verbatim from the MCP tool.
type FunctionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// ChatResponse is the chat-completions response body.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is one completion alternative; the API returns one.
type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage reports token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatBackend abstracts the chat-completions API so tests can substitute
// a scripted model.
type ChatBackend interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
