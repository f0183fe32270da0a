// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/notescan/internal/mcpclient"
	"github.com/pdiddy/notescan/internal/notes"
)

// llmToolName is the function name the model sees for the MCP search
// tool, regardless of what the server calls it.
const llmToolName = "search_xiaohongshu_notes"

// detailToolName is the server's full-fetch tool; its results carry the
// OCR text and dates the search feed omits.
const detailToolName = "get_feed_detail"

const systemPrompt = "You are an expert investment researcher analyzing Xiaohongshu (RED) posts about Seeking Alpha's Alpha Picks service. " +
	"Your goal is to find high-quality posts that contain Alpha Picks stock selections from Seeking Alpha. " +
	"High-quality posts should: " +
	"1. Reference Seeking Alpha or Alpha Picks service " +
	"2. Contain multiple stock selections (not just 1-2 picks) " +
	"3. Include selection dates " +
	"4. Have both text content and images with OCR text extracted. " +
	"Always call the provided search tool to retrieve notes. " +
	"Focus on finding the most recent and highest quality posts that represent official Alpha Picks selections."

// Note-type codes accepted on the CLI, mapped to the filter values the
// search tool understands.
const (
	NoteTypeAll   = 0
	NoteTypeVideo = 1
	NoteTypeImage = 2
)

func noteTypeFilter(code int) string {
	switch code {
	case NoteTypeVideo:
		return "视频"
	case NoteTypeImage:
		return "图文"
	default:
		return "不限"
	}
}

var sortFilters = map[string]string{
	"general":               "综合",
	"time_descending":       "最新",
	"popularity_descending": "最多点赞",
}

func sortFilter(sort string) string {
	if v, ok := sortFilters[sort]; ok {
		return v
	}
	return "综合"
}

// SearchConnection is the slice of the MCP connection the agent needs.
// *mcpclient.Connection implements it.
type SearchConnection interface {
	FindSearchTool() (string, error)
	ToolSchema(name string) (string, json.RawMessage, error)
	HasTool(name string) bool
	Call(ctx context.Context, name string, args map[string]any) (mcpclient.Payload, error)
}

// Params configures one keyword search.
type Params struct {
	Keyword  string
	Count    int
	Sort     string
	NoteType int
	Filter   notes.Options
}

// Outcome is the result of one agent run.
type Outcome struct {
	Keyword  string
	Summary  string
	ToolName string
	// Payloads holds the raw text chunks every tool call returned, for
	// saving and offline re-processing.
	Payloads []string
	Result   notes.Result
	Usage    *Usage
}

// Agent drives the model/tool conversation.
type Agent struct {
	backend ChatBackend
	conn    SearchConnection
	out     io.Writer
}

// New builds an agent. Progress lines go to out.
func New(backend ChatBackend, conn SearchConnection, out io.Writer) *Agent {
	if out == nil {
		out = io.Discard
	}
	return &Agent{backend: backend, conn: conn, out: out}
}

// SearchKeyword asks the model to search for notes about the keyword,
// executes the tool calls it makes, enriches search feeds with detail
// fetches, runs the extraction pipeline over everything retrieved, and
// finishes with a model-written summary of the conversation.
func (a *Agent) SearchKeyword(ctx context.Context, p Params) (*Outcome, error) {
	if p.Count <= 0 {
		p.Count = 10
	}

	toolName, err := a.conn.FindSearchTool()
	if err != nil {
		return nil, err
	}
	description, schema, err := a.conn.ToolSchema(toolName)
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = "Search for Xiaohongshu notes by keyword."
	}

	spec := ToolSpec{
		Type: "function",
		Function: FunctionSpec{
			Name:        llmToolName,
			Description: description,
			Parameters:  schema,
		},
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Search for the MOST RECENT Xiaohongshu notes about '%s'. "+
				"Find posts that contain Alpha Picks stock selections with multiple picks (not just 1-2). "+
				"IMPORTANT: Use ONLY these filter parameters: note_type and sort_by. "+
				"Do NOT use publish_time filter - date filtering will be done after retrieval. "+
				"Search parameters: note_type=%s, sort_by=%s. "+
				"Return as many recent notes as possible (up to %d or more if available). "+
				"The tool will return raw note data with images - we will extract OCR text and filter by date separately.",
			p.Keyword, noteTypeFilter(p.NoteType), sortFilter(p.Sort), p.Count)},
	}

	initial, err := a.backend.Chat(ctx, ChatRequest{Messages: messages, Tools: []ToolSpec{spec}, ToolChoice: "auto"})
	if err != nil {
		return nil, fmt.Errorf("initial completion: %w", err)
	}

	assistant := initial.Choices[0].Message
	messages = append(messages, assistant)
	if len(assistant.ToolCalls) == 0 {
		return nil, fmt.Errorf("model did not call the search tool")
	}

	outcome := &Outcome{Keyword: p.Keyword, ToolName: toolName, Usage: initial.Usage}

	for _, call := range assistant.ToolCalls {
		args := map[string]any{}
		if call.Type == "function" && call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("decoding tool arguments: %w", err)
			}
		}
		// The keyword and filters are forced: the model's job is the
		// call, not the parameter choice.
		args["keyword"] = p.Keyword
		filters, _ := args["filters"].(map[string]any)
		if filters == nil {
			filters = map[string]any{}
		}
		filters["note_type"] = noteTypeFilter(p.NoteType)
		filters["sort_by"] = sortFilter(p.Sort)
		args["filters"] = filters

		payload, err := a.conn.Call(ctx, toolName, args)
		if err != nil {
			return nil, fmt.Errorf("search tool: %w", err)
		}
		if payload.IsError {
			fmt.Fprintf(a.out, "warning: search tool reported an error; continuing with partial data\n")
		}
		outcome.Payloads = append(outcome.Payloads, payload.Text...)

		a.fetchDetails(ctx, payload, p.Count, outcome)

		content, err := json.Marshal(map[string]any{
			"is_error":           payload.IsError,
			"text":               payload.Text,
			"structured_content": payload.Structured,
		})
		if err != nil {
			return nil, fmt.Errorf("encoding tool result: %w", err)
		}
		messages = append(messages, Message{
			Role:       "tool",
			ToolCallID: call.ID,
			Name:       call.Function.Name,
			Content:    string(content),
		})
	}

	final, err := a.backend.Chat(ctx, ChatRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("summary completion: %w", err)
	}
	outcome.Summary = final.Choices[0].Message.Content

	outcome.Result = notes.Process(notes.ParsePayloads(outcome.Payloads), p.Filter)
	return outcome, nil
}

// fetchDetails mines (id, token) pairs from a search payload and pulls
// the full note for each, capped at count. A failed fetch is skipped;
// detail records merge into the search records during processing.
func (a *Agent) fetchDetails(ctx context.Context, payload mcpclient.Payload, count int, outcome *Outcome) {
	if !a.conn.HasTool(detailToolName) {
		return
	}
	var refs []notes.FeedRef
	for _, v := range notes.ParsePayloads(payload.Text) {
		refs = append(refs, notes.FeedRefs(v)...)
	}
	fetched := 0
	for _, ref := range refs {
		if fetched >= count {
			break
		}
		if ref.XSecToken == "" {
			continue
		}
		detail, err := a.conn.Call(ctx, detailToolName, map[string]any{
			"feed_id":    ref.ID,
			"xsec_token": ref.XSecToken,
		})
		if err != nil {
			fmt.Fprintf(a.out, "warning: detail fetch for %s failed: %v\n", ref.ID, err)
			continue
		}
		outcome.Payloads = append(outcome.Payloads, detail.Text...)
		fetched++
	}
}
