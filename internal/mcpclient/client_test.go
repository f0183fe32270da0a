// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpclient

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestTransportFor(t *testing.T) {
	tests := []struct {
		url        string
		streamable bool
	}{
		{"http://127.0.0.1:18060/mcp", true},
		{"http://127.0.0.1:18060/mcp/", true},
		{"http://127.0.0.1:18060/mcp/stream", true},
		{"http://127.0.0.1:18060/stream", true},
		{"http://127.0.0.1:18060/sse", false},
		{"http://127.0.0.1:18060", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, ok := transportFor(tt.url).(*mcp.StreamableClientTransport)
			if ok != tt.streamable {
				t.Errorf("streamable = %v, want %v", ok, tt.streamable)
			}
		})
	}
}

func connWithTools(tools ...*mcp.Tool) *Connection {
	return &Connection{tools: tools}
}

func TestFindSearchTool(t *testing.T) {
	tests := []struct {
		name  string
		tools []*mcp.Tool
		want  string
	}{
		{
			name:  "name carries both keywords",
			tools: []*mcp.Tool{{Name: "search_xiaohongshu_notes"}},
			want:  "search_xiaohongshu_notes",
		},
		{
			name:  "chinese description",
			tools: []*mcp.Tool{{Name: "tool_a", Description: "搜索小红书笔记"}},
			want:  "tool_a",
		},
		{
			name: "pattern name plus search-ish description",
			tools: []*mcp.Tool{
				{Name: "get_feed_detail", Description: "fetch one note"},
				{Name: "xhs_feeds", Description: "query the feed list"},
			},
			want: "xhs_feeds",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := connWithTools(tt.tools...).FindSearchTool()
			if err != nil {
				t.Fatalf("FindSearchTool: %v", err)
			}
			if got != tt.want {
				t.Errorf("tool = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindSearchToolNotFound(t *testing.T) {
	conn := connWithTools(&mcp.Tool{Name: "publish_note", Description: "write a post"})
	_, err := conn.FindSearchTool()
	if err == nil {
		t.Fatal("expected ToolNotFoundError")
	}
	if _, ok := err.(*ToolNotFoundError); !ok {
		t.Fatalf("error type = %T", err)
	}
}

func TestHasTool(t *testing.T) {
	conn := connWithTools(&mcp.Tool{Name: "get_feed_detail"})
	if !conn.HasTool("get_feed_detail") {
		t.Error("HasTool missed an existing tool")
	}
	if conn.HasTool("absent") {
		t.Error("HasTool matched an absent tool")
	}
}

func TestSimplify(t *testing.T) {
	res := &mcp.CallToolResult{
		IsError: false,
		Content: []mcp.Content{
			&mcp.TextContent{Text: `{"feeds": []}`},
			&mcp.TextContent{Text: "plain chunk"},
		},
		StructuredContent: map[string]any{"count": 2},
	}
	p := simplify(res)
	if p.IsError {
		t.Error("IsError should be false")
	}
	if len(p.Text) != 2 || p.Text[0] != `{"feeds": []}` {
		t.Errorf("text chunks = %v", p.Text)
	}
	if p.Structured == nil {
		t.Error("structured content dropped")
	}
}
