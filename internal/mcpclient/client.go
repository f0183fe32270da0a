// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpclient connects to the note-search MCP server and locates
// its tools. The server's endpoint path and transport vary between
// builds, so connection walks an ordered candidate-URL list.
// Implements: prd002-scan (R2); docs/ARCHITECTURE § Search Collaborator.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is stamped by the build and reported to the MCP server during
// the handshake.
var Version = "dev"

// ConnectionError reports that every candidate endpoint failed.
type ConnectionError struct {
	Attempted []string
	Errors    []error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to connect to MCP server; attempts failed for %v", e.Attempted)
}

// ToolNotFoundError reports that no tool on the server matched the
// discovery heuristics.
type ToolNotFoundError struct {
	Wanted    string
	Available []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("no MCP tool looks like %s; available tools: %v", e.Wanted, e.Available)
}

// Connection is an established session with the search server.
type Connection struct {
	session *mcp.ClientSession
	url     string
	tools   []*mcp.Tool
}

// transportFor picks the transport a candidate URL most likely speaks:
// streamable HTTP for /mcp and /stream style endpoints, SSE otherwise.
func transportFor(url string) mcp.Transport {
	clean := strings.TrimRight(url, "/")
	if strings.HasSuffix(clean, "/mcp") || strings.Contains(clean, "/mcp/") || strings.Contains(clean, "/stream") {
		return &mcp.StreamableClientTransport{Endpoint: url}
	}
	return &mcp.SSEClientTransport{Endpoint: url}
}

// Connect tries each candidate URL in order and returns the first session
// that completes the handshake and lists its tools. A streamable-HTTP
// failure retries the same URL over SSE before moving on.
func Connect(ctx context.Context, urls []string) (*Connection, error) {
	connErr := &ConnectionError{}
	for _, candidate := range urls {
		transport := transportFor(candidate)
		conn, err := dial(ctx, candidate, transport)
		if err == nil {
			return conn, nil
		}
		if _, streamable := transport.(*mcp.StreamableClientTransport); streamable {
			conn, sseErr := dial(ctx, candidate, &mcp.SSEClientTransport{Endpoint: candidate})
			if sseErr == nil {
				return conn, nil
			}
		}
		connErr.Attempted = append(connErr.Attempted, candidate)
		connErr.Errors = append(connErr.Errors, err)
	}
	return nil, connErr
}

func dial(ctx context.Context, url string, transport mcp.Transport) (*Connection, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "notescan", Version: Version}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	listed, err := session.ListTools(ctx, nil)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("listing tools on %s: %w", url, err)
	}
	return &Connection{session: session, url: url, tools: listed.Tools}, nil
}

// Close tears down the session.
func (c *Connection) Close() error {
	return c.session.Close()
}

// URL returns the candidate endpoint that accepted the connection.
func (c *Connection) URL() string {
	return c.url
}

// ToolNames lists the server's tools in the order it reported them.
func (c *Connection) ToolNames() []string {
	names := make([]string, 0, len(c.tools))
	for _, tool := range c.tools {
		names = append(names, tool.Name)
	}
	return names
}

// HasTool reports whether the server exposes a tool by exact name.
func (c *Connection) HasTool(name string) bool {
	for _, tool := range c.tools {
		if tool.Name == name {
			return true
		}
	}
	return false
}

// ToolSchema returns a tool's description and its input schema as raw
// JSON, for re-exposing the tool to an OpenAI-compatible model.
func (c *Connection) ToolSchema(name string) (string, json.RawMessage, error) {
	for _, tool := range c.tools {
		if tool.Name != name {
			continue
		}
		if tool.InputSchema == nil {
			return tool.Description, json.RawMessage(`{"type":"object"}`), nil
		}
		schema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return "", nil, fmt.Errorf("encoding schema of tool %s: %w", name, err)
		}
		return tool.Description, schema, nil
	}
	return "", nil, &ToolNotFoundError{Wanted: name, Available: c.ToolNames()}
}

// namePatterns and descriptionWords drive search-tool discovery when the
// tool name is not the documented one. The server is Chinese-language
// software, so both scripts appear.
var (
	namePatterns     = []string{"search", "笔记", "xiaohongshu", "xhs"}
	descriptionWords = []string{"search", "查找", "搜索", "query", "查询"}
)

// FindSearchTool locates the note-search tool by name and description
// heuristics.
func (c *Connection) FindSearchTool() (string, error) {
	for _, tool := range c.tools {
		name := strings.ToLower(tool.Name)
		desc := strings.ToLower(tool.Description)

		if strings.Contains(name, "search") && strings.Contains(name, "note") {
			return tool.Name, nil
		}
		if strings.Contains(desc, "搜索") && strings.Contains(desc, "笔记") {
			return tool.Name, nil
		}
		for _, pattern := range namePatterns {
			if !strings.Contains(name, pattern) {
				continue
			}
			for _, word := range descriptionWords {
				if strings.Contains(desc, word) {
					return tool.Name, nil
				}
			}
			break
		}
	}
	return "", &ToolNotFoundError{Wanted: "the note search endpoint", Available: c.ToolNames()}
}

// Payload is the simplified form of a tool result handed to the pipeline.
type Payload struct {
	IsError    bool
	Text       []string
	Structured any
}

// Call invokes a tool and simplifies its result.
func (c *Connection) Call(ctx context.Context, name string, args map[string]any) (Payload, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return Payload{}, fmt.Errorf("calling tool %s: %w", name, err)
	}
	return simplify(res), nil
}

func simplify(res *mcp.CallToolResult) Payload {
	p := Payload{IsError: res.IsError, Structured: res.StructuredContent}
	for _, item := range res.Content {
		if text, ok := item.(*mcp.TextContent); ok {
			p.Text = append(p.Text, text.Text)
		}
	}
	return p
}
