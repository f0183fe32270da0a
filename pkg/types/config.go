package types

import (
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notescan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Default endpoints for the external collaborators.
const (
	DefaultMCPBaseURL      = "http://127.0.0.1:18060"
	DefaultDeepSeekBaseURL = "https://api.deepseek.com"
	DefaultDeepSeekModel   = "deepseek-chat"
)

// MCPConfig holds settings for the note-search MCP server connection.
type MCPConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the MCP server base address. The candidate endpoint
	// list is derived from it unless Candidates is set explicitly.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Candidates overrides the derived endpoint candidate list.
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// CandidateURLs returns the ordered list of endpoint URLs to try. The
// server exposes its MCP endpoint at /mcp on most builds, but older ones
// answer on /stream or /sse, and hostname vs. loopback-IP forms are not
// always interchangeable, so both are tried. Duplicates are removed
// preserving first occurrence.
func (c MCPConfig) CandidateURLs() []string {
	if len(c.Candidates) > 0 {
		return dedupeOrdered(c.Candidates)
	}

	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultMCPBaseURL
	}

	alt := base
	switch {
	case strings.Contains(base, "127.0.0.1"):
		alt = strings.Replace(base, "127.0.0.1", "localhost", 1)
	case strings.Contains(base, "localhost"):
		alt = strings.Replace(base, "localhost", "127.0.0.1", 1)
	}

	return dedupeOrdered([]string{
		base + "/mcp",
		alt + "/mcp",
		base + "/mcp/stream",
		base + "/stream",
		base + "/sse",
		base,
	})
}

func dedupeOrdered(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var ordered []string
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			ordered = append(ordered, u)
		}
	}
	return ordered
}

// LLMConfig holds settings for the summarization model API.
type LLMConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the OpenAI-compatible API base (default DeepSeek).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier (e.g. "deepseek-chat").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FilterConfig holds the note filtering parameters. Today and Latest are
// mutually exclusive with each other and with the rolling-window default.
type FilterConfig struct {
	// Days is the rolling-window size in days (default 2).
	Days int `json:"days" yaml:"days"`

	// MaxResults is the number of top notes to keep (default 1).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Today keeps only notes whose effective date is the current day.
	Today bool `json:"today" yaml:"today"`

	// Latest keeps only notes matching the newest date observed in the batch.
	Latest bool `json:"latest" yaml:"latest"`
}

// LogConfig holds settings for the daily log files.
type LogConfig struct {
	// Dir is the directory for daily log files (default "notes_logs").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled skips log writing entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// ScanConfig groups all stage configurations for one scan run.
type ScanConfig struct {
	MCP    MCPConfig    `json:"mcp" yaml:"mcp"`
	LLM    LLMConfig    `json:"llm" yaml:"llm"`
	Filter FilterConfig `json:"filter" yaml:"filter"`
	Log    LogConfig    `json:"log" yaml:"log"`

	// Count is the number of notes to request from the search tool.
	Count int `json:"count" yaml:"count"`

	// Sort is the requested result ordering: general, time_descending,
	// or popularity_descending.
	Sort string `json:"sort" yaml:"sort"`

	// NoteType restricts the search: 0 = all, 1 = video, 2 = image+text.
	// Image+text is the useful default since OCR text only exists there.
	NoteType int `json:"note_type" yaml:"note_type"`
}
