// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/notescan/internal/httputil"
	"github.com/pdiddy/notescan/pkg/types"
)

const defaultChatTimeout = 120 * time.Second

// DeepSeek talks to an OpenAI-compatible chat-completions endpoint.
type DeepSeek struct {
	cfg    types.LLMConfig
	client *http.Client
}

// NewDeepSeek builds a backend from config, filling in the defaults for
// base URL, model, and timeout.
func NewDeepSeek(cfg types.LLMConfig) *DeepSeek {
	if cfg.BaseURL == "" {
		cfg.BaseURL = types.DefaultDeepSeekBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = types.DefaultDeepSeekModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	return &DeepSeek{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

// Chat posts a completion request. Rate-limit and overload responses are
// retried with backoff before giving up.
func (d *DeepSeek) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = d.cfg.Model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding chat request: %w", err)
	}

	url := strings.TrimRight(d.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)
	if d.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, d.client, httpReq, d.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat API returned %s: %s", resp.Status, truncate(string(data), 300))
	}

	var chat ChatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("chat API returned no choices")
	}
	return &chat, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
