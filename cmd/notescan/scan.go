// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notescan/internal/agent"
	"github.com/pdiddy/notescan/internal/logbook"
	"github.com/pdiddy/notescan/internal/mcpclient"
	"github.com/pdiddy/notescan/internal/notes"
	"github.com/pdiddy/notescan/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Search Xiaohongshu and extract Alpha Picks notes",
	Long: `Scan connects to the MCP note-search server, lets the model drive the
search tool for the given keyword, pulls full-text details for the feeds it
finds, and runs the extraction pipeline over every payload the tools
returned. Results go to stdout and, unless disabled, to the daily log.

Raw payloads can be kept with --save for offline re-processing.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("keyword", "k", "alpha picks", "search keyword")
	scanCmd.Flags().Int("count", 5, "number of notes to request from the search tool")
	scanCmd.Flags().String("sort", "time_descending", "result order: general, time_descending, or popularity_descending")
	scanCmd.Flags().Int("note-type", agent.NoteTypeImage, "note type: 0 all, 1 video, 2 image+text")
	scanCmd.Flags().Bool("summary", false, "ask the model for a structured summary of the kept notes")
	scanCmd.Flags().String("mcp-url", "", "MCP server base URL (default: config or "+types.DefaultMCPBaseURL+")")
	addLLMFlags(scanCmd)
	addFilterFlags(scanCmd)
	addOutputFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := filterOptions(cmd)
	if err != nil {
		return err
	}
	llmCfg, err := llmConfig(cmd)
	if err != nil {
		return err
	}

	mcpURL, _ := cmd.Flags().GetString("mcp-url")
	if mcpURL == "" {
		mcpURL = viper.GetString("mcp.base_url")
	}
	mcpCfg := types.MCPConfig{BaseURL: mcpURL}

	ctx := cmd.Context()
	conn, err := mcpclient.Connect(ctx, mcpCfg.CandidateURLs())
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Fprintf(os.Stderr, "Connected to %s (tools: %v)\n", conn.URL(), conn.ToolNames())

	keyword, _ := cmd.Flags().GetString("keyword")
	count, _ := cmd.Flags().GetInt("count")
	sortBy, _ := cmd.Flags().GetString("sort")
	noteType, _ := cmd.Flags().GetInt("note-type")
	wantSummary, _ := cmd.Flags().GetBool("summary")

	ag := agent.New(agent.NewDeepSeek(llmCfg), conn, os.Stderr)
	outcome, err := ag.SearchKeyword(ctx, agent.Params{
		Keyword:  keyword,
		Count:    count,
		Sort:     sortBy,
		NoteType: noteType,
		Filter:   opts,
	})
	if err != nil {
		return err
	}
	res := outcome.Result

	if err := emitResult(cmd, res); err != nil {
		return err
	}

	summary := ""
	if wantSummary && res.Kept > 0 {
		summary, err = agent.Summarize(ctx, agent.NewDeepSeek(llmCfg), res.Notes, res.TargetDate)
		if err != nil {
			return fmt.Errorf("summarizing notes: %w", err)
		}
		fmt.Println("\n" + summary)
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := notes.WriteScanFile(save, keyword, opts, outcome.Payloads, res); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved scan to", save)
	}

	return writeLog(cmd, res, opts, summary)
}

// --- shared helpers ---

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().String("api-key", "", "DeepSeek API key (default: .secrets/deepseek-api-key)")
	cmd.Flags().String("model", "", "model identifier (default "+types.DefaultDeepSeekModel+")")
	cmd.Flags().String("llm-url", "", "OpenAI-compatible API base URL (default "+types.DefaultDeepSeekBaseURL+")")
}

func llmConfig(cmd *cobra.Command) (types.LLMConfig, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secretDefault("deepseek-api-key", apiKey)
	if apiKey == "" {
		apiKey = viper.GetString("llm.api_key")
	}
	if apiKey == "" {
		return types.LLMConfig{}, fmt.Errorf("no API key: use --api-key, llm.api_key in the config file, or .secrets/deepseek-api-key")
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("llm.model")
	}
	baseURL, _ := cmd.Flags().GetString("llm-url")
	if baseURL == "" {
		baseURL = viper.GetString("llm.base_url")
	}

	cfg := types.LLMConfig{
		BaseURL:    baseURL,
		Model:      model,
		APIKey:     apiKey,
		MaxRetries: viper.GetInt("llm.max_retries"),
	}
	cfg.UserAgent = "notescan/" + version
	return cfg, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Int("days", 2, "rolling-window size in days")
	cmd.Flags().Int("max-results", 1, "number of top notes to keep")
	cmd.Flags().Bool("today", false, "keep only notes published today")
	cmd.Flags().Bool("latest", false, "keep only notes from the newest date in the batch")
}

func filterOptions(cmd *cobra.Command) (notes.Options, error) {
	days, _ := cmd.Flags().GetInt("days")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	today, _ := cmd.Flags().GetBool("today")
	latest, _ := cmd.Flags().GetBool("latest")

	if today && latest {
		return notes.Options{}, fmt.Errorf("--today and --latest are mutually exclusive")
	}

	policy := notes.PolicyWindow
	switch {
	case today:
		policy = notes.PolicyToday
	case latest:
		policy = notes.PolicyLatest
	}

	return notes.Options{Days: days, MaxResults: maxResults, Policy: policy}, nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "print results as JSON instead of a table")
	cmd.Flags().Bool("full", false, "print the full text of each kept note after the table")
	cmd.Flags().String("save", "", "save the scan (payloads and results) to a YAML file")
	cmd.Flags().String("log-dir", "", "daily log directory (default "+logbook.DefaultDir+")")
	cmd.Flags().Bool("no-log", false, "skip writing the daily log")
}

func emitResult(cmd *cobra.Command, res notes.Result) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return formatResultJSON(os.Stdout, res)
	}
	formatResultTable(os.Stdout, res)
	if full, _ := cmd.Flags().GetBool("full"); full {
		formatFullText(os.Stdout, res)
	}
	return nil
}

// writeLog appends the run to the daily log file: the LLM summary when
// one was produced, the raw note dump otherwise.
func writeLog(cmd *cobra.Command, res notes.Result, opts notes.Options, summary string) error {
	if noLog, _ := cmd.Flags().GetBool("no-log"); noLog {
		return nil
	}
	if res.Kept == 0 {
		return nil
	}

	dir, _ := cmd.Flags().GetString("log-dir")
	if dir == "" {
		dir = viper.GetString("log.dir")
	}

	date := res.TargetDate
	if date.IsZero() {
		date = time.Now()
	}
	mode := notes.PolicyName(opts.Policy)

	content := logbook.RawDump(res.Notes, date)
	if summary != "" {
		content = logbook.SummaryReport(summary, len(res.Notes), date)
	}
	path, err := logbook.Append(dir, date, mode, content)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Logged to", path)
	return nil
}
