// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notescan/internal/agent"
	"github.com/pdiddy/notescan/internal/notes"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <scan-file>",
	Short: "Write an LLM summary for a saved scan",
	Long: `Summarize re-processes a saved scan file and asks the model for a
structured digest of the notes that survive filtering. The digest goes to
stdout and, unless disabled, to the daily log.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	addLLMFlags(summarizeCmd)
	addFilterFlags(summarizeCmd)
	summarizeCmd.Flags().String("log-dir", "", "daily log directory")
	summarizeCmd.Flags().Bool("no-log", false, "skip writing the daily log")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	sf, err := notes.ReadScanFile(args[0])
	if err != nil {
		return err
	}
	opts, err := sf.Filter.ToOptions()
	if err != nil {
		return fmt.Errorf("scan file %s: %w", args[0], err)
	}
	if filterFlagsChanged(cmd) {
		opts, err = filterOptions(cmd)
		if err != nil {
			return err
		}
	}

	res := notes.Process(sf.PayloadValues(), opts)
	if res.Kept == 0 {
		return fmt.Errorf("scan file %s holds no notes that pass the filter", args[0])
	}

	llmCfg, err := llmConfig(cmd)
	if err != nil {
		return err
	}

	summary, err := agent.Summarize(cmd.Context(), agent.NewDeepSeek(llmCfg), res.Notes, res.TargetDate)
	if err != nil {
		return err
	}
	fmt.Println(summary)

	return writeLog(cmd, res, opts, summary)
}
