// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notescan/internal/notes"
)

var processCmd = &cobra.Command{
	Use:   "process [payload.json ...]",
	Short: "Run the extraction pipeline over saved payloads",
	Long: `Process runs the offline half of a scan: it reads raw tool payloads
from JSON files, or from a scan file saved with --save, and extracts,
filters, scores, and ranks the notes without touching the network.

When reading a scan file, the filter settings stored in it are reused
unless overridden on the command line.`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("from", "", "scan file to re-process")
	processCmd.Flags().StringP("keyword", "k", "", "keyword recorded when saving with --save")
	addFilterFlags(processCmd)
	addOutputFlags(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	from, _ := cmd.Flags().GetString("from")
	if from == "" && len(args) == 0 {
		return fmt.Errorf("nothing to process: pass payload files or --from <scan-file>")
	}

	opts, err := filterOptions(cmd)
	if err != nil {
		return err
	}
	keyword, _ := cmd.Flags().GetString("keyword")

	var payloads []notes.Value
	var rawChunks []string

	if from != "" {
		sf, err := notes.ReadScanFile(from)
		if err != nil {
			return err
		}
		if !filterFlagsChanged(cmd) {
			opts, err = sf.Filter.ToOptions()
			if err != nil {
				return fmt.Errorf("scan file %s: %w", from, err)
			}
		}
		if keyword == "" {
			keyword = sf.Keyword
		}
		rawChunks = sf.Payloads
		payloads = sf.PayloadValues()
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		v, err := notes.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			continue
		}
		rawChunks = append(rawChunks, string(data))
		payloads = append(payloads, v)
	}

	if len(payloads) == 0 {
		return fmt.Errorf("no parseable payloads")
	}

	res := notes.Process(payloads, opts)
	if err := emitResult(cmd, res); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := notes.WriteScanFile(save, keyword, opts, rawChunks, res); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved scan to", save)
	}

	return writeLog(cmd, res, opts, "")
}

func filterFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"days", "max-results", "today", "latest"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
