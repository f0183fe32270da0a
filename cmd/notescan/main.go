// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notescan CLI.
// Implements: prd001-notes, prd002-scan, prd003-agent (CLI surface).
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notescan/internal/mcpclient"
	"github.com/pdiddy/notescan/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the notescan CLI.
var rootCmd = &cobra.Command{
	Use:   "notescan",
	Short: "Scan Xiaohongshu for Alpha Picks notes",
	Long: `notescan searches Xiaohongshu through an MCP note-search server, extracts
note records from the heterogeneous payloads the tools return, filters them
by publication date, scores their quality, and writes a daily log.

An LLM drives the search via tool calling and writes the optional summary;
the extraction, filtering, and scoring pipeline is deterministic and can be
re-run offline against saved scan files with the process subcommand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notescan.yaml or ~/.config/notescan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notescan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notescan"))
		}
	}

	viper.SetEnvPrefix("NOTESCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exitCode maps an error to the process exit status: 2 when no MCP
// endpoint answered, 3 when the server lacks a usable search tool, and 1
// for everything else.
func exitCode(err error) int {
	var connErr *mcpclient.ConnectionError
	if errors.As(err, &connErr) {
		return 2
	}
	var toolErr *mcpclient.ToolNotFoundError
	if errors.As(err, &toolErr) {
		return 3
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
