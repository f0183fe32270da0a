// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logbook writes the daily log files: one plain-text file per
// day and scan mode, plus JSON/YAML exports of the processed notes.
package logbook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notescan/pkg/types"
)

// DefaultDir is where daily logs land unless configured otherwise.
const DefaultDir = "notes_logs"

// utf8BOM is prepended to new log files. The logs carry Chinese text and
// are routinely opened in Windows editors that guess the encoding wrong
// without it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const rule = 80

// Path returns the log file location for a day and scan mode:
// <dir>/<YYYY-MM-DD>_<mode>.txt.
func Path(dir string, date time.Time, mode string) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.txt", date.Format("2006-01-02"), mode))
}

// Append writes content to the log file for the given day and mode,
// creating the directory and file as needed. Re-runs on the same day
// append rather than overwrite.
func Append(dir string, date time.Time, mode, content string) (string, error) {
	path := Path(dir, date, mode)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if fresh {
		if _, err := f.Write(utf8BOM); err != nil {
			return "", fmt.Errorf("writing log file: %w", err)
		}
	} else {
		content = "\n" + strings.Repeat("=", rule) + "\n" + content
	}
	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("writing log file: %w", err)
	}
	return path, nil
}

// RawDump renders the notes as an indented plain-text report, the
// default log content when no LLM summary is requested.
func RawDump(noteList []types.Note, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Alpha Picks Summary - %s\n", date.Format("2006-01-02"))
	b.WriteString(strings.Repeat("=", rule) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Number of Notes: %d\n", len(noteList))
	b.WriteString(strings.Repeat("-", rule) + "\n\n")

	for i := range noteList {
		n := &noteList[i]
		fmt.Fprintf(&b, "Note %d:\n", i+1)
		fmt.Fprintf(&b, "  Note ID: %s\n", n.ID)
		fmt.Fprintf(&b, "  Title: %s\n", orNA(n.Title))
		fmt.Fprintf(&b, "  Author: %s\n", orNA(n.Author))
		fmt.Fprintf(&b, "  Selection Date: %s\n", orNA(n.SelectionDate))
		fmt.Fprintf(&b, "  Publish Time: %s\n", orNA(n.PublishTimeString()))
		fmt.Fprintf(&b, "  URL: %s\n", orNA(n.URL))
		fmt.Fprintf(&b, "  Quality Score: %.2f\n", n.Quality.Score)
		fmt.Fprintf(&b, "  High Quality: %t\n", n.Quality.HighQuality)
		fmt.Fprintf(&b, "  Quality Notes: %s\n", strings.Join(n.Quality.Notes, ", "))
		b.WriteString("\n  Post Text:\n")
		b.WriteString("  " + strings.Repeat("-", rule-4) + "\n")
		writeIndented(&b, n.PostText(), "(No post text)")
		b.WriteString("\n  OCR Text (from images):\n")
		b.WriteString("  " + strings.Repeat("-", rule-4) + "\n")
		writeIndented(&b, n.OCRText(), "(No OCR text)")
		b.WriteString("\n" + strings.Repeat("=", rule) + "\n\n")
	}
	return b.String()
}

// SummaryReport wraps an LLM-written summary with the standard header.
func SummaryReport(summary string, noteCount int, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Alpha Picks Summary - %s\n", date.Format("2006-01-02"))
	b.WriteString(strings.Repeat("=", rule) + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Number of Notes Analyzed: %d\n\n", noteCount)
	b.WriteString(strings.Repeat("-", rule) + "\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n" + strings.Repeat("-", rule) + "\n\n")
	return b.String()
}

func writeIndented(b *strings.Builder, text, empty string) {
	if strings.TrimSpace(text) == "" {
		b.WriteString("  " + empty + "\n")
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("  " + line + "\n")
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// WriteJSON writes the note exports as indented JSON.
func WriteJSON(path string, exports []types.NoteExport) error {
	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteYAML writes the note exports as YAML.
func WriteYAML(path string, exports []types.NoteExport) error {
	data, err := yaml.Marshal(exports)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
