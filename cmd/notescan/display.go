// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/pdiddy/notescan/internal/notes"
	"github.com/pdiddy/notescan/pkg/types"
)

// cell truncates s to at most width terminal columns and pads it out to
// exactly width. Widths are measured with uniseg because the titles and
// author names are mostly CJK text, where byte- or rune-based %-Ns
// padding misaligns every column after the first.
func cell(s string, width int) string {
	if uniseg.StringWidth(s) > width {
		s = truncateCell(s, width-3) + "..."
	}
	if pad := width - uniseg.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func truncateCell(s string, width int) string {
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := uniseg.StringWidth(g.Str())
		if used+w > width {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String()
}

// formatResultTable renders the processed notes in the column layout used
// for terminal output.
func formatResultTable(w io.Writer, res notes.Result) {
	if res.Kept == 0 {
		fmt.Fprintln(w, "No notes matched the date filter.")
		fmt.Fprintf(w, "(%d candidate records extracted)\n", res.Candidates)
		return
	}

	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
		cell("#", 3), cell("Score", 5), cell("HQ", 3),
		cell("Date", 10), cell("Title", 40), cell("Author", 16))
	fmt.Fprintln(w, strings.Repeat("-", 3+5+3+10+40+16+10))

	for i := range res.Notes {
		n := &res.Notes[i]
		hq := ""
		if n.Quality.HighQuality {
			hq = "*"
		}
		date := n.SelectionDate
		if date == "" {
			date = n.PublishTimeString()
		}
		fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
			cell(fmt.Sprintf("%d", i+1), 3),
			cell(fmt.Sprintf("%.2f", n.Quality.Score), 5),
			cell(hq, 3),
			cell(date, 10),
			cell(n.Title, 40),
			cell(n.Author, 16))
	}

	fmt.Fprintf(w, "\n%d of %d extracted records kept (%d high quality)\n",
		res.Kept, res.Candidates, res.HighQuality)
	if !res.TargetDate.IsZero() {
		fmt.Fprintf(w, "Target date: %s\n", res.TargetDate.Format("2006-01-02"))
	}
}

// formatFullText prints each note's combined text block after the table.
func formatFullText(w io.Writer, res notes.Result) {
	for i := range res.Notes {
		n := &res.Notes[i]
		fmt.Fprintf(w, "\n--- Note %d: %s ---\n", i+1, n.ID)
		fmt.Fprintln(w, n.CombinedText())
	}
}

// formatResultJSON writes the note exports as indented JSON.
func formatResultJSON(w io.Writer, res notes.Result) error {
	exports := make([]types.NoteExport, 0, len(res.Notes))
	for i := range res.Notes {
		exports = append(exports, res.Notes[i].Export())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exports)
}
