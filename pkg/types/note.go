// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the notescan pipeline.
// Implements: prd001-notes (Note, NoteExport, QualityReport);
//
//	prd002-scan (stage configuration).
//
// See docs/ARCHITECTURE § Pipeline Interface, § Data Structures.
package types

import (
	"strings"
	"time"
)

// Note is the canonical unit produced by the extraction pipeline: one
// social-media post, normalized from whichever vendor shape it arrived in.
// Notes are deduplicated by ID within a batch; a later detail record with
// the same ID enriches the earlier summary record.
type Note struct {
	// ID is the stable note identifier used for dedup and merge.
	ID string `json:"note_id" yaml:"note_id"`

	// Title is the post title, when the source provided one.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Body is the post description or main text.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Author is the display name of the posting account.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// URL is a link back to the post.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Fragments holds image-derived (OCR) text snippets, deduplicated,
	// in first-seen traversal order.
	Fragments []string `json:"ocr_fragments,omitempty" yaml:"ocr_fragments,omitempty"`

	// SelectionDate is a date string mined from the post's free text.
	// When present it is a stronger signal than PublishedAt: editorial
	// posts state the true selection date in prose while platform
	// metadata reflects crawl or repost time.
	SelectionDate string `json:"selection_date,omitempty" yaml:"selection_date,omitempty"`

	// PublishedAt is the best-effort publish date from post metadata.
	// Zero when no date field could be parsed.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// Quality carries the heuristic quality assessment.
	Quality QualityReport `json:"quality" yaml:"quality"`
}

// QualityReport is the result of heuristic quality scoring.
type QualityReport struct {
	// Score is the weighted heuristic score in [0, 1].
	Score float64 `json:"score" yaml:"score"`

	// SelectionCount is the inferred number of enumerated picks in the text.
	SelectionCount int `json:"selection_count" yaml:"selection_count"`

	// HighQuality is true when the score and selection count both clear
	// their thresholds.
	HighQuality bool `json:"is_high_quality" yaml:"is_high_quality"`

	// Notes explains, one line per signal, how the score was reached.
	Notes []string `json:"notes" yaml:"notes"`
}

// PostText returns the title and body joined on one newline, skipping
// empty parts. This is the text representation fed to the quality scorer.
func (n *Note) PostText() string {
	var parts []string
	if t := strings.TrimSpace(n.Title); t != "" {
		parts = append(parts, t)
	}
	if b := strings.TrimSpace(n.Body); b != "" {
		parts = append(parts, b)
	}
	return strings.Join(parts, "\n")
}

// OCRText returns the OCR fragments joined with blank-line separators.
func (n *Note) OCRText() string {
	return strings.Join(n.Fragments, "\n\n")
}

// CombinedText returns a human-readable rendering: title, body (when
// distinct from the title), and a labelled block of image text. Empty
// parts are omitted; non-empty parts are separated by blank lines.
func (n *Note) CombinedText() string {
	var parts []string
	if t := strings.TrimSpace(n.Title); t != "" {
		parts = append(parts, t)
	}
	if b := strings.TrimSpace(n.Body); b != "" && !contains(parts, b) {
		parts = append(parts, b)
	}
	if ocr := n.OCRText(); ocr != "" {
		parts = append(parts, "Image text:\n"+ocr)
	}
	return strings.Join(parts, "\n\n")
}

// publishTimeLayout is the fixed-width form used for display and for the
// final ranking comparison.
const publishTimeLayout = "2006-01-02 15:04:05"

// PublishTimeString formats PublishedAt for display, or returns "" when
// no metadata date was found.
func (n *Note) PublishTimeString() string {
	if n.PublishedAt.IsZero() {
		return ""
	}
	return n.PublishedAt.Format(publishTimeLayout)
}

// NoteExport is the flat record consumers write to JSON, CSV, or log
// files. All string fields default to the empty string, never null.
type NoteExport struct {
	NoteID        string  `json:"note_id" yaml:"note_id"`
	Title         string  `json:"title" yaml:"title"`
	PostText      string  `json:"post_text" yaml:"post_text"`
	OCRText       string  `json:"ocr_text" yaml:"ocr_text"`
	Author        string  `json:"author" yaml:"author"`
	URL           string  `json:"url" yaml:"url"`
	SelectionDate string  `json:"selection_date" yaml:"selection_date"`
	PublishTime   string  `json:"publish_time" yaml:"publish_time"`
	IsHighQuality bool    `json:"is_high_quality" yaml:"is_high_quality"`
	QualityScore  float64 `json:"quality_score" yaml:"quality_score"`
	QualityNotes  string  `json:"quality_notes" yaml:"quality_notes"`
}

// Export converts the note to its flat export form. Quality notes are
// joined with semicolons.
func (n *Note) Export() NoteExport {
	return NoteExport{
		NoteID:        n.ID,
		Title:         n.Title,
		PostText:      n.PostText(),
		OCRText:       n.OCRText(),
		Author:        n.Author,
		URL:           n.URL,
		SelectionDate: n.SelectionDate,
		PublishTime:   n.PublishTimeString(),
		IsHighQuality: n.Quality.HighQuality,
		QualityScore:  n.Quality.Score,
		QualityNotes:  strings.Join(n.Quality.Notes, "; "),
	}
}

func contains(parts []string, s string) bool {
	for _, p := range parts {
		if p == s {
			return true
		}
	}
	return false
}
