// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/notescan/pkg/types"
)

// Signal weights and classification thresholds.
const (
	weightTopical     = 0.3
	weightManyPicks   = 0.4
	weightFewPicks    = 0.2
	weightDatePresent = 0.2
	weightSubstance   = 0.1

	highQualityScore = 0.7
	highQualityCount = 3
)

// topicalPhrases are matched case-insensitively as substrings.
var topicalPhrases = []string{
	"seeking alpha", "alpha picks", "alpha pick", "seekingalpha",
}

// selectionPattern is one heuristic for counting enumerated picks. When
// indexed is set, the first capture group is a list index and counts
// directly; otherwise the count is the number of ticker-like tokens in
// the match.
type selectionPattern struct {
	re      *regexp.Regexp
	indexed bool
}

// selectionPatterns run against the original-case combined text. The
// ticker classes need case: lowercasing first would make them dead
// patterns.
var selectionPatterns = []selectionPattern{
	{re: regexp.MustCompile(`(\d+)[.)]\s*[A-Z]{2,5}`), indexed: true},  // "1. AAPL", "2) TSLA"
	{re: regexp.MustCompile(`[A-Z]{2,5}[\s,]+[A-Z]{2,5}`)},             // "AAPL TSLA", "AAPL, TSLA"
	{re: regexp.MustCompile(`第[一二三四五六七八九十\d]+[只个股]`)},                 // "第一只", "第3个"
	{re: regexp.MustCompile(`(\d+)[个只支项]`), indexed: true},             // "3个", "5只"
}

var tickerRe = regexp.MustCompile(`[A-Z]{2,5}`)

// SelectionCount infers the number of enumerated picks in text: for each
// pattern, every match contributes either its explicit numeric index or
// its embedded ticker-token count, and the result is the running maximum
// across all matches, not a sum.
func SelectionCount(text string) int {
	count := 0
	for _, p := range selectionPatterns {
		if p.indexed {
			for _, m := range p.re.FindAllStringSubmatch(text, -1) {
				if n, err := strconv.Atoi(m[1]); err == nil && n > count {
					count = n
				}
			}
			continue
		}
		for _, m := range p.re.FindAllString(text, -1) {
			if n := len(tickerRe.FindAllString(m, -1)); n > count {
				count = n
			}
		}
	}
	return count
}

// datePatterns detect a stated date in any of the forms the posts use.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}[-/]\d{2}[-/]\d{2}`),       // YYYY-MM-DD
	regexp.MustCompile(`\d{2}[-/]\d{2}[-/]\d{4}`),       // MM-DD-YYYY
	regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`),           // YYYY.MM.DD
	regexp.MustCompile(`\d{1,2}[月/]\d{1,2}日`),           // "1月1日"
}

// Score computes the weighted heuristic quality of a note's text, with
// one explanatory line per signal. hasSelectionDate marks a note that
// already carries a text-mined selection date.
func Score(postText, ocrText string, hasSelectionDate bool) types.QualityReport {
	var r types.QualityReport

	combined := postText + " " + ocrText
	lowered := strings.ToLower(combined)

	topical := false
	for _, phrase := range topicalPhrases {
		if strings.Contains(lowered, phrase) {
			topical = true
			break
		}
	}
	if topical {
		r.Score += weightTopical
		r.Notes = append(r.Notes, "References Seeking Alpha/Alpha Picks")
	} else {
		r.Notes = append(r.Notes, "Missing Seeking Alpha reference")
	}

	r.SelectionCount = SelectionCount(combined)
	switch {
	case r.SelectionCount >= highQualityCount:
		r.Score += weightManyPicks
		r.Notes = append(r.Notes, fmt.Sprintf("Contains %d+ selections", r.SelectionCount))
	case r.SelectionCount >= 1:
		r.Score += weightFewPicks
		r.Notes = append(r.Notes, fmt.Sprintf("Contains %d selection(s) - low quality", r.SelectionCount))
	default:
		r.Notes = append(r.Notes, "No clear multiple selections found")
	}

	hasDate := hasSelectionDate
	for _, p := range datePatterns {
		if hasDate {
			break
		}
		hasDate = p.MatchString(lowered)
	}
	if hasDate {
		r.Score += weightDatePresent
		r.Notes = append(r.Notes, "Contains selection date")
	} else {
		r.Notes = append(r.Notes, "Missing selection date")
	}

	substantial := (utf8.RuneCountInString(postText) > 50 && utf8.RuneCountInString(ocrText) > 50) ||
		utf8.RuneCountInString(combined) > 200
	if substantial {
		r.Score += weightSubstance
		r.Notes = append(r.Notes, "Has substantial content")
	} else {
		r.Notes = append(r.Notes, "Content may be incomplete")
	}

	r.HighQuality = r.Score >= highQualityScore && r.SelectionCount >= highQualityCount
	return r
}
