// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/notescan/pkg/types"
)

// Policy selects how the date filter treats the batch.
type Policy int

const (
	// PolicyWindow keeps notes dated on or after today minus N days.
	// Dateless notes are kept. This is the default.
	PolicyWindow Policy = iota
	// PolicyToday keeps only notes whose effective date is the current
	// day. Dateless notes are dropped.
	PolicyToday
	// PolicyLatest keeps only notes matching the newest day observed
	// anywhere in the batch. Dateless notes are dropped.
	PolicyLatest
)

// Options controls one batch run.
type Options struct {
	// Days is the rolling-window size. Zero means the default of 2.
	Days int
	// MaxResults caps the returned notes. Zero means the default of 1.
	MaxResults int
	// Policy is the date-filter policy.
	Policy Policy
	// Now anchors "today" for filtering. Zero means the wall clock;
	// tests inject a fixed time.
	Now time.Time
}

// Result is the outcome of one batch run.
type Result struct {
	// Notes is the ranked selection: the top high-quality notes when any
	// exist, otherwise the top of the full ranking.
	Notes []types.Note
	// TargetDate is the resolved day for the today and latest policies.
	TargetDate time.Time
	// Candidates counts unique notes after dedup/merge.
	Candidates int
	// Kept counts notes that survived the date filter.
	Kept int
	// HighQuality counts kept notes classified high quality.
	HighQuality int
}

const (
	defaultWindowDays = 2
	defaultMaxResults = 1
)

// Process runs the full pipeline over a batch of raw payloads: walk each
// payload for candidates, normalize and merge by id, filter by date under
// the selected policy, score, rank, and select.
func Process(payloads []Value, opts Options) Result {
	if opts.Days <= 0 {
		opts.Days = defaultWindowDays
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := dayOf(now)

	arena := newMergeArena()
	for _, payload := range payloads {
		for _, rec := range CollectCandidates(payload) {
			if note, ok := Normalize(rec); ok {
				arena.absorb(note)
			}
		}
	}
	merged := arena.ordered()

	var res Result
	res.Candidates = len(merged)

	var cutoff time.Time
	exact := false
	switch opts.Policy {
	case PolicyToday:
		cutoff = today
		res.TargetDate = today
		exact = true
	case PolicyLatest:
		if target, ok := latestObservedDay(merged); ok {
			cutoff = target
			res.TargetDate = target
		} else {
			// No determinable date anywhere in the batch: target today,
			// same contract as the today policy.
			cutoff = today
			res.TargetDate = today
		}
		exact = true
	default:
		cutoff = today.AddDate(0, 0, -opts.Days)
	}

	var scored []types.Note
	for _, note := range merged {
		effective, hasDate := effectiveDate(note)
		if hasDate {
			day := dayOf(effective)
			if exact {
				if !day.Equal(cutoff) {
					continue
				}
			} else if day.Before(cutoff) {
				continue
			}
		} else if exact {
			// Exact-match policies need a determinable date; the rolling
			// window deliberately keeps dateless notes.
			continue
		}

		if m := textDateRe.FindStringSubmatch(strings.ToLower(note.PostText() + " " + note.OCRText())); m != nil {
			note.SelectionDate = m[1]
		}
		note.Quality = Score(note.PostText(), note.OCRText(), note.SelectionDate != "")
		scored = append(scored, note)
	}
	res.Kept = len(scored)

	// Descending by (high-quality flag, score, publish-time string). The
	// last key is a string comparison: chronologically correct only for
	// the fixed-width form the pipeline itself formats.
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Quality.HighQuality != b.Quality.HighQuality {
			return a.Quality.HighQuality
		}
		if a.Quality.Score != b.Quality.Score {
			return a.Quality.Score > b.Quality.Score
		}
		return a.PublishTimeString() > b.PublishTimeString()
	})

	var high []types.Note
	for _, n := range scored {
		if n.Quality.HighQuality {
			high = append(high, n)
		}
	}
	res.HighQuality = len(high)

	// High-quality notes win when any exist; otherwise the caller still
	// gets the best of the batch rather than an empty result.
	selected := scored
	if len(high) > 0 {
		selected = high
	}
	if len(selected) > opts.MaxResults {
		selected = selected[:opts.MaxResults]
	}
	res.Notes = selected
	return res
}

// effectiveDate prefers a date mined from the post's free text over the
// metadata date.
func effectiveDate(note types.Note) (time.Time, bool) {
	if t, ok := TextDate(note.PostText()); ok {
		return t, true
	}
	if !note.PublishedAt.IsZero() {
		return note.PublishedAt, true
	}
	return time.Time{}, false
}

// latestObservedDay collects every effective date in the batch, metadata
// and text-mined alike, and returns the maximum day.
func latestObservedDay(notes []types.Note) (time.Time, bool) {
	var max time.Time
	found := false
	for _, note := range notes {
		if t, ok := TextDate(note.PostText()); ok {
			if day := dayOf(t); !found || day.After(max) {
				max = day
				found = true
			}
		}
		if !note.PublishedAt.IsZero() {
			if day := dayOf(note.PublishedAt); !found || day.After(max) {
				max = day
				found = true
			}
		}
	}
	return max, found
}

// mergeArena deduplicates notes by id while preserving first-seen order.
// A later record with a known id enriches the earlier one: non-empty
// incoming fields win, empty ones never clobber.
type mergeArena struct {
	byID  map[string]*types.Note
	order []string
}

func newMergeArena() *mergeArena {
	return &mergeArena{byID: make(map[string]*types.Note)}
}

func (a *mergeArena) absorb(incoming types.Note) {
	existing, ok := a.byID[incoming.ID]
	if !ok {
		n := incoming
		a.byID[incoming.ID] = &n
		a.order = append(a.order, incoming.ID)
		return
	}
	if incoming.Title != "" {
		existing.Title = incoming.Title
	}
	if incoming.Body != "" {
		existing.Body = incoming.Body
	}
	if incoming.Author != "" {
		existing.Author = incoming.Author
	}
	if incoming.URL != "" {
		existing.URL = incoming.URL
	}
	if !incoming.PublishedAt.IsZero() {
		existing.PublishedAt = incoming.PublishedAt
	}
	if len(incoming.Fragments) > 0 {
		seen := make(map[string]bool, len(existing.Fragments))
		for _, f := range existing.Fragments {
			seen[f] = true
		}
		for _, f := range incoming.Fragments {
			if !seen[f] {
				seen[f] = true
				existing.Fragments = append(existing.Fragments, f)
			}
		}
	}
}

func (a *mergeArena) ordered() []types.Note {
	out := make([]types.Note, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.byID[id])
	}
	return out
}
