// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"reflect"
	"strings"
	"testing"
)

func TestSelectionCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"numbered list", "1. AAPL 2. TSLA 3. MSFT", 3},
		{"parenthesized list", "1) NVDA 2) AMD", 2},
		{"adjacent tickers", "holding AAPL, TSLA this week", 2},
		{"chinese counter", "本周新增3个标的", 3},
		{"chinese ordinal alone yields no count", "第三只股票值得关注", 0},
		{"no selections", "just some prose about markets", 0},
		{"max not sum", "1. AAPL and also 5个 picks", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectionCount(tt.text); got != tt.want {
				t.Errorf("SelectionCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestScoreSignals(t *testing.T) {
	tests := []struct {
		name      string
		post      string
		ocr       string
		selDate   bool
		wantScore float64
		wantHigh  bool
	}{
		{
			name:      "all signals",
			post:      "Alpha Picks update 2025-10-31: " + strings.Repeat("analysis ", 10),
			ocr:       "1. AAPL 2. TSLA 3. MSFT " + strings.Repeat("details ", 10),
			wantScore: 1.0,
			wantHigh:  true,
		},
		{
			name:      "topical only",
			post:      "short note about seeking alpha",
			wantScore: 0.3,
			wantHigh:  false,
		},
		{
			name:      "few picks",
			post:      "1. AAPL 2. TSLA",
			wantScore: 0.2,
			wantHigh:  false,
		},
		{
			name:      "date via mined selection date",
			post:      "plain text",
			selDate:   true,
			wantScore: 0.2,
			wantHigh:  false,
		},
		{
			name:      "nothing",
			post:      "hi",
			wantScore: 0.0,
			wantHigh:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Score(tt.post, tt.ocr, tt.selDate)
			if diff := r.Score - tt.wantScore; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("score = %v, want %v (notes: %v)", r.Score, tt.wantScore, r.Notes)
			}
			if r.HighQuality != tt.wantHigh {
				t.Errorf("high quality = %v, want %v", r.HighQuality, tt.wantHigh)
			}
			if len(r.Notes) != 4 {
				t.Errorf("want one explanatory note per signal, got %v", r.Notes)
			}
		})
	}
}

func TestScoreCountThresholdIndependent(t *testing.T) {
	// Score can clear 0.7 through other signals, yet a note with fewer
	// than 3 enumerated picks must not classify high quality.
	post := "alpha picks 2025-10-31 1. AAPL " + strings.Repeat("long filler text ", 20)
	r := Score(post, strings.Repeat("ocr text ", 20), false)
	if r.Score < 0.7 {
		t.Fatalf("setup broken: score = %v, need >= 0.7", r.Score)
	}
	if r.SelectionCount >= 3 {
		t.Fatalf("setup broken: count = %d, need < 3", r.SelectionCount)
	}
	if r.HighQuality {
		t.Error("classified high quality without 3+ selections")
	}
}

func TestScoreIdempotent(t *testing.T) {
	post := "Alpha Picks 2025-10-31"
	ocr := "1. AAPL 2. TSLA 3. MSFT"
	a := Score(post, ocr, true)
	b := Score(post, ocr, true)
	if a.Score != b.Score || a.HighQuality != b.HighQuality || !reflect.DeepEqual(a.Notes, b.Notes) {
		t.Errorf("scoring not idempotent: %+v vs %+v", a, b)
	}
}

func TestScoreSubstance(t *testing.T) {
	longPost := strings.Repeat("字", 51)
	longOCR := strings.Repeat("图", 51)
	r := Score(longPost, longOCR, false)
	found := false
	for _, n := range r.Notes {
		if n == "Has substantial content" {
			found = true
		}
	}
	if !found {
		t.Errorf("rune-counted CJK content not recognized as substantial: %v", r.Notes)
	}
}
