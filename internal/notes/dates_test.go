// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"fmt"
	"testing"
	"time"
)

func TestExtractDateNumeric(t *testing.T) {
	ref := time.Date(2025, 10, 31, 8, 30, 0, 0, time.Local)

	secs := mustParse(t, fmt.Sprintf(`{"time": %d}`, ref.Unix()))
	got, ok := ExtractDate(secs)
	if !ok || !got.Equal(ref) {
		t.Errorf("seconds: got %v, %v; want %v", got, ok, ref)
	}

	millis := mustParse(t, fmt.Sprintf(`{"timestamp": %d}`, ref.UnixMilli()))
	got, ok = ExtractDate(millis)
	if !ok || !got.Equal(ref) {
		t.Errorf("milliseconds: got %v, %v; want %v", got, ok, ref)
	}
}

func TestExtractDateStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want time.Time
	}{
		{
			name: "iso datetime",
			src:  `{"publish_time": "2025-10-30T14:22:05"}`,
			want: time.Date(2025, 10, 30, 14, 22, 5, 0, time.Local),
		},
		{
			name: "space datetime",
			src:  `{"create_time": "2025-10-30 14:22:05"}`,
			want: time.Date(2025, 10, 30, 14, 22, 5, 0, time.Local),
		},
		{
			name: "date only",
			src:  `{"date": "2025-10-30"}`,
			want: time.Date(2025, 10, 30, 0, 0, 0, 0, time.Local),
		},
		{
			name: "long string truncated to 19 chars",
			src:  `{"created_at": "2025-10-30T14:22:05.123456+08:00"}`,
			want: time.Date(2025, 10, 30, 14, 22, 5, 0, time.Local),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(mustParse(t, tt.src))
			if !ok || !got.Equal(tt.want) {
				t.Errorf("got %v, %v; want %v", got, ok, tt.want)
			}
		})
	}
}

func TestExtractDateKeyOrder(t *testing.T) {
	// "time" outranks "publish_time" regardless of field position.
	src := `{"publish_time": "2024-01-01", "time": "2025-06-06"}`
	got, ok := ExtractDate(mustParse(t, src))
	want := time.Date(2025, 6, 6, 0, 0, 0, 0, time.Local)
	if !ok || !got.Equal(want) {
		t.Errorf("got %v, want %v (key precedence)", got, want)
	}
}

func TestExtractDateSkipsUnparseable(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"garbage string", `{"time": "not a date"}`},
		{"null", `{"time": null}`},
		{"zero number", `{"time": 0}`},
		{"no date keys", `{"title": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := ExtractDate(mustParse(t, tt.src)); ok {
				t.Errorf("got %v, want no date", got)
			}
		})
	}
}

func TestExtractDateReachesRaw(t *testing.T) {
	src := `{"note_id": "n1", "raw": {"create_time": "2025-05-05"}}`
	got, ok := ExtractDate(mustParse(t, src))
	want := time.Date(2025, 5, 5, 0, 0, 0, 0, time.Local)
	if !ok || !got.Equal(want) {
		t.Errorf("got %v, %v; want %v", got, ok, want)
	}
}

func TestTextDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"dashes", "picks for 2025-10-31 are in", "2025-10-31", true},
		{"slashes", "更新 2025/10/31 股票", "2025-10-31", true},
		{"no date", "no dates here", "", false},
		{"mixed text", "published 2024-01-15, more words", "2024-01-15", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TextDate(tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("date = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	in := time.Date(2025, 10, 31, 23, 59, 58, 123, time.Local)
	got := dayOf(in)
	want := time.Date(2025, 10, 31, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("dayOf = %v, want %v", got, want)
	}
}
