// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"regexp"
	"strings"
	"time"
)

// dateKeys is the ordered list of date-bearing keys tried during
// extraction. The first present non-null value wins.
var dateKeys = []string{
	"time", "timestamp", "publish_time", "create_time", "update_time",
	"date", "publish_date", "created_at", "updated_at",
}

// dateLayouts are tried in order against the first 19 characters of a
// string date value.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// millisecondFloor splits Unix timestamps: values above it are taken as
// milliseconds, the rest as seconds.
const millisecondFloor = 1e12

// ExtractDate finds the best-effort publish date in a candidate record.
// Numeric values are Unix timestamps; string values are tried against the
// known layouts. A value that parses under no interpretation simply
// yields no date, never an error.
func ExtractDate(rec Value) (time.Time, bool) {
	for _, key := range dateKeys {
		v, ok := rec.Get(key)
		if !ok || v.Kind == KindNull {
			continue
		}
		switch v.Kind {
		case KindNumber:
			if v.Number == 0 {
				continue
			}
			return fromUnix(v.Number), true
		case KindString:
			s := strings.TrimSpace(v.Str)
			if s == "" {
				continue
			}
			if len(s) > 19 {
				s = s[:19]
			}
			for _, layout := range dateLayouts {
				if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
					return t, true
				}
			}
		}
	}
	// Adapters sometimes stash the original record under "raw"; a date
	// the adapter did not map can still live there.
	if raw, ok := rec.Get("raw"); ok && raw.Kind == KindObject {
		return ExtractDate(raw)
	}
	return time.Time{}, false
}

func fromUnix(n float64) time.Time {
	if n > millisecondFloor {
		return time.UnixMilli(int64(n)).Local()
	}
	return time.Unix(int64(n), 0).Local()
}

// textDateRe matches a YYYY-MM-DD or YYYY/MM/DD date stated in free text.
var textDateRe = regexp.MustCompile(`(\d{4}[-/]\d{2}[-/]\d{2})`)

// TextDate mines a date from free text (title + body). Editorial posts
// state the true selection date in prose while platform metadata reflects
// crawl or repost time, so a text-mined date takes precedence as the
// effective date.
func TextDate(text string) (time.Time, bool) {
	m := textDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	normalized := strings.ReplaceAll(m[1], "/", "-")
	t, err := time.ParseInLocation("2006-01-02", normalized, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dayOf truncates a time to its local calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
