// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"path/filepath"
	"testing"
	"time"
)

func TestScanFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.yaml")

	payloads := []string{`{"feeds": [{"id": "n1", "noteCard": {"displayTitle": "saved"}}]}`}
	res := Process(ParsePayloads(payloads), Options{MaxResults: 5, Now: time.Date(2025, 10, 31, 12, 0, 0, 0, time.Local)})
	opts := Options{Days: 3, MaxResults: 5, Policy: PolicyWindow}

	if err := WriteScanFile(path, "alpha picks", opts, payloads, res); err != nil {
		t.Fatalf("WriteScanFile: %v", err)
	}

	sf, err := ReadScanFile(path)
	if err != nil {
		t.Fatalf("ReadScanFile: %v", err)
	}
	if sf.Keyword != "alpha picks" {
		t.Errorf("keyword = %q", sf.Keyword)
	}
	if sf.Filter.Policy != "window" || sf.Filter.Days != 3 {
		t.Errorf("filter = %+v", sf.Filter)
	}
	if len(sf.Results) != 1 || sf.Results[0].NoteID != "n1" {
		t.Errorf("results = %+v", sf.Results)
	}

	// Reprocessing the stored payloads reproduces the result.
	reopts, err := sf.Filter.ToOptions()
	if err != nil {
		t.Fatalf("ToOptions: %v", err)
	}
	re := Process(sf.PayloadValues(), reopts)
	if len(re.Notes) != 1 || re.Notes[0].ID != "n1" {
		t.Errorf("reprocessed notes = %v", ids(re.Notes))
	}
}

func TestParsePayloadsSkipsInvalidChunks(t *testing.T) {
	values := ParsePayloads([]string{
		`{"note_id": "ok"}`,
		`this is not JSON`,
		`{"broken":`,
	})
	if len(values) != 1 {
		t.Errorf("parsed %d chunks, want 1", len(values))
	}
}

func TestParsePolicyRejectsUnknown(t *testing.T) {
	for _, name := range []string{"window", "today", "latest", ""} {
		if _, err := ParsePolicy(name); err != nil {
			t.Errorf("ParsePolicy(%q): %v", name, err)
		}
	}
	if _, err := ParsePolicy("yesterday"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestReadScanFileMissing(t *testing.T) {
	if _, err := ReadScanFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
