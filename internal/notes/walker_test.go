// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, src string) Value {
	t.Helper()
	v, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func TestCollectCandidatesFindsNestedRecords(t *testing.T) {
	payload := mustParse(t, `{
		"data": {
			"items": [
				{"note_id": "n1", "title": "first"},
				{"irrelevant": true},
				{"wrapper": {"noteId": "n2"}}
			]
		}
	}`)
	got := CollectCandidates(payload)
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if id := identifierOf(got[0]); id != "n1" {
		t.Errorf("first candidate id = %q, want n1", id)
	}
	if id := identifierOf(got[1]); id != "n2" {
		t.Errorf("second candidate id = %q, want n2", id)
	}
}

func TestCollectCandidatesCaseInsensitiveID(t *testing.T) {
	payload := mustParse(t, `{"NOTE_ID": "x1", "title": "caps"}`)
	got := CollectCandidates(payload)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
}

func TestCollectCandidatesRecursesIntoQualifyingMaps(t *testing.T) {
	// A candidate may nest another candidate with its own id.
	payload := mustParse(t, `{"id": "outer", "related": {"note_id": "inner"}}`)
	got := CollectCandidates(payload)
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want outer and inner", len(got))
	}
}

func TestCollectCandidatesOrderStable(t *testing.T) {
	src := `{"a": [{"id": "1"}, {"id": "2"}], "b": {"id": "3"}}`
	var runs [][]string
	for i := 0; i < 3; i++ {
		var ids []string
		for _, rec := range CollectCandidates(mustParse(t, src)) {
			ids = append(ids, identifierOf(rec))
		}
		runs = append(runs, ids)
	}
	want := []string{"1", "2", "3"}
	for i, ids := range runs {
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("run %d order = %v, want %v", i, ids, want)
		}
	}
}

func TestCollectCandidatesToleratesScalarsAndNulls(t *testing.T) {
	payload := mustParse(t, `{"a": null, "b": [1, "x", null], "c": 3.5}`)
	if got := CollectCandidates(payload); len(got) != 0 {
		t.Errorf("candidates = %d, want 0", len(got))
	}
}

func TestCollectCandidatesFeedsAdapter(t *testing.T) {
	payload := mustParse(t, `{
		"feeds": [
			{"id": "f1", "noteCard": {"displayTitle": "feed one"}},
			{"noCard": true}
		],
		"extra": {"note_id": "n9"}
	}`)
	got := CollectCandidates(payload)
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	note, ok := Normalize(got[0])
	if !ok {
		t.Fatal("feed candidate did not normalize")
	}
	if note.ID != "f1" || note.Title != "feed one" {
		t.Errorf("feed note = %q/%q", note.ID, note.Title)
	}
	// The non-feeds sibling still gets walked.
	if id := identifierOf(got[1]); id != "n9" {
		t.Errorf("sibling candidate id = %q, want n9", id)
	}
}

func TestCollectCandidatesDetailAdapter(t *testing.T) {
	payload := mustParse(t, `{
		"note_detail": {
			"note_id": "d1",
			"title": "detail title",
			"desc": "detail body"
		}
	}`)
	got := CollectCandidates(payload)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	note, ok := Normalize(got[0])
	if !ok || note.ID != "d1" || note.Body != "detail body" {
		t.Errorf("detail note = %+v, ok=%v", note, ok)
	}
}

func TestFeedRefs(t *testing.T) {
	payload := mustParse(t, `{
		"feeds": [
			{"id": "f1", "xsecToken": "tok1"},
			{"id": "f2"},
			{"id": "f1", "xsecToken": "dup"}
		]
	}`)
	refs := FeedRefs(payload)
	if len(refs) != 2 {
		t.Fatalf("refs = %d, want 2 (dedup by id)", len(refs))
	}
	if refs[0].ID != "f1" || refs[0].XSecToken != "tok1" {
		t.Errorf("refs[0] = %+v", refs[0])
	}
	if refs[1].ID != "f2" || refs[1].XSecToken != "" {
		t.Errorf("refs[1] = %+v", refs[1])
	}
}
