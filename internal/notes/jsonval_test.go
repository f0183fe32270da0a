// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import "testing"

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zebra": 1, "apple": 2, "mango": {"b": 1, "a": 2}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Kind != KindObject {
		t.Fatalf("kind = %v, want object", v.Kind)
	}
	want := []string{"zebra", "apple", "mango"}
	for i, f := range v.Fields {
		if f.Key != want[i] {
			t.Errorf("field %d key = %q, want %q", i, f.Key, want[i])
		}
	}
	nested, ok := v.Get("mango")
	if !ok || len(nested.Fields) != 2 || nested.Fields[0].Key != "b" {
		t.Errorf("nested key order not preserved: %+v", nested.Fields)
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
	}{
		{"null", `null`, KindNull},
		{"bool", `true`, KindBool},
		{"number", `42`, KindNumber},
		{"string", `"hi"`, KindString},
		{"array", `[1, 2]`, KindArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if v.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", v.Kind, tt.kind)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte(`{"broken":`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := Parse([]byte(`plain text`)); err == nil {
		t.Error("expected error for non-JSON text")
	}
}

func TestNumberLiteralPreserved(t *testing.T) {
	v, err := Parse([]byte(`{"id": 7234567890123456789}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	id, _ := v.Get("id")
	s, ok := id.Scalar()
	if !ok || s != "7234567890123456789" {
		t.Errorf("Scalar() = %q, want the exact literal", s)
	}
}

func TestGetFold(t *testing.T) {
	v, _ := Parse([]byte(`{"NoteId": "abc"}`))
	if _, ok := v.Get("noteId"); ok {
		t.Error("Get should be case-sensitive")
	}
	got, ok := v.GetFold("noteid")
	if !ok {
		t.Fatal("GetFold did not match")
	}
	if got.Str != "abc" {
		t.Errorf("GetFold value = %q, want abc", got.Str)
	}
}

func TestGetPath(t *testing.T) {
	v, _ := Parse([]byte(`{"user": {"profile": {"nickname": "amy"}}}`))
	got, ok := v.GetPath("user", "profile", "nickname")
	if !ok || got.Str != "amy" {
		t.Errorf("GetPath = %q, %v", got.Str, ok)
	}
	if _, ok := v.GetPath("user", "missing"); ok {
		t.Error("GetPath should miss on absent key")
	}
}

func TestTextTrimsAndRejectsBlank(t *testing.T) {
	v := Str("  padded  ")
	s, ok := v.Text()
	if !ok || s != "padded" {
		t.Errorf("Text() = %q, %v", s, ok)
	}
	if _, ok := Str("   ").Text(); ok {
		t.Error("blank string should not count as text")
	}
}

func TestFromAnySortsMapKeys(t *testing.T) {
	v := FromAny(map[string]any{"c": 1, "a": 2, "b": 3})
	want := []string{"a", "b", "c"}
	for i, f := range v.Fields {
		if f.Key != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.Key, want[i])
		}
	}
}
