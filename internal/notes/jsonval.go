// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes extracts, normalizes, filters, and scores social-media
// note records buried in heterogeneous vendor JSON payloads.
// Implements: prd001-notes (R1-R5);
//
//	docs/ARCHITECTURE § Notes Pipeline.
package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags a Value with its JSON type.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a decoded JSON value with preserved object key order. The
// pipeline traverses Values instead of map[string]any so candidate
// discovery order is deterministic across runs on identical input.
type Value struct {
	Kind    Kind
	Boolean bool
	Number  float64
	// Literal preserves the lexical form of a number so large integer
	// identifiers survive the round trip without float truncation.
	Literal string
	Str     string
	Items   []Value
	Fields  []Field
}

// Field is one member of a JSON object.
type Field struct {
	Key   string
	Value Value
}

// Parse decodes one JSON document into a Value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("decoding payload: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", t, err)
		}
		return Value{Kind: KindNumber, Number: f, Literal: string(t)}, nil
	case bool:
		return Value{Kind: KindBool, Boolean: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindObject}
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return v, nil
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %v, not a string", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Fields = append(v.Fields, Field{Key: key, Value: val})
	}
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindArray}
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return v, nil
		}
		item, err := decodeFromToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}
}

// FromAny converts an already-deserialized value (e.g. MCP structured
// content decoded into generic maps) into a Value. Generic maps carry no
// key order, so keys are sorted to keep traversal deterministic.
func FromAny(data any) Value {
	switch t := data.(type) {
	case nil:
		return Value{Kind: KindNull}
	case bool:
		return Value{Kind: KindBool, Boolean: t}
	case float64:
		return Value{Kind: KindNumber, Number: t}
	case int:
		return Value{Kind: KindNumber, Number: float64(t), Literal: strconv.Itoa(t)}
	case int64:
		return Value{Kind: KindNumber, Number: float64(t), Literal: strconv.FormatInt(t, 10)}
	case json.Number:
		f, _ := t.Float64()
		return Value{Kind: KindNumber, Number: f, Literal: string(t)}
	case string:
		return Value{Kind: KindString, Str: t}
	case []any:
		v := Value{Kind: KindArray, Items: make([]Value, 0, len(t))}
		for _, item := range t {
			v.Items = append(v.Items, FromAny(item))
		}
		return v
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		v := Value{Kind: KindObject, Fields: make([]Field, 0, len(keys))}
		for _, k := range keys {
			v.Fields = append(v.Fields, Field{Key: k, Value: FromAny(t[k])})
		}
		return v
	}
	// Unknown scalar types are rendered through their string form.
	return Value{Kind: KindString, Str: fmt.Sprintf("%v", data)}
}

// Object builds an object Value from fields, for use by shape adapters.
func Object(fields ...Field) Value {
	return Value{Kind: KindObject, Fields: fields}
}

// Str builds a string Value.
func Str(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Get returns the value of the named object member.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// GetFold is Get with case-insensitive key matching.
func (v Value) GetFold(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return Value{}, false
}

// GetPath drills through nested objects following path, key by key.
func (v Value) GetPath(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Text returns the trimmed string content when the value is a non-blank
// string.
func (v Value) Text() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	s := strings.TrimSpace(v.Str)
	if s == "" {
		return "", false
	}
	return s, true
}

// Scalar renders a string or number value as a string. Identifiers arrive
// as either, depending on the endpoint.
func (v Value) Scalar() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Text()
	case KindNumber:
		if v.Literal != "" {
			return v.Literal, true
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64), true
	}
	return "", false
}
