// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import "strings"

// identifierKeys is the recognized identifier key set. A map carrying any
// of these (exact or case-insensitive) qualifies as a note candidate.
var identifierKeys = []string{"note_id", "id", "noteId", "nid"}

func hasIdentifier(v Value) bool {
	if v.Kind != KindObject {
		return false
	}
	for _, key := range identifierKeys {
		if _, ok := v.Get(key); ok {
			return true
		}
	}
	for _, key := range identifierKeys {
		if _, ok := v.GetFold(key); ok {
			return true
		}
	}
	return false
}

// CollectCandidates walks a payload depth-first (object members in key
// order, then array elements in order) and returns every map that
// qualifies as a note candidate. Qualifying maps are also recursed into:
// a note may nest further note-like structures, and the id-keyed merge
// arena downstream keeps nested duplicates from double counting.
//
// Two shapes get adapted instead of collected literally: a map with a
// "feeds" key routes each array element through the feed adapter, and a
// map with a "note_detail" key routes through the detail adapter.
func CollectCandidates(payload Value) []Value {
	var out []Value
	collect(payload, &out)
	return out
}

func collect(v Value, out *[]Value) {
	switch v.Kind {
	case KindObject:
		if feeds, ok := v.Get("feeds"); ok && feeds.Kind == KindArray {
			for _, item := range feeds.Items {
				if item.Kind != KindObject {
					continue
				}
				if flat, ok := flattenFeed(item); ok {
					*out = append(*out, flat)
				}
			}
			// Non-feeds members may still hold candidates.
			for _, f := range v.Fields {
				if f.Key != "feeds" {
					collect(f.Value, out)
				}
			}
			return
		}
		if detail, ok := v.Get("note_detail"); ok && detail.Kind == KindObject {
			if flat, ok := flattenDetail(v); ok {
				*out = append(*out, flat)
			}
			return
		}
		if hasIdentifier(v) {
			*out = append(*out, v)
		}
		for _, f := range v.Fields {
			collect(f.Value, out)
		}
	case KindArray:
		for _, item := range v.Items {
			collect(item, out)
		}
	}
}

// FeedRef identifies one search-result feed item for a follow-up detail
// fetch. XSecToken is the per-item access token the detail endpoint wants.
type FeedRef struct {
	ID        string
	XSecToken string
}

// FeedRefs mines (id, xsec_token) pairs from a search payload, in
// traversal order, deduplicated by id.
func FeedRefs(payload Value) []FeedRef {
	var refs []FeedRef
	seen := make(map[string]bool)
	collectFeedRefs(payload, &refs, seen)
	return refs
}

func collectFeedRefs(v Value, refs *[]FeedRef, seen map[string]bool) {
	switch v.Kind {
	case KindObject:
		id := feedRefID(v)
		if id != "" && !seen[id] {
			seen[id] = true
			token := ""
			for _, key := range []string{"xsec_token", "xsecToken"} {
				if s, ok := v.Get(key); ok {
					if t, ok := s.Text(); ok {
						token = t
						break
					}
				}
			}
			*refs = append(*refs, FeedRef{ID: id, XSecToken: token})
		}
		for _, f := range v.Fields {
			collectFeedRefs(f.Value, refs, seen)
		}
	case KindArray:
		for _, item := range v.Items {
			collectFeedRefs(item, refs, seen)
		}
	}
}

func feedRefID(v Value) string {
	for _, key := range identifierKeys {
		if val, ok := v.Get(key); ok {
			if s, ok := val.Scalar(); ok {
				return s
			}
		}
	}
	return ""
}

// ocrKeySubstrings marks keys whose values hold image-derived text.
var ocrKeySubstrings = []string{"ocr", "image_text", "img_text"}

func isOCRKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sub := range ocrKeySubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
