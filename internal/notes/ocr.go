// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import "strings"

// CollectImageText gathers every image-derived text fragment reachable in
// a candidate record, at any depth, deduplicated by exact trimmed-string
// equality in first-seen order.
//
// Traversal rules mirror the shape the vendor actually emits: under an
// OCR-named key, a string is collected, an array collects its string
// elements and recurses into its object elements, and any other value is
// left alone; under every other key, the value is recursed into.
func CollectImageText(rec Value) []string {
	c := fragmentCollector{seen: make(map[string]bool)}
	c.walk(rec)
	return c.fragments
}

type fragmentCollector struct {
	fragments []string
	seen      map[string]bool
}

func (c *fragmentCollector) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" || c.seen[s] {
		return
	}
	c.seen[s] = true
	c.fragments = append(c.fragments, s)
}

func (c *fragmentCollector) walk(v Value) {
	switch v.Kind {
	case KindObject:
		for _, f := range v.Fields {
			if isOCRKey(f.Key) {
				c.collectUnderOCRKey(f.Value)
			} else {
				c.walk(f.Value)
			}
		}
	case KindArray:
		for _, item := range v.Items {
			c.walk(item)
		}
	}
}

func (c *fragmentCollector) collectUnderOCRKey(v Value) {
	switch v.Kind {
	case KindString:
		c.add(v.Str)
	case KindArray:
		for _, item := range v.Items {
			switch item.Kind {
			case KindString:
				c.add(item.Str)
			case KindObject:
				c.walk(item)
			}
		}
	}
}
