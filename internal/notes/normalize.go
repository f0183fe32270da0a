// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"github.com/pdiddy/notescan/pkg/types"
)

// lookupPath is a sequence of keys for nested access into a candidate
// record. Single-element paths are plain key lookups.
type lookupPath []string

// Canonical-field alias tables. Order matters: the first path whose value
// is a non-empty string wins.
var (
	titlePaths = []lookupPath{
		{"title"}, {"note_title"}, {"name"}, {"noteCard", "displayTitle"},
	}
	bodyPaths = []lookupPath{
		{"desc"}, {"description"}, {"note_desc"}, {"content"}, {"text"},
	}
	authorPaths = []lookupPath{
		{"user_nickname"}, {"user_name"}, {"author"}, {"nickname"},
		{"user", "nickname"}, {"user", "nickName"},
	}
	urlPaths = []lookupPath{
		{"note_url"}, {"url"}, {"share_link"}, {"link"},
	}
	idPaths = []lookupPath{
		{"note_id"}, {"id"}, {"noteId"}, {"nid"},
	}
)

// firstString resolves the first path with a non-empty string value.
func firstString(rec Value, paths []lookupPath) string {
	for _, path := range paths {
		if v, ok := rec.GetPath(path...); ok {
			if s, ok := v.Text(); ok {
				return s
			}
		}
	}
	return ""
}

// identifierOf resolves the note identifier. Unlike the other canonical
// fields it also accepts numeric values, since some endpoints return ids
// as JSON numbers.
func identifierOf(rec Value) string {
	for _, path := range idPaths {
		if v, ok := rec.GetPath(path...); ok {
			if s, ok := v.Scalar(); ok {
				return s
			}
		}
	}
	return ""
}

// Normalize builds a Note from a candidate record, resolving each
// canonical field through its alias table. Returns false when no
// identifier is present; such fragments are skipped, never errors.
func Normalize(rec Value) (types.Note, bool) {
	id := identifierOf(rec)
	if id == "" {
		return types.Note{}, false
	}
	note := types.Note{
		ID:     id,
		Title:  firstString(rec, titlePaths),
		Body:   firstString(rec, bodyPaths),
		Author: firstString(rec, authorPaths),
		URL:    firstString(rec, urlPaths),
	}
	note.Fragments = CollectImageText(rec)
	if t, ok := ExtractDate(rec); ok {
		note.PublishedAt = t
	}
	return note, true
}

// flattenFeed adapts a search-result feed item (fields nested under
// noteCard, user, interactInfo, cover) into a flat candidate record.
// Falls back to the outer record when noteCard is absent or not a map.
func flattenFeed(feed Value) (Value, bool) {
	id := ""
	for _, key := range []string{"id", "note_id", "noteId"} {
		if v, ok := feed.Get(key); ok {
			if s, ok := v.Scalar(); ok {
				id = s
				break
			}
		}
	}
	if id == "" {
		return Value{}, false
	}

	card, ok := feed.Get("noteCard")
	if !ok || card.Kind != KindObject {
		card = feed
	}

	fields := []Field{{Key: "note_id", Value: Str(id)}}
	if title := firstOf(card, "displayTitle", "title"); title != "" {
		fields = append(fields, Field{Key: "title", Value: Str(title)})
	}
	if user, ok := card.Get("user"); ok && user.Kind == KindObject {
		if name := firstOf(user, "nickname", "nickName"); name != "" {
			fields = append(fields, Field{Key: "user_nickname", Value: Str(name)})
		}
	}
	if interact, ok := card.Get("interactInfo"); ok && interact.Kind == KindObject {
		fields = append(fields,
			Field{Key: "liked_count", Value: Str(countOf(interact, "likedCount"))},
			Field{Key: "comment_count", Value: Str(countOf(interact, "commentCount"))},
			Field{Key: "shared_count", Value: Str(countOf(interact, "sharedCount"))},
		)
	}
	if cover, ok := card.Get("cover"); ok && cover.Kind == KindObject {
		if u := firstOf(cover, "urlDefault", "url"); u != "" {
			fields = append(fields, Field{Key: "cover_url", Value: Str(u)})
		}
	}
	if token := firstOf(feed, "xsecToken", "xsec_token"); token != "" {
		fields = append(fields, Field{Key: "xsec_token", Value: Str(token)})
	}
	if t, ok := firstValue(feed, "time", "timestamp"); ok {
		fields = append(fields, Field{Key: "time", Value: t})
	} else if t, ok := card.Get("time"); ok && t.Kind != KindNull {
		fields = append(fields, Field{Key: "time", Value: t})
	}
	// The raw item rides along so OCR and date extraction can still reach
	// fields the adapter does not map.
	fields = append(fields, Field{Key: "raw", Value: feed})
	return Object(fields...), true
}

// flattenDetail adapts a full-fetch record (fields possibly nested under
// note_detail) into a flat candidate record. Falls back to the outer
// record when note_detail is absent or not a map.
func flattenDetail(detail Value) (Value, bool) {
	inner, ok := detail.Get("note_detail")
	if !ok || inner.Kind != KindObject {
		inner = detail
	}

	id := ""
	for _, rec := range []Value{detail, inner} {
		for _, key := range []string{"note_id", "id", "noteId"} {
			if v, ok := rec.Get(key); ok {
				if s, ok := v.Scalar(); ok {
					id = s
					break
				}
			}
		}
		if id != "" {
			break
		}
	}
	if id == "" {
		return Value{}, false
	}

	fields := []Field{{Key: "note_id", Value: Str(id)}}
	if title := firstOf(inner, "title", "display_title", "displayTitle", "note_title"); title != "" {
		fields = append(fields, Field{Key: "title", Value: Str(title)})
	}
	if desc := firstOf(inner, "desc", "description", "note_desc", "content"); desc != "" {
		fields = append(fields, Field{Key: "description", Value: Str(desc)})
	}
	if user, ok := inner.Get("user"); ok && user.Kind == KindObject {
		if name := firstOf(user, "nickname", "nickName"); name != "" {
			fields = append(fields, Field{Key: "user_nickname", Value: Str(name)})
		}
	}
	if t, ok := firstValue(inner, "time", "timestamp", "create_time", "publish_time", "created_at"); ok {
		fields = append(fields, Field{Key: "time", Value: t})
	}
	if texts := imageTexts(inner); len(texts) > 0 {
		items := make([]Value, 0, len(texts))
		for _, t := range texts {
			items = append(items, Str(t))
		}
		fields = append(fields, Field{Key: "image_texts", Value: Value{Kind: KindArray, Items: items}})
	}
	if u := firstOf(inner, "url", "note_url", "share_link", "link"); u != "" {
		fields = append(fields, Field{Key: "url", Value: Str(u)})
	}
	interact, ok := inner.Get("interact_info")
	if !ok || interact.Kind != KindObject {
		interact, ok = inner.Get("interactInfo")
	}
	if ok && interact.Kind == KindObject {
		fields = append(fields,
			Field{Key: "liked_count", Value: Str(firstCountOf(interact, "liked_count", "likedCount"))},
			Field{Key: "comment_count", Value: Str(firstCountOf(interact, "comment_count", "commentCount"))},
			Field{Key: "shared_count", Value: Str(firstCountOf(interact, "shared_count", "sharedCount"))},
		)
	}
	fields = append(fields, Field{Key: "raw", Value: detail})
	return Object(fields...), true
}

// imageTexts pulls per-image OCR strings out of a detail record's images
// array. Each image carries its text either directly (ocr_text,
// image_text, text) or as an infoList of {text|ocr_text} entries.
func imageTexts(inner Value) []string {
	images, ok := inner.Get("images")
	if !ok || images.Kind != KindArray {
		return nil
	}
	var texts []string
	for _, img := range images.Items {
		if img.Kind != KindObject {
			continue
		}
		if s := firstOf(img, "ocr_text", "image_text", "text"); s != "" {
			texts = append(texts, s)
			continue
		}
		info, ok := img.Get("infoList")
		if !ok || info.Kind != KindArray {
			continue
		}
		for _, item := range info.Items {
			switch item.Kind {
			case KindObject:
				if s := firstOf(item, "text", "ocr_text"); s != "" {
					texts = append(texts, s)
				}
			case KindString:
				if s, ok := item.Text(); ok {
					texts = append(texts, s)
				}
			}
		}
	}
	return texts
}

func firstOf(rec Value, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec.Get(key); ok {
			if s, ok := v.Text(); ok {
				return s
			}
		}
	}
	return ""
}

func firstValue(rec Value, keys ...string) (Value, bool) {
	for _, key := range keys {
		if v, ok := rec.Get(key); ok && v.Kind != KindNull {
			return v, true
		}
	}
	return Value{}, false
}

func countOf(rec Value, key string) string {
	if v, ok := rec.Get(key); ok {
		if s, ok := v.Scalar(); ok {
			return s
		}
	}
	return "0"
}

func firstCountOf(rec Value, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec.Get(key); ok {
			if s, ok := v.Scalar(); ok {
				return s
			}
		}
	}
	return "0"
}
