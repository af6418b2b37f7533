package merge

import (
	"fmt"
	"strings"

	"github.com/JavanTang/PicTextify/content"
)

// Category labels a section of aligned output.
type Category string

// Default categories, in display order. CategoryOther is the implicit
// catch-all and is always present even when a caller supplies its own
// category set.
const (
	CategoryTitle   Category = "Title"
	CategoryBody    Category = "Body"
	CategoryCaption Category = "Caption"
	CategoryOther   Category = "Other"
)

// DefaultCategories returns the default category set in display order.
func DefaultCategories() []Category {
	return []Category{CategoryTitle, CategoryBody, CategoryCaption, CategoryOther}
}

// Classifier assigns a content item to a category. Classification is
// per-item: no neighboring context is available or needed. A result
// outside the configured category set lands in CategoryOther.
type Classifier func(content.Item) Category

// AlignOptions configures Align. Zero value means default categories
// and the default classifier.
type AlignOptions struct {
	// Categories in display order. CategoryOther is appended when
	// absent.
	Categories []Category
	// Classify buckets each non-blank item. Defaults to
	// DefaultClassifier.
	Classify Classifier
}

// DefaultClassifier buckets items on payload length and punctuation
// alone; no layout or font metadata is consulted.
//
// Text under 100 runes ending in a sentence terminator (。 . ! ?) is a
// title; text under 200 runes mentioning 图 is a caption; other text
// is body. OCR results are always captions. Images are always other.
func DefaultClassifier(it content.Item) Category {
	switch it.Kind {
	case content.KindText:
		runes := len([]rune(it.Payload))
		trimmed := strings.TrimSpace(it.Payload)
		if runes < 100 && endsWithTerminator(trimmed) {
			return CategoryTitle
		}
		if strings.Contains(it.Payload, "图") && runes < 200 {
			return CategoryCaption
		}
		return CategoryBody
	case content.KindOCRResult:
		return CategoryCaption
	default:
		return CategoryOther
	}
}

// endsWithTerminator reports whether s ends with a sentence-terminal
// punctuation mark, CJK or ASCII.
func endsWithTerminator(s string) bool {
	for _, suffix := range []string{"。", ".", "!", "?"} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// Align regroups ordered content into labeled sections using the
// default categories and classifier.
func Align(items content.List) string {
	return AlignWithOptions(items, AlignOptions{})
}

// AlignWithOptions regroups ordered content into labeled sections.
//
// Each non-blank item is classified once, in original key order.
// Image items are rendered as a bracketed reference to their stored
// handle, never as raw content. For each category in display order
// with at least one member, a "# <category>" heading is emitted
// followed by the members in ascending original-key order; empty
// categories are omitted. Everything is joined with blank lines, and
// empty input yields "". No input can make this fail.
func AlignWithOptions(items content.List, opts AlignOptions) string {
	cats := opts.Categories
	if len(cats) == 0 {
		cats = DefaultCategories()
	} else {
		cats = withCatchAll(cats)
	}
	classify := opts.Classify
	if classify == nil {
		classify = DefaultClassifier
	}

	known := make(map[Category]bool, len(cats))
	for _, c := range cats {
		known[c] = true
	}

	buckets := make(map[Category][]string, len(cats))
	for _, it := range items.Sorted() {
		if it.IsBlank() {
			continue
		}
		cat := classify(it)
		if !known[cat] {
			cat = CategoryOther
		}
		text := it.Payload
		if it.Kind == content.KindImage {
			text = fmt.Sprintf("[图片: %s]", it.Payload)
		}
		buckets[cat] = append(buckets[cat], text)
	}

	var blocks []string
	for _, cat := range cats {
		members := buckets[cat]
		if len(members) == 0 {
			continue
		}
		blocks = append(blocks, "# "+string(cat))
		blocks = append(blocks, members...)
	}
	return strings.Join(blocks, separator)
}

// withCatchAll returns a copy of cats with CategoryOther appended when
// it is not already present.
func withCatchAll(cats []Category) []Category {
	for _, c := range cats {
		if c == CategoryOther {
			return cats
		}
	}
	out := make([]Category, 0, len(cats)+1)
	out = append(out, cats...)
	return append(out, CategoryOther)
}
