package merge

import (
	"strings"
	"testing"

	"github.com/JavanTang/PicTextify/content"
)

// ============================================================================
// Classifier Tests
// ============================================================================

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name string
		item content.Item
		want Category
	}{
		{
			"short sentence with CJK terminator",
			content.Text(0, strings.Repeat("短", 19)+"。"),
			CategoryTitle,
		},
		{
			"short sentence with ascii period",
			content.Text(0, "A short heading."),
			CategoryTitle,
		},
		{
			"short sentence with question mark",
			content.Text(0, "Is this a title?"),
			CategoryTitle,
		},
		{
			"short text without terminator",
			content.Text(0, "no punctuation here"),
			CategoryBody,
		},
		{
			"150 runes containing figure marker",
			content.Text(0, strings.Repeat("字", 149)+"图"),
			CategoryCaption,
		},
		{
			"200 runes containing figure marker is body",
			content.Text(0, strings.Repeat("字", 199)+"图"),
			CategoryBody,
		},
		{
			"300 runes plain text",
			content.Text(0, strings.Repeat("长", 300)),
			CategoryBody,
		},
		{
			"99 runes with terminator is title",
			content.Text(0, strings.Repeat("短", 98)+"。"),
			CategoryTitle,
		},
		{
			"100 runes with terminator is body",
			content.Text(0, strings.Repeat("短", 99)+"。"),
			CategoryBody,
		},
		{
			"ocr result is always caption",
			content.OCRResult(0, strings.Repeat("很长的识别文本", 100)),
			CategoryCaption,
		},
		{
			"image is always other",
			content.Image(0, "/tmp/fig.png"),
			CategoryOther,
		},
		{
			"unknown kind is other",
			content.Item{Kind: content.KindUnknown, Payload: "mystery"},
			CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultClassifier(tt.item); got != tt.want {
				t.Errorf("DefaultClassifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Align Tests
// ============================================================================

func TestAlignEmptyInput(t *testing.T) {
	if got := Align(nil); got != "" {
		t.Errorf("Align(nil) = %q, want empty", got)
	}
	if got := Align(content.List{content.Text(0, "   ")}); got != "" {
		t.Errorf("Align(blank only) = %q, want empty", got)
	}
}

func TestAlignTitleAndCaptionSections(t *testing.T) {
	items := content.List{
		content.Text(1, "haha。"),
		content.OCRResult(2, "在中国作家协会第九次全国代表大会上的讲话"),
	}

	want := "# Title\n\nhaha。\n\n# Caption\n\n在中国作家协会第九次全国代表大会上的讲话"
	if got := Align(items); got != want {
		t.Errorf("Align() = %q, want %q", got, want)
	}
}

func TestAlignSectionDisplayOrder(t *testing.T) {
	// Input order is caption, other, body, title; output sections must
	// come out Title, Body, Caption, Other regardless.
	items := content.List{
		content.OCRResult(0, "caption text"),
		content.Image(1, "/tmp/fig.png"),
		content.Text(2, strings.Repeat("body ", 40)),
		content.Text(3, "The title."),
	}

	got := Align(items)
	idxTitle := strings.Index(got, "# Title")
	idxBody := strings.Index(got, "# Body")
	idxCaption := strings.Index(got, "# Caption")
	idxOther := strings.Index(got, "# Other")

	for name, idx := range map[string]int{
		"Title": idxTitle, "Body": idxBody, "Caption": idxCaption, "Other": idxOther,
	} {
		if idx < 0 {
			t.Fatalf("missing section %s in %q", name, got)
		}
	}
	if !(idxTitle < idxBody && idxBody < idxCaption && idxCaption < idxOther) {
		t.Errorf("sections out of order in %q", got)
	}
}

func TestAlignOmitsEmptySections(t *testing.T) {
	items := content.List{
		content.Text(0, strings.Repeat("正文内容", 80)),
	}

	got := Align(items)
	if strings.Contains(got, "# Title") || strings.Contains(got, "# Caption") || strings.Contains(got, "# Other") {
		t.Errorf("empty sections emitted: %q", got)
	}
	if !strings.HasPrefix(got, "# Body") {
		t.Errorf("Align() = %q, want body section only", got)
	}
}

func TestAlignRendersImageAsBracketedReference(t *testing.T) {
	items := content.List{
		content.Image(0, "/tmp/page_1_image_1.png"),
	}

	want := "# Other\n\n[图片: /tmp/page_1_image_1.png]"
	if got := Align(items); got != want {
		t.Errorf("Align() = %q, want %q", got, want)
	}
}

func TestAlignKeepsKeyOrderWithinSection(t *testing.T) {
	items := content.List{
		content.Text(3, "Second title."),
		content.Text(1, "First title."),
	}

	want := "# Title\n\nFirst title.\n\nSecond title."
	if got := Align(items); got != want {
		t.Errorf("Align() = %q, want %q", got, want)
	}
}

func TestAlignWithCustomCategories(t *testing.T) {
	const CategoryQuote = Category("Quote")

	items := content.List{
		content.Text(0, "A quote."),
		content.Image(1, "/tmp/fig.png"),
	}

	opts := AlignOptions{
		Categories: []Category{CategoryQuote},
		Classify: func(it content.Item) Category {
			if it.Kind == content.KindText {
				return CategoryQuote
			}
			return CategoryOther
		},
	}

	got := AlignWithOptions(items, opts)
	if !strings.Contains(got, "# Quote") {
		t.Errorf("missing custom section: %q", got)
	}
	// The catch-all bucket is always available even when the caller
	// does not list it.
	if !strings.Contains(got, "# Other") {
		t.Errorf("missing implicit catch-all section: %q", got)
	}
}

func TestAlignClassifierOutsideCategorySetLandsInOther(t *testing.T) {
	items := content.List{content.Text(0, "stray text")}

	opts := AlignOptions{
		Classify: func(content.Item) Category { return Category("Nonexistent") },
	}

	want := "# Other\n\nstray text"
	if got := AlignWithOptions(items, opts); got != want {
		t.Errorf("AlignWithOptions() = %q, want %q", got, want)
	}
}

func TestAlignIdempotent(t *testing.T) {
	items := content.List{
		content.Text(0, "Title one."),
		content.Text(1, strings.Repeat("body text ", 30)),
		content.Image(2, "/tmp/fig.png"),
		content.OCRResult(2.5, "figure caption"),
	}

	first := Align(items)
	second := Align(items)
	if first != second {
		t.Errorf("Align not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}
