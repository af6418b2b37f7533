// Package content defines the ordered-content model shared by the
// format extractors, the OCR adapter, and the merge engine.
//
// Extracted document content is represented as a flat sequence of
// items, each tagged with a numeric ordering key that establishes its
// position in reading order. Keys assigned by extractors are strictly
// increasing integers; recognized text for an image is spliced in
// later at a fractional key so a single sort restores reading order
// without renumbering anything.
package content

import "strings"

// Kind identifies what a content item carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
	KindOCRResult
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindOCRResult:
		return "OcrResult"
	default:
		return "Unknown"
	}
}

// Item is the atomic unit of extracted document content.
//
// Payload holds extracted or recognized text for KindText and
// KindOCRResult. For KindImage it holds an opaque handle to the stored
// image bytes (a file path); the bytes themselves are never carried.
type Item struct {
	Key     float64
	Kind    Kind
	Payload string
}

// Text returns a text item at the given key.
func Text(key float64, text string) Item {
	return Item{Key: key, Kind: KindText, Payload: text}
}

// Image returns an image item whose payload is a handle to stored
// image bytes.
func Image(key float64, path string) Item {
	return Item{Key: key, Kind: KindImage, Payload: path}
}

// OCRResult returns a recognized-text item at the given key.
func OCRResult(key float64, text string) Item {
	return Item{Key: key, Kind: KindOCRResult, Payload: text}
}

// IsBlank reports whether the item's payload is empty or
// whitespace-only.
func (it Item) IsBlank() bool {
	return strings.TrimSpace(it.Payload) == ""
}

// ImageRef pairs an image item's ordering key with the path of its
// stored bytes. Extractors produce one per extracted image; the OCR
// step consumes them. No other metadata is carried.
type ImageRef struct {
	Key  float64
	Path string
}
