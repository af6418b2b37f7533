// Package pictextify extracts text and images from documents in their
// original reading order, resolves each image to recognized text via
// an OCR engine, and reassembles a single linear text stream that
// preserves the document's sequence.
//
// Basic usage:
//
//	text, err := pictextify.Open("report.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	text, err := pictextify.Open("report.docx").
//	    Language("chi_sim+eng").
//	    ImageDir("/tmp/images").
//	    Text()
//
// Aligned() renders the same content regrouped into titled sections
// (title, body, caption, other) instead of linear order. The
// lower-level content and merge packages are also available for
// callers that bring their own extraction or recognition.
package pictextify

import (
	"github.com/JavanTang/PicTextify/content"
)

// Version is the library version.
const Version = "0.1.0"

// Recognizer converts a stored image into recognized text. It is a
// black box to the pipeline: implementations return the empty string
// (never an error) when the image cannot be opened, decoded, or
// recognized.
type Recognizer interface {
	Recognize(imagePath string) string
}

// Processor extracts ordered content from one document. It must
// assign strictly increasing integer keys in traversal order and
// write extracted image bytes beneath imageDir before returning.
// Unsupported embedded content is skipped; errors are reserved for
// failure to open or parse the document itself.
type Processor interface {
	Process(path, imageDir string) (content.List, []content.ImageRef, error)
}

// Open opens a document and returns an Extractor for fluent
// configuration. Terminal operations (Text, Aligned, Items) run the
// pipeline.
//
// Example:
//
//	text, err := pictextify.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// ExtractFile extracts the linear merged text of a document with
// default options.
func ExtractFile(filename string) (string, error) {
	return Open(filename).Text()
}

// ExtractAligned extracts a document's content regrouped into labeled
// sections with default options.
func ExtractAligned(filename string) (string, error) {
	return Open(filename).Aligned()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in
// scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	text := pictextify.Must(pictextify.Open("document.pdf").Text())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
