// Package merge collapses ordered content into final output text.
//
// Two renderings are provided: Merge reconstructs the document
// linearly in reading order, substituting recognized text for images
// where OCR succeeded; Align regroups content into labeled sections
// (title, body, caption, other) using a simple shape heuristic.
//
// Both are pure functions over their input. Malformed or empty input
// degrades to empty output; nothing in this package returns an error.
package merge

import (
	"strings"

	"github.com/JavanTang/PicTextify/content"
)

// Placeholder is emitted for an image whose content could not be
// recognized.
const Placeholder = "[图片内容无法识别]"

// separator joins emitted blocks with one blank line.
const separator = "\n\n"

// Merge reconstructs the document text in reading order.
//
// Input need not be pre-sorted; items are sorted by key internally.
// Text payloads are emitted verbatim (blank ones dropped). An image is
// replaced by its recognized text when an OCR result is attached, at
// the image's exact key or at key+0.5, and by Placeholder otherwise.
// Both attachment conventions are honored. OCR results
// themselves are never emitted directly, so no text appears twice.
// Blocks are joined with a blank line; empty input yields "".
func Merge(items content.List) string {
	if len(items) == 0 {
		return ""
	}
	sorted := items.Sorted()
	ocrText := mapOCRToImages(sorted)

	var blocks []string
	for _, it := range sorted {
		switch it.Kind {
		case content.KindText:
			if !it.IsBlank() {
				blocks = append(blocks, it.Payload)
			}
		case content.KindImage:
			if text, ok := ocrText[it.Payload]; ok {
				blocks = append(blocks, text)
			} else {
				blocks = append(blocks, Placeholder)
			}
		case content.KindOCRResult:
			// Recognized text reaches the output through its source
			// image above; emitting it here would duplicate it.
		}
	}
	return strings.Join(blocks, separator)
}

// mapOCRToImages maps each image payload handle to the recognized text
// attached to it. An OCR result belongs to an image when it shares the
// image's key exactly, or sits at the image's key plus OCRKeyOffset.
func mapOCRToImages(sorted content.List) map[string]string {
	imageAt := make(map[float64]string)
	for _, it := range sorted {
		if it.Kind == content.KindImage {
			imageAt[it.Key] = it.Payload
		}
	}

	ocrText := make(map[string]string)
	for _, it := range sorted {
		if it.Kind != content.KindOCRResult || it.IsBlank() {
			continue
		}
		if path, ok := imageAt[it.Key]; ok {
			ocrText[path] = it.Payload
			continue
		}
		if path, ok := imageAt[it.Key-content.OCRKeyOffset]; ok {
			ocrText[path] = it.Payload
		}
	}
	return ocrText
}
