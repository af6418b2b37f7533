package pictextify

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JavanTang/PicTextify/content"
	"github.com/JavanTang/PicTextify/docxdoc"
	"github.com/JavanTang/PicTextify/format"
	"github.com/JavanTang/PicTextify/htmldoc"
	"github.com/JavanTang/PicTextify/merge"
	"github.com/JavanTang/PicTextify/ocr"
	"github.com/JavanTang/PicTextify/pdfdoc"
)

// Extractor provides a fluent interface for extracting ordered content
// from PDF, DOCX, and HTML files. Each configuration method returns a
// new Extractor instance, making it safe for concurrent use and
// allowing method chaining.
type Extractor struct {
	filename string
	options  ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options, so each chain method returns an independent instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// ImageDir sets the directory extracted images are written to. When
// unset, a temporary directory is used and removed after the run.
func (e *Extractor) ImageDir(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.imageDir = dir
	return newExt
}

// Language sets the OCR language hint, e.g. "eng" or "chi_sim+eng".
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// WithRecognizer replaces the built-in OCR engine. Passing nil
// restores the built-in engine.
func (e *Extractor) WithRecognizer(r Recognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// Categories overrides the alignment category set used by Aligned().
func (e *Extractor) Categories(cats ...merge.Category) *Extractor {
	newExt := e.clone()
	newExt.options.categories = cats
	return newExt
}

// Classify overrides the alignment classification heuristic used by
// Aligned().
func (e *Extractor) Classify(c merge.Classifier) *Extractor {
	newExt := e.clone()
	newExt.options.classify = c
	return newExt
}

// Logger sets the advisory logger for the run. Logging never affects
// output.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	if logger != nil {
		newExt.options.logger = logger
	}
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Text extracts the document and returns its merged linear text:
// content in reading order, images replaced by their recognized text
// where OCR succeeded and by a placeholder otherwise.
func (e *Extractor) Text() (string, error) {
	items, err := e.Items()
	if err != nil {
		return "", err
	}
	return merge.Merge(items), nil
}

// Aligned extracts the document and returns its content regrouped
// into labeled sections (title, body, caption, other by default).
func (e *Extractor) Aligned() (string, error) {
	items, err := e.Items()
	if err != nil {
		return "", err
	}
	return merge.AlignWithOptions(items, merge.AlignOptions{
		Categories: e.options.categories,
		Classify:   e.options.classify,
	}), nil
}

// Items extracts the document and returns the ordered content list
// with OCR results already spliced in at fractional keys. Library
// callers can feed the list to merge.Merge, merge.Align, or their own
// rendering.
func (e *Extractor) Items() (content.List, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	logger := e.options.logger

	imageDir := e.options.imageDir
	if imageDir == "" {
		tempDir, err := os.MkdirTemp("", "pictextify-*")
		if err != nil {
			return nil, fmt.Errorf("creating temp image directory: %w", err)
		}
		defer func() { _ = os.RemoveAll(tempDir) }()
		imageDir = tempDir
	}

	proc, detected, err := e.processorFor(logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("detected format", "file", e.filename, "format", detected)

	items, refs, err := proc.Process(e.filename, imageDir)
	if err != nil {
		return nil, err
	}

	e.recognizeImages(&items, refs, logger)

	items.Sort()
	return items, nil
}

// processorFor picks the extractor for the file's detected format.
func (e *Extractor) processorFor(logger *slog.Logger) (Processor, format.Format, error) {
	detected, err := format.DetectFile(e.filename)
	if err != nil {
		return nil, format.Unknown, err
	}

	switch detected {
	case format.PDF:
		return pdfdoc.NewProcessor(logger), detected, nil
	case format.DOCX:
		return docxdoc.NewProcessor(logger), detected, nil
	case format.HTML:
		return htmldoc.NewProcessor(logger), detected, nil
	default:
		return nil, detected, fmt.Errorf("unsupported file type for %q: only PDF, DOCX and HTML are supported", e.filename)
	}
}

// recognizeImages runs OCR over each extracted image reference and
// splices non-blank results back into the list at key+0.5. Images are
// processed strictly in sequence; an image whose recognition fails or
// comes back blank simply has no OCR item attached.
func (e *Extractor) recognizeImages(items *content.List, refs []content.ImageRef, logger *slog.Logger) {
	if len(refs) == 0 {
		return
	}

	rec := e.options.recognizer
	if rec == nil {
		client, err := ocr.New()
		if err != nil {
			// Recognition unavailable (stub build or engine failure);
			// merge renders placeholders for every image.
			logger.Warn("OCR unavailable, images will not be recognized", "error", err)
			return
		}
		defer func() { _ = client.Close() }()
		client.SetLogger(logger)
		if e.options.language != "" {
			if err := client.SetLanguage(e.options.language); err != nil {
				logger.Warn("failed to set OCR language", "language", e.options.language, "error", err)
			}
		}
		rec = client
	}

	for _, ref := range refs {
		text := rec.Recognize(ref.Path)
		if items.AttachOCR(ref.Key, text) {
			logger.Debug("attached OCR result", "key", ref.Key, "path", ref.Path, "chars", len(text))
		} else {
			logger.Warn("empty OCR result", "key", ref.Key, "path", ref.Path)
		}
	}
}
