package pictextify

import (
	"log/slog"

	"github.com/JavanTang/PicTextify/merge"
)

// ExtractOptions holds configuration for an extraction run.
type ExtractOptions struct {
	// imageDir is where extracted image bytes are written. Empty means
	// a temporary directory, removed when the run completes.
	imageDir string

	// language is the OCR language hint, e.g. "eng" or "chi_sim+eng".
	// Empty means the engine default.
	language string

	// recognizer overrides the built-in OCR engine. nil means the
	// built-in engine when compiled in, otherwise no recognition.
	recognizer Recognizer

	// categories overrides the alignment category set. nil means the
	// defaults.
	categories []merge.Category

	// classify overrides the alignment classifier. nil means the
	// default heuristic.
	classify merge.Classifier

	// logger receives advisory diagnostics. Never affects output.
	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		logger: slog.Default(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		imageDir:   o.imageDir,
		language:   o.language,
		recognizer: o.recognizer,
		classify:   o.classify,
		logger:     o.logger,
	}

	if o.categories != nil {
		newOpts.categories = make([]merge.Category, len(o.categories))
		copy(newOpts.categories, o.categories)
	}

	return newOpts
}
