// Package pdfdoc extracts ordered text and image content from PDF
// documents.
//
// Vector text is read page by page with dslipak/pdf; embedded images
// are pulled out with pdfcpu and re-encoded as PNG. Traversal order
// fixes the ordering keys: for each page, the page's text, then the
// page's images. Keys are strictly increasing integers.
package pdfdoc

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/JavanTang/PicTextify/content"
)

// Processor extracts ordered content from PDF files.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a PDF processor. A nil logger means
// slog.Default().
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// Process extracts text and images from the PDF file at pdfPath,
// writing image bytes into imageDir before returning. It returns the
// ordered content list and one ImageRef per extracted image.
//
// Pages whose text cannot be read are skipped with a warning; an error
// is returned only when the document itself cannot be opened.
func (p *Processor) Process(pdfPath, imageDir string) (content.List, []content.ImageRef, error) {
	if imageDir == "" {
		return nil, nil, fmt.Errorf("image output directory is required")
	}
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating image directory: %w", err)
	}

	reader, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening PDF %q: %w", pdfPath, err)
	}
	totalPages := reader.NumPage()
	p.logger.Debug("opened PDF", "path", pdfPath, "pages", totalPages)

	// Image extraction failing (encrypted streams, exotic filters) must
	// not sink the text pass.
	imagesByPage, err := extractImages(pdfPath, imageDir)
	if err != nil {
		p.logger.Warn("image extraction failed, continuing with text only",
			"path", pdfPath, "error", err)
		imagesByPage = nil
	}

	var (
		items content.List
		refs  []content.ImageRef
		key   float64
	)

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := p.pageText(reader, pageNum)
		if err != nil {
			p.logger.Warn("skipping unreadable page", "page", pageNum, "error", err)
		} else if strings.TrimSpace(text) != "" {
			items.Append(content.Text(key, text))
			key++
		}

		for _, imgPath := range imagesByPage[pageNum] {
			items.Append(content.Image(key, imgPath))
			refs = append(refs, content.ImageRef{Key: key, Path: imgPath})
			key++
		}
	}

	p.logger.Info("PDF extraction complete",
		"path", pdfPath, "items", len(items), "images", len(refs))
	return items, refs, nil
}

// pageText extracts the text of one page, row by row, falling back to
// plain-text extraction when row information is unavailable.
func (p *Processor) pageText(reader *pdf.Reader, pageNum int) (string, error) {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is null", pageNum)
	}

	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var sb strings.Builder
		for i, row := range rows {
			if i > 0 {
				sb.WriteString("\n")
			}
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
		}
		return sb.String(), nil
	}

	fonts := make(map[string]*pdf.Font)
	plain, err := page.GetPlainText(fonts)
	if err != nil {
		return "", fmt.Errorf("extracting page %d text: %w", pageNum, err)
	}
	return plain, nil
}
