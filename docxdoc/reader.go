// Package docxdoc extracts ordered text and image content from DOCX
// (Office Open XML) documents.
//
// Traversal order fixes the ordering keys: paragraph by paragraph
// (paragraph text, then any images the paragraph references inline),
// then table by table, then any embedded images never referenced from
// a paragraph. Keys are strictly increasing integers.
package docxdoc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/JavanTang/PicTextify/content"
)

// Processor extracts ordered content from DOCX files.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a DOCX processor. A nil logger means
// slog.Default().
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// Process extracts text and images from the DOCX file at docxPath,
// writing image bytes into imageDir before returning. It returns the
// ordered content list and one ImageRef per extracted image.
//
// Unsupported embedded content is skipped, never fatal; an error is
// returned only when the document itself cannot be opened or parsed.
func (p *Processor) Process(docxPath, imageDir string) (content.List, []content.ImageRef, error) {
	if imageDir == "" {
		return nil, nil, fmt.Errorf("image output directory is required")
	}
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating image directory: %w", err)
	}

	zr, err := zip.OpenReader(docxPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening DOCX archive: %w", err)
	}
	defer zr.Close()

	doc, err := parseDocument(&zr.Reader)
	if err != nil {
		return nil, nil, err
	}

	rels := parseRelationships(&zr.Reader)
	imageMap, relOrder := p.saveImages(&zr.Reader, rels, imageDir)
	p.logger.Debug("extracted image parts", "path", docxPath, "count", len(imageMap))

	var (
		items      content.List
		refs       []content.ImageRef
		key        float64
		referenced = make(map[string]bool)
	)

	addImage := func(imgPath string) {
		items.Append(content.Image(key, imgPath))
		refs = append(refs, content.ImageRef{Key: key, Path: imgPath})
		key++
	}

	// Paragraphs: text first, then the paragraph's inline images.
	for _, para := range doc.Body.Paragraphs {
		text, relIDs := flattenParagraph(para)
		if strings.TrimSpace(text) != "" {
			items.Append(content.Text(key, text))
			key++
		}
		for _, relID := range relIDs {
			imgPath, ok := imageMap[relID]
			if !ok {
				p.logger.Warn("image relationship not found", "rel_id", relID)
				continue
			}
			referenced[relID] = true
			addImage(imgPath)
		}
	}

	// Tables: each table collapses to one text item.
	for _, tbl := range doc.Body.Tables {
		text := flattenTable(tbl)
		if strings.TrimSpace(text) != "" {
			items.Append(content.Text(key, text))
			key++
		}
	}

	// Images present in the package but never referenced inline
	// (floating images, header/footer art) still get a position, after
	// everything else, in relationship order.
	for _, relID := range relOrder {
		if !referenced[relID] {
			addImage(imageMap[relID])
		}
	}

	p.logger.Info("DOCX extraction complete",
		"path", docxPath, "items", len(items), "images", len(refs))
	return items, refs, nil
}

// parseDocument reads and unmarshals word/document.xml.
func parseDocument(zr *zip.Reader) (*documentXML, error) {
	data, err := fileContent(zr, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("missing word/document.xml: %w", err)
	}
	doc := &documentXML{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	if doc.Body == nil {
		doc.Body = &bodyXML{}
	}
	return doc, nil
}

// parseRelationships reads the main document relationships. The file
// is optional; absence just means no embedded images.
func parseRelationships(zr *zip.Reader) *relationshipsXML {
	rels := &relationshipsXML{}
	data, err := fileContent(zr, "word/_rels/document.xml.rels")
	if err != nil {
		return rels
	}
	xml.Unmarshal(data, rels)
	return rels
}

// saveImages writes every internal image part to imageDir and returns
// a relationship-ID-to-path map plus the IDs in relationship order.
func (p *Processor) saveImages(zr *zip.Reader, rels *relationshipsXML, imageDir string) (map[string]string, []string) {
	imageMap := make(map[string]string)
	var order []string

	for _, rel := range rels.Relationships {
		if rel.Type != imageRelType || rel.TargetMode == "External" {
			continue
		}

		target := path.Clean(rel.Target)
		if !strings.HasPrefix(target, "word/") {
			target = path.Join("word", target)
		}

		data, err := fileContent(zr, target)
		if err != nil {
			p.logger.Warn("image part missing from archive", "rel_id", rel.ID, "target", target)
			continue
		}

		ext := path.Ext(target)
		if ext == "" {
			ext = ".png"
		}
		imgPath := filepath.Join(imageDir, "image_"+rel.ID+ext)
		if err := os.WriteFile(imgPath, data, 0o644); err != nil {
			p.logger.Warn("failed to write image", "path", imgPath, "error", err)
			continue
		}

		imageMap[rel.ID] = imgPath
		order = append(order, rel.ID)
	}
	return imageMap, order
}

// fileContent reads one file from the ZIP archive.
func fileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// flattenParagraph extracts a paragraph's text and the relationship
// IDs of any images its runs reference.
func flattenParagraph(para paragraphXML) (string, []string) {
	var (
		parts  []string
		relIDs []string
	)

	collect := func(run runXML) {
		parts = append(parts, flattenRun(run))
		for _, d := range run.Drawing {
			if d.Inline != nil && d.Inline.Blip != nil && d.Inline.Blip.Embed != "" {
				relIDs = append(relIDs, d.Inline.Blip.Embed)
			}
			if d.Anchor != nil && d.Anchor.Blip != nil && d.Anchor.Blip.Embed != "" {
				relIDs = append(relIDs, d.Anchor.Blip.Embed)
			}
		}
	}

	for _, run := range para.Runs {
		collect(run)
	}
	for _, link := range para.Hyperlinks {
		for _, run := range link.Runs {
			collect(run)
		}
	}

	return strings.Join(parts, ""), relIDs
}

// flattenRun extracts text from a run element.
func flattenRun(run runXML) string {
	var parts []string

	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}

	for range run.Tabs {
		parts = append(parts, "\t")
	}

	for _, br := range run.Breaks {
		if br.Type == "page" {
			parts = append(parts, "\n\n")
		} else {
			parts = append(parts, "\n")
		}
	}

	return strings.Join(parts, "")
}

// flattenTable joins all non-blank cell paragraph texts with newlines,
// row by row.
func flattenTable(tbl tableXML) string {
	var lines []string
	for _, row := range tbl.Rows {
		for _, cell := range row.Cells {
			for _, para := range cell.Paragraphs {
				text, _ := flattenParagraph(para)
				if strings.TrimSpace(text) != "" {
					lines = append(lines, text)
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}
