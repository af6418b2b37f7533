// Package htmldoc extracts ordered text and image content from HTML
// documents.
//
// Block-level elements become text items in document order; <img> tags
// whose src resolves to a local file are copied into the image output
// directory and become image items. Keys are strictly increasing
// integers in traversal order.
package htmldoc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/JavanTang/PicTextify/content"
)

// Processor extracts ordered content from HTML files.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates an HTML processor. A nil logger means
// slog.Default().
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// Process extracts text and images from the HTML file at htmlPath,
// copying local image files into imageDir before returning. It
// returns the ordered content list and one ImageRef per copied image.
//
// Remote or missing images are skipped, never fatal; an error is
// returned only when the document itself cannot be opened or parsed.
func (p *Processor) Process(htmlPath, imageDir string) (content.List, []content.ImageRef, error) {
	if imageDir == "" {
		return nil, nil, fmt.Errorf("image output directory is required")
	}
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating image directory: %w", err)
	}

	f, err := os.Open(htmlPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening HTML file: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &walker{
		logger:   p.logger,
		baseDir:  filepath.Dir(htmlPath),
		imageDir: imageDir,
	}

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	w.traverse(body)

	p.logger.Info("HTML extraction complete",
		"path", htmlPath, "items", len(w.items), "images", len(w.refs))
	return w.items, w.refs, nil
}

// walker accumulates ordered content while traversing the DOM.
type walker struct {
	logger   *slog.Logger
	baseDir  string
	imageDir string

	items    content.List
	refs     []content.ImageRef
	key      float64
	imgCount int
}

// blockElements terminate traversal and emit one text item each.
var blockElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "blockquote": true, "pre": true,
	"td": true, "th": true, "figcaption": true,
}

// skipElements contribute no content.
var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"head": true, "nav": true, "iframe": true,
}

func (w *walker) traverse(n *html.Node) {
	if n.Type == html.ElementNode {
		if skipElements[n.Data] {
			return
		}

		if n.Data == "img" {
			w.addImage(n)
			return
		}

		if blockElements[n.Data] {
			// Images nested inside the block still need their own
			// position, after the block's text.
			text := strings.TrimSpace(textContent(n))
			if text != "" {
				w.items.Append(content.Text(w.key, text))
				w.key++
			}
			w.addNestedImages(n)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.traverse(c)
	}
}

// addNestedImages emits image items for <img> descendants of a block
// element already emitted as text.
func (w *walker) addNestedImages(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "img" {
		w.addImage(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.addNestedImages(c)
	}
}

// addImage copies a locally-referenced image into the image directory
// and emits an image item for it. Remote URLs and unreadable files are
// skipped.
func (w *walker) addImage(n *html.Node) {
	src := attrValue(n, "src")
	if src == "" || strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return
	}

	srcPath := src
	if !filepath.IsAbs(srcPath) {
		srcPath = filepath.Join(w.baseDir, srcPath)
	}

	w.imgCount++
	ext := filepath.Ext(srcPath)
	if ext == "" {
		ext = ".png"
	}
	dstPath := filepath.Join(w.imageDir, fmt.Sprintf("image_%d%s", w.imgCount, ext))

	if err := copyFile(srcPath, dstPath); err != nil {
		w.logger.Warn("skipping unreadable image", "src", src, "error", err)
		w.imgCount--
		return
	}

	w.items.Append(content.Image(w.key, dstPath))
	w.refs = append(w.refs, content.ImageRef{Key: w.key, Path: dstPath})
	w.key++
}

// findElement locates the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent collects all descendant text, whitespace-normalized.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// copyFile copies src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
