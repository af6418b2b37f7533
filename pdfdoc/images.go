package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractImages pulls all embedded images out of the PDF with pdfcpu,
// normalizes them to PNG in imageDir, and groups the resulting paths
// by 1-based page number. Within a page, paths are ordered by the
// extraction filename so repeated runs are deterministic.
func extractImages(pdfPath, imageDir string) (map[int][]string, error) {
	// pdfcpu writes its own filenames; stage into a scratch directory
	// and re-encode into imageDir under stable names.
	stageDir, err := os.MkdirTemp("", "pictextify-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	if err := api.ExtractImagesFile(pdfPath, stageDir, nil, nil); err != nil {
		return nil, fmt.Errorf("extracting images from PDF: %w", err)
	}

	staged, err := collectStagedImages(stageDir)
	if err != nil {
		return nil, err
	}

	result := make(map[int][]string)
	counter := make(map[int]int)
	for _, s := range staged {
		counter[s.page]++
		outPath := filepath.Join(imageDir,
			fmt.Sprintf("page_%d_image_%d.png", s.page, counter[s.page]))

		img, err := imaging.Open(s.path)
		if err != nil {
			// Undecodable image stream; skip it and continue.
			continue
		}
		if err := imaging.Save(img, outPath); err != nil {
			continue
		}
		result[s.page] = append(result[s.page], outPath)
	}
	return result, nil
}

// stagedImage is one file pdfcpu wrote, tagged with its page number.
type stagedImage struct {
	page int
	path string
}

// collectStagedImages walks the staging directory and orders the
// extracted files by page, then by filename.
func collectStagedImages(dir string) ([]stagedImage, error) {
	var staged []stagedImage

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		page, err := parsePageFromFilename(info.Name())
		if err != nil {
			// Not an extracted page image; ignore.
			return nil
		}
		staged = append(staged, stagedImage{page: page, path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(staged, func(i, j int) bool {
		if staged[i].page != staged[j].page {
			return staged[i].page < staged[j].page
		}
		return staged[i].path < staged[j].path
	})
	return staged, nil
}

// parsePageFromFilename extracts the page number from a pdfcpu
// extraction filename of the form <basename>_<page>_<resource>.<ext>.
// The basename may itself contain underscores, so the first numeric
// segment wins.
func parsePageFromFilename(filename string) (int, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, part := range strings.Split(base, "_") {
		if page, err := strconv.Atoi(part); err == nil && page > 0 {
			return page, nil
		}
	}
	return 0, errors.New("no page number in filename")
}
