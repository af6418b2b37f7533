package ocr

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ValidateImage checks that the file at path exists and decodes as an
// image header in one of the supported formats (JPEG, PNG, GIF, BMP,
// TIFF, WebP). It reads only the header, not the full pixel data.
func ValidateImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("decoding image %s: %w", path, err)
	}
	return nil
}
