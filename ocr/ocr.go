//go:build ocr

// Package ocr converts stored document images into recognized text.
//
// This package wraps the Tesseract OCR engine via gosseract. It
// requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// The engine is treated as a black box by the rest of the pipeline:
// image path in, recognized text out. Recognize never reports an
// error: a missing, undecodable, or unrecognized image yields the
// empty string, which downstream rendering handles with a placeholder.
package ocr

import (
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for image-to-text recognition.
type Client struct {
	client *gosseract.Client
	logger *slog.Logger
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client, logger: slog.Default()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition.
// Multiple languages can be specified as a "+" separated string
// (e.g., "chi_sim+eng"). Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetLogger replaces the advisory logger. Logging is observability
// only; recognition behavior does not depend on it.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Recognize runs OCR on the image stored at path and returns the
// recognized text with surrounding whitespace trimmed. It returns ""
// (never an error) when the image is missing, cannot be decoded, or
// produces no text.
func (c *Client) Recognize(path string) string {
	if err := ValidateImage(path); err != nil {
		c.logger.Warn("skipping unreadable image", "path", path, "error", err)
		return ""
	}

	if err := c.client.SetImage(path); err != nil {
		c.logger.Warn("failed to load image into OCR engine", "path", path, "error", err)
		return ""
	}

	text, err := c.client.Text()
	if err != nil {
		c.logger.Warn("recognition failed", "path", path, "error", err)
		return ""
	}

	return strings.TrimSpace(text)
}
