//go:build !ocr

// Package ocr converts stored document images into recognized text.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. New returns ErrOCRNotEnabled and images fall through to the
// merge placeholder.
//
// To enable recognition, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"
	"log/slog"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client. Recognize always returns the empty
// string, the same degraded result as a real engine that recognizes
// nothing.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetLogger is a no-op for the stub client.
func (c *Client) SetLogger(logger *slog.Logger) {}

// Recognize returns the empty string; the merge step substitutes its
// placeholder for the image.
func (c *Client) Recognize(path string) string {
	return ""
}
