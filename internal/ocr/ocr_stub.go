//go:build !ocr

// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package ocr wraps the Tesseract engine via gosseract for recognizing
// text on rasterized PDF pages.
//
// This is the stub used when the "ocr" build tag is not set; every
// operation returns ErrNotEnabled. Rebuild with the tag to enable OCR:
//
//	go build -tags ocr ./...
//
// Tesseract itself must be installed: "apt-get install tesseract-ocr
// libtesseract-dev" on Debian/Ubuntu, "brew install tesseract" on macOS.
package ocr

// Enabled reports whether OCR support was compiled in.
const Enabled = false

// Client is a stub that fails every operation.
type Client struct{}

// New returns ErrNotEnabled.
func New(tessdataDir string) (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op, safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns ErrNotEnabled.
func (c *Client) SetLanguage(spec string) error {
	return ErrNotEnabled
}

// RecognizeImage returns ErrNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrNotEnabled
}
