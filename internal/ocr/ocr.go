//go:build ocr

// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package ocr wraps the Tesseract engine via gosseract for recognizing
// text on rasterized PDF pages. Tesseract must be installed on the
// system together with the language packs named in the language spec
// (Russian documents need rus.traineddata).
//
// OCR support is compiled in with the "ocr" build tag:
//
//	go build -tags ocr ./...
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether OCR support was compiled in.
const Enabled = true

// Client wraps a Tesseract session. Not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. tessdataDir overrides the engine's language
// pack directory when non-empty. Close the client to release the session.
func New(tessdataDir string) (*Client, error) {
	client := gosseract.NewClient()
	if tessdataDir != "" {
		if err := client.SetTessdataPrefix(tessdataDir); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting tessdata prefix %s: %w", tessdataDir, err)
		}
	}
	return &Client{client: client}, nil
}

// Close releases the Tesseract session.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage configures recognition languages from a "+"-separated
// spec, e.g. "rus+eng".
func (c *Client) SetLanguage(spec string) error {
	langs := strings.Split(spec, "+")
	if err := c.client.SetLanguage(langs...); err != nil {
		return fmt.Errorf("setting OCR language %q: %w", spec, err)
	}
	return nil
}

// RecognizeImage runs OCR on encoded image data (PNG, JPEG, TIFF) and
// returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
