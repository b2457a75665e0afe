// Copyright Ogrodnik Labs, 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PdftextConverter extracts embedded text only, without layout analysis
// or OCR. It produces nothing useful from scanned documents but needs
// no external engine, which makes it the fallback backend.
type PdftextConverter struct{}

// NewPdftextConverter creates the plain-text backend.
func NewPdftextConverter() *PdftextConverter {
	return &PdftextConverter{}
}

// Convert reads the embedded text of every page.
func (p *PdftextConverter) Convert(ctx context.Context, pdfPath string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("reading text from %s: %w", pdfPath, err)
	}

	return &Output{
		Markdown: buf.String(),
		Pages:    r.NumPage(),
	}, nil
}
