// Copyright Ogrodnik Labs, 2026. All rights reserved.

package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// minOCRWidth is the narrowest page raster Tesseract handles reliably;
// anything narrower is upscaled before recognition.
const minOCRWidth = 1200

// PrepareImage converts a rasterized page into PNG bytes suitable for
// OCR: grayscale, upscaled to at least minOCRWidth pixels wide.
// Cyrillic glyph shapes at low resolution confuse Tesseract more than
// Latin ones, so the upscale matters for scanned Russian documents.
func PrepareImage(img image.Image) ([]byte, error) {
	gray := imaging.Grayscale(img)

	if gray.Bounds().Dx() < minOCRWidth {
		gray = imaging.Resize(gray, minOCRWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}
	return buf.Bytes(), nil
}
