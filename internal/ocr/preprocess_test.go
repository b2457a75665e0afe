// Copyright Ogrodnik Labs, 2026. All rights reserved.

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testImage builds a white image with a black band, wide enough to carry
// some structure through the grayscale/resize pipeline.
func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if y > h/3 && y < h/2 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPrepareImage(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		wantWidth int
	}{
		{"narrow page upscaled", 600, 800, minOCRWidth},
		{"wide page untouched", 2400, 3200, 2400},
		{"exactly at threshold", minOCRWidth, 1600, minOCRWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := PrepareImage(testImage(tt.width, tt.height))
			if err != nil {
				t.Fatalf("PrepareImage: %v", err)
			}

			decoded, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("output is not valid PNG: %v", err)
			}
			if got := decoded.Bounds().Dx(); got != tt.wantWidth {
				t.Errorf("width = %d, want %d", got, tt.wantWidth)
			}
		})
	}
}

func TestPrepareImagePreservesAspect(t *testing.T) {
	data, err := PrepareImage(testImage(600, 900))
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != minOCRWidth {
		t.Fatalf("width = %d, want %d", b.Dx(), minOCRWidth)
	}
	// 600x900 scaled to 1200 wide keeps the 2:3 ratio.
	if b.Dy() != minOCRWidth*3/2 {
		t.Errorf("height = %d, want %d", b.Dy(), minOCRWidth*3/2)
	}
}
