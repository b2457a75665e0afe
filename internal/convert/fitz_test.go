// Copyright Ogrodnik Labs, 2026. All rights reserved.

package convert

import (
	"strings"
	"testing"
)

func TestScannedPage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty page", "", true},
		{"whitespace only", "  \n\t  \n", true},
		{"page number residue", "  17  ", true},
		{"short watermark", "DRAFT", true},
		{"real paragraph", "Это обычный абзац текста, извлечённый из PDF-файла.", false},
		{"long latin text", strings.Repeat("word ", 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scannedPage(tt.text); got != tt.want {
				t.Errorf("scannedPage(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStripInlineImages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "data uri removed",
			in:   "before ![](data:image/png;base64,iVBORw0KGgo=) after",
			want: "before  after",
		},
		{
			name: "alt text variant removed",
			in:   "![page scan](data:image/jpeg;base64,AAAA)",
			want: "",
		},
		{
			name: "regular image link kept",
			in:   "![figure](figures/plot.png)",
			want: "![figure](figures/plot.png)",
		},
		{
			name: "plain text untouched",
			in:   "# Заголовок\n\nТекст без картинок.",
			want: "# Заголовок\n\nТекст без картинок.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripInlineImages(tt.in); got != tt.want {
				t.Errorf("stripInlineImages(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFitzConverter_DefaultDPI(t *testing.T) {
	cfg := testConfig()
	cfg.OCR = false

	f := NewFitzConverter(cfg)
	defer f.Close()

	if f.cfg.DPI != defaultDPI {
		t.Errorf("DPI = %v, want default %v", f.cfg.DPI, defaultDPI)
	}
	if f.ocr != nil {
		t.Error("OCR session should not be opened when OCR is disabled")
	}
}

// Construction with OCR requested must not open a recognition session:
// the session is deferred to the first scanned page, so text-only
// documents convert even in builds without OCR support.
func TestNewFitzConverter_DeferredOCRSession(t *testing.T) {
	f := NewFitzConverter(testConfig())

	if f.ocr != nil {
		t.Error("OCR session opened before any page needed it")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close with no session: %v", err)
	}
}
