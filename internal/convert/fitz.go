// Copyright Ogrodnik Labs, 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"

	"github.com/ogrodnik/pdf2md/internal/ocr"
	"github.com/ogrodnik/pdf2md/pkg/types"
)

const (
	// defaultDPI is the rasterization resolution for pages sent to OCR.
	// 300 DPI is the Tesseract recommendation for body text.
	defaultDPI = 300

	// minEmbeddedText is the threshold below which a page is treated
	// as scanned: shorter embedded text is usually watermark or page
	// number residue on an image-only page.
	minEmbeddedText = 32
)

// inlineImagePattern matches base64 data-URI images that MuPDF embeds
// in its HTML output. They bloat the Markdown without adding text.
var inlineImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^)]+\)`)

// FitzConverter is the full conversion engine: MuPDF (via go-fitz)
// extracts page structure as HTML, html-to-markdown renders it, and
// pages without usable embedded text are rasterized and recognized
// with Tesseract.
type FitzConverter struct {
	cfg    types.ConversionConfig
	mdconv *md.Converter
	ocr    *ocr.Client // opened lazily by the first page that needs it
}

// NewFitzConverter builds the engine for cfg. The OCR session is not
// opened until a page actually needs recognition, so pure-text
// documents convert even where no OCR runtime is available; callers
// must Close the converter to release the session when one was opened.
func NewFitzConverter(cfg types.ConversionConfig) *FitzConverter {
	if cfg.DPI <= 0 {
		cfg.DPI = defaultDPI
	}

	return &FitzConverter{
		cfg:    cfg,
		mdconv: md.NewConverter("", true, nil),
	}
}

// ocrClient returns the OCR session, opening it on first use.
func (f *FitzConverter) ocrClient() (*ocr.Client, error) {
	if f.ocr != nil {
		return f.ocr, nil
	}

	client, err := ocr.New(f.cfg.TessdataDir)
	if err != nil {
		return nil, fmt.Errorf("opening OCR session: %w", err)
	}
	if err := client.SetLanguage(f.cfg.Language); err != nil {
		client.Close()
		return nil, err
	}
	f.ocr = client
	return f.ocr, nil
}

// Close releases the OCR session.
func (f *FitzConverter) Close() error {
	if f.ocr != nil {
		return f.ocr.Close()
	}
	return nil
}

// Convert opens the PDF and produces Markdown page by page.
func (f *FitzConverter) Convert(ctx context.Context, pdfPath string) (*Output, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	out := &Output{Pages: total}

	var pages []string
	for page := 0; page < total; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text, err := doc.Text(page)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", page+1, err)
		}

		if f.cfg.OCR && scannedPage(text) {
			recognized, err := f.ocrPage(doc, page)
			if err != nil {
				return nil, fmt.Errorf("OCR on page %d: %w", page+1, err)
			}
			out.OCRPages++
			if recognized != "" {
				pages = append(pages, recognized)
			}
			continue
		}

		rendered, err := f.renderPage(doc, page)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", page+1, err)
		}
		if rendered != "" {
			pages = append(pages, rendered)
		}
	}

	out.Markdown = strings.Join(pages, "\n\n") + "\n"
	return out, nil
}

// renderPage extracts a page as HTML and renders it to Markdown.
func (f *FitzConverter) renderPage(doc *fitz.Document, page int) (string, error) {
	html, err := doc.HTML(page, true)
	if err != nil {
		return "", fmt.Errorf("extracting HTML: %w", err)
	}

	text, err := f.mdconv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("rendering Markdown: %w", err)
	}

	return strings.TrimSpace(stripInlineImages(text)), nil
}

// ocrPage rasterizes a page and recognizes its text.
func (f *FitzConverter) ocrPage(doc *fitz.Document, page int) (string, error) {
	client, err := f.ocrClient()
	if err != nil {
		return "", err
	}

	img, err := doc.ImageDPI(page, f.cfg.DPI)
	if err != nil {
		return "", fmt.Errorf("rasterizing: %w", err)
	}

	data, err := ocr.PrepareImage(img)
	if err != nil {
		return "", err
	}

	return client.RecognizeImage(data)
}

// scannedPage reports whether a page carries too little embedded text
// to be useful, indicating a scanned image that needs OCR.
func scannedPage(text string) bool {
	return len(strings.TrimSpace(text)) < minEmbeddedText
}

// stripInlineImages removes base64 data-URI images from Markdown.
func stripInlineImages(content string) string {
	return inlineImagePattern.ReplaceAllString(content, "")
}
