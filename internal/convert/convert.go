// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package convert turns PDF files into Markdown through pluggable
// engine backends and handles output placement, frontmatter, and
// statistics reporting. All document understanding lives in the
// engines; this package is plumbing around them.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/ogrodnik/pdf2md/pkg/types"
)

// Converter transforms a PDF file into Markdown. The fitz and pdftext
// backends implement this interface.
type Converter interface {
	// Convert reads the PDF at pdfPath and returns the produced
	// Markdown with page counts.
	Convert(ctx context.Context, pdfPath string) (*Output, error)
}

// Output is an engine result before it is written to disk.
type Output struct {
	// Markdown is the converted document body.
	Markdown string

	// Pages is the page count of the input document.
	Pages int

	// OCRPages counts pages recognized through OCR rather than
	// embedded text.
	OCRPages int
}

// FileResult holds the outcome of converting one file.
type FileResult struct {
	Status     types.ConversionStatus
	InputPath  string
	OutputPath string
	Stats      types.Stats

	// Err carries the failure when Status is ConversionFailed.
	Err error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Results lists the per-file outcomes in input order.
	Results []FileResult
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ValidateInput checks that pdfPath exists and carries a .pdf extension.
func ValidateInput(pdfPath string) error {
	if strings.ToLower(filepath.Ext(pdfPath)) != ".pdf" {
		return fmt.Errorf("input must have a .pdf extension: %s", pdfPath)
	}
	info, err := os.Stat(pdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF file not found: %s", pdfPath)
		}
		return fmt.Errorf("reading %s: %w", pdfPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory, not a PDF: %s", pdfPath)
	}
	return nil
}

// OutputPath returns explicit when set, otherwise the input path with
// its extension replaced by .md.
func OutputPath(pdfPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".md"
}

// ConvertFile converts a single PDF, writing the Markdown to outPath
// (derived from the input when empty). An existing output is skipped
// unless cfg.Force is set. Per-file status and statistics go to w.
func ConvertFile(ctx context.Context, c Converter, pdfPath, outPath string, cfg types.ConversionConfig, w io.Writer) FileResult {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath = OutputPath(pdfPath, outPath)
	res := FileResult{InputPath: pdfPath, OutputPath: outPath}

	if err := ValidateInput(pdfPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		res.Status, res.Err = types.ConversionFailed, err
		return res
	}

	if _, err := os.Stat(outPath); err == nil && !cfg.Force {
		fmt.Fprintf(w, "skipped: %s (output exists, use --force to reconvert)\n", base)
		res.Status = types.ConversionNone
		return res
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			res.Status, res.Err = types.ConversionFailed, err
			return res
		}
	}

	convertStart := time.Now()
	out, err := c.Convert(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		res.Status, res.Err = types.ConversionFailed, err
		return res
	}
	convertDur := time.Since(convertStart)

	exportStart := time.Now()
	content := addFrontmatter(pdfPath, cfg, out.Markdown)
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		res.Status, res.Err = types.ConversionFailed, err
		return res
	}
	exportDur := time.Since(exportStart)

	res.Status = types.ConversionDone
	res.Stats = types.Stats{
		Pages:           out.Pages,
		OCRPages:        out.OCRPages,
		Characters:      utf8.RuneCountInString(out.Markdown),
		OutputBytes:     int64(len(content)),
		ConvertDuration: convertDur,
		ExportDuration:  exportDur,
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	writeStats(w, outPath, res.Stats)

	return res
}

// ConvertBatch processes PDF paths through the converter, printing
// per-file status to w and returning a summary. Output paths are always
// derived from the inputs.
func ConvertBatch(ctx context.Context, c Converter, pdfPaths []string, cfg types.ConversionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		res := ConvertFile(ctx, c, p, "", cfg, w)
		result.Results = append(result.Results, res)
		switch res.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// frontmatter records conversion provenance at the top of the output.
type frontmatter struct {
	Source      string `yaml:"source"`
	Backend     string `yaml:"backend"`
	Language    string `yaml:"language,omitempty"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown.
func addFrontmatter(pdfPath string, cfg types.ConversionConfig, body string) string {
	fm := frontmatter{
		Source:      pdfPath,
		Backend:     string(cfg.Backend),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if cfg.OCR {
		fm.Language = cfg.Language
	}

	data, err := yaml.Marshal(fm)
	if err != nil {
		// Marshalling a flat string struct cannot fail; keep the body.
		return body
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}

// writeStats renders the statistics block for a converted file.
func writeStats(w io.Writer, outPath string, s types.Stats) {
	fmt.Fprintf(w, "  output:     %s\n", outPath)
	fmt.Fprintf(w, "  size:       %s (%d characters)\n",
		humanize.IBytes(uint64(s.OutputBytes)), s.Characters)
	if s.OCRPages > 0 {
		fmt.Fprintf(w, "  pages:      %d (%d via OCR)\n", s.Pages, s.OCRPages)
	} else {
		fmt.Fprintf(w, "  pages:      %d\n", s.Pages)
	}
	fmt.Fprintf(w, "  time:       %s convert, %s export\n",
		s.ConvertDuration.Round(10*time.Millisecond),
		s.ExportDuration.Round(time.Millisecond))
}
