// Copyright Ogrodnik Labs, 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ogrodnik/pdf2md/internal/convert"
	"github.com/ogrodnik/pdf2md/internal/device"
	"github.com/ogrodnik/pdf2md/internal/history"
	"github.com/ogrodnik/pdf2md/internal/ocr"
	"github.com/ogrodnik/pdf2md/internal/tessdata"
	"github.com/ogrodnik/pdf2md/pkg/types"
)

const (
	defaultLanguage     = "rus+eng"
	defaultFetchTimeout = 5 * time.Minute
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf> [more.pdf...]",
	Short: "Convert PDF files to Markdown",
	Long: `Convert transforms PDF files into Markdown. The default fitz backend
preserves document structure through MuPDF and recognizes scanned pages
with Tesseract OCR (Russian and English by default); the pdftext backend
extracts embedded text only.

The output path defaults to the input path with the extension replaced
by .md. Missing OCR language packs are fetched automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output Markdown path (single input only; default: input with .md extension)")
	convertCmd.Flags().String("backend", string(types.BackendFitz), "conversion backend: fitz or pdftext")
	convertCmd.Flags().String("lang", "", "OCR languages, \"+\"-separated (default rus+eng)")
	convertCmd.Flags().Bool("ocr", true, "recognize scanned pages with Tesseract")
	convertCmd.Flags().Float64("dpi", 0, "rasterization DPI for OCR pages (default 300)")
	convertCmd.Flags().Bool("force", false, "reconvert even when the output file exists")
	convertCmd.Flags().String("tessdata-dir", "", "Tesseract language data directory")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the conversion ledger")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "" && len(args) > 1 {
		return fmt.Errorf("-o/--output requires a single input file, got %d", len(args))
	}

	backend, _ := cmd.Flags().GetString("backend")
	if !types.ConversionBackend(backend).Valid() {
		return fmt.Errorf("unknown backend %q (use %s or %s)", backend, types.BackendFitz, types.BackendPdftext)
	}

	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = viper.GetString("language")
	}
	if lang == "" {
		lang = defaultLanguage
	}

	dpi, _ := cmd.Flags().GetFloat64("dpi")
	ocrEnabled, _ := cmd.Flags().GetBool("ocr")
	force, _ := cmd.Flags().GetBool("force")

	tessdataDir, _ := cmd.Flags().GetString("tessdata-dir")
	if tessdataDir == "" {
		tessdataDir = viper.GetString("tessdata_dir")
	}
	tessdataDir = tessdata.Resolve(tessdataDir)

	cfg := types.ConversionConfig{
		Backend:     types.ConversionBackend(backend),
		Language:    lang,
		OCR:         ocrEnabled && types.ConversionBackend(backend) == types.BackendFitz,
		DPI:         dpi,
		Force:       force,
		TessdataDir: tessdataDir,
	}

	if cfg.OCR && !ocr.Enabled {
		fmt.Fprintln(os.Stderr, "warning: this build has no OCR support; scanned pages will not be recognized (rebuild with -tags ocr)")
		cfg.OCR = false
	}

	info := device.Detect()
	fmt.Fprintf(os.Stderr, "accelerator: %s (%s)\n", info.Kind, info.Label)
	cfg.Threads = info.Threads

	if cfg.OCR {
		dir, err := ensureLanguages(cmd, cfg.TessdataDir, cfg.Language)
		if err != nil {
			return err
		}
		cfg.TessdataDir = dir
	}

	var conv convert.Converter
	switch cfg.Backend {
	case types.BackendFitz:
		fc := convert.NewFitzConverter(cfg)
		defer fc.Close()
		conv = fc
	case types.BackendPdftext:
		conv = convert.NewPdftextConverter()
	}

	if len(args) == 1 {
		res := convert.ConvertFile(cmd.Context(), conv, args[0], output, cfg, os.Stdout)
		recordHistory(cmd, cfg, res)
		if res.Status == types.ConversionFailed {
			return fmt.Errorf("conversion failed: %s", args[0])
		}
		return nil
	}

	result := convert.ConvertBatch(cmd.Context(), conv, args, cfg, os.Stdout)
	recordHistory(cmd, cfg, result.Results...)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// ensureLanguages verifies the requested OCR packs exist, fetching
// missing ones into the per-user tessdata directory. System installs
// are usually not writable, so any fetch switches the prefix to the
// user directory and mirrors the remaining packs there.
func ensureLanguages(cmd *cobra.Command, dir, spec string) (string, error) {
	if len(tessdata.Missing(dir, spec)) == 0 {
		return dir, nil
	}

	userDir := tessdata.UserDir()
	client := &http.Client{Timeout: defaultFetchTimeout}
	for _, lang := range tessdata.Missing(userDir, spec) {
		if err := tessdata.Fetch(cmd.Context(), client, tessdata.DefaultBaseURL, userDir, lang, os.Stderr); err != nil {
			return "", fmt.Errorf("fetching language pack %q: %w (or run: pdf2md languages fetch %s)", lang, err, lang)
		}
	}
	return userDir, nil
}

// recordHistory appends results to the conversion ledger. Bookkeeping
// is best-effort: failures warn and never fail the conversion.
func recordHistory(cmd *cobra.Command, cfg types.ConversionConfig, results ...convert.FileResult) {
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		return
	}

	dbPath := viper.GetString("history_db")
	if dbPath == "" {
		dbPath = history.DefaultDBPath()
	}

	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: conversion ledger unavailable: %v\n", err)
		return
	}
	defer store.Close()

	var recs []types.Record
	for _, res := range results {
		if res.Status == types.ConversionNone {
			continue
		}
		recs = append(recs, types.Record{
			InputPath:  res.InputPath,
			OutputPath: res.OutputPath,
			Backend:    string(cfg.Backend),
			Language:   cfg.Language,
			Status:     res.Status,
			Stats:      res.Stats,
			FinishedAt: time.Now(),
		})
	}
	store.AppendAll(cmd.Context(), os.Stderr, recs...)
}
