// Copyright Ogrodnik Labs, 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Stats describes a completed conversion for reporting and the ledger.
type Stats struct {
	// Pages is the total page count of the input document.
	Pages int `json:"pages" yaml:"pages"`

	// OCRPages counts pages that went through the OCR path.
	OCRPages int `json:"ocr_pages" yaml:"ocr_pages"`

	// Characters is the length of the produced Markdown.
	Characters int `json:"characters" yaml:"characters"`

	// OutputBytes is the size of the written output file.
	OutputBytes int64 `json:"output_bytes" yaml:"output_bytes"`

	// ConvertDuration covers the engine call; ExportDuration covers
	// Markdown rendering and the file write.
	ConvertDuration time.Duration `json:"convert_duration" yaml:"convert_duration"`
	ExportDuration  time.Duration `json:"export_duration" yaml:"export_duration"`
}

// Total returns the combined conversion and export duration.
func (s Stats) Total() time.Duration {
	return s.ConvertDuration + s.ExportDuration
}

// Record is one row of the conversion ledger.
type Record struct {
	InputPath  string           `json:"input_path" yaml:"input_path"`
	OutputPath string           `json:"output_path" yaml:"output_path"`
	Backend    string           `json:"backend" yaml:"backend"`
	Language   string           `json:"language" yaml:"language"`
	Status     ConversionStatus `json:"status" yaml:"status"`
	Stats      Stats            `json:"stats" yaml:"stats"`
	FinishedAt time.Time        `json:"finished_at" yaml:"finished_at"`
}
