// Copyright Ogrodnik Labs, 2026. All rights reserved.

package types

// ConversionBackend identifies the PDF conversion engine.
type ConversionBackend string

const (
	// BackendFitz is the full engine: MuPDF layout extraction plus
	// Tesseract OCR for scanned pages.
	BackendFitz ConversionBackend = "fitz"

	// BackendPdftext extracts embedded text only, without OCR. Cheap,
	// but useless on scanned documents.
	BackendPdftext ConversionBackend = "pdftext"
)

// Valid reports whether b names a known backend.
func (b ConversionBackend) Valid() bool {
	return b == BackendFitz || b == BackendPdftext
}

// Accelerator identifies the hardware path available to the inference
// engines. Detection is informational; the engines pick their own device.
type Accelerator string

const (
	AcceleratorCUDA  Accelerator = "cuda"
	AcceleratorMetal Accelerator = "metal"
	AcceleratorCPU   Accelerator = "cpu"
)

// ConversionConfig holds settings for a conversion run.
type ConversionConfig struct {
	// Backend selects the conversion engine: fitz or pdftext.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Language is the Tesseract language spec, "+"-separated
	// (e.g. "rus+eng").
	Language string `json:"language" yaml:"language"`

	// OCR enables OCR of pages with no usable embedded text.
	OCR bool `json:"ocr" yaml:"ocr"`

	// DPI is the rasterization resolution for pages sent to OCR.
	DPI float64 `json:"dpi" yaml:"dpi"`

	// Force reconverts even when the output file already exists.
	Force bool `json:"force" yaml:"force"`

	// TessdataDir is the directory holding .traineddata language packs.
	// Empty means the platform default.
	TessdataDir string `json:"tessdata_dir,omitempty" yaml:"tessdata_dir,omitempty"`

	// Threads hints how many worker threads the engines may use.
	// Zero lets the engine decide.
	Threads int `json:"threads,omitempty" yaml:"threads,omitempty"`
}

// HistoryConfig holds settings for the conversion ledger.
type HistoryConfig struct {
	// DBPath is the SQLite database file. Empty disables the ledger.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}
