// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package deps verifies that the conversion engines and their data are
// available, and names what is missing with remediation instructions.
package deps

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ogrodnik/pdf2md/internal/ocr"
	"github.com/ogrodnik/pdf2md/internal/tessdata"
)

const binTesseract = "tesseract"

// Dependency is one checked requirement.
type Dependency struct {
	// Name identifies the dependency ("MuPDF", "Tesseract", ...).
	Name string

	// Installed reports whether the dependency is usable.
	Installed bool

	// Detail carries version or location information when installed.
	Detail string

	// Remedy tells the user how to fix a missing dependency.
	Remedy string
}

// Report is the outcome of a full dependency check.
type Report struct {
	Deps []Dependency
}

// AllInstalled reports whether every dependency is usable.
func (r Report) AllInstalled() bool {
	for _, d := range r.Deps {
		if !d.Installed {
			return false
		}
	}
	return true
}

// MissingNames lists the names of unusable dependencies.
func (r Report) MissingNames() []string {
	var names []string
	for _, d := range r.Deps {
		if !d.Installed {
			names = append(names, d.Name)
		}
	}
	return names
}

// Write renders the report, one line per dependency, with remediation
// lines for anything missing.
func (r Report) Write(w io.Writer) {
	for _, d := range r.Deps {
		if d.Installed {
			if d.Detail != "" {
				fmt.Fprintf(w, "ok:      %s (%s)\n", d.Name, d.Detail)
			} else {
				fmt.Fprintf(w, "ok:      %s\n", d.Name)
			}
			continue
		}
		fmt.Fprintf(w, "missing: %s\n", d.Name)
		if d.Remedy != "" {
			fmt.Fprintf(w, "         fix: %s\n", d.Remedy)
		}
	}
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) (string, error)
}

type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

var defaultExec executor = &osExecutor{}

// Check verifies the conversion stack for the given OCR language spec
// and tessdata directory.
func Check(lang, tessdataDir string) Report {
	return check(defaultExec, ocr.Enabled, lang, tessdataDir)
}

func check(exec executor, ocrEnabled bool, lang, tessdataDir string) Report {
	var r Report

	// MuPDF is linked in through go-fitz; if this binary runs, the
	// engine is present.
	r.Deps = append(r.Deps, Dependency{
		Name:      "MuPDF engine",
		Installed: true,
		Detail:    "linked via go-fitz",
	})

	r.Deps = append(r.Deps, checkTesseract(exec, ocrEnabled))
	r.Deps = append(r.Deps, checkLanguages(lang, tessdataDir))

	return r
}

func checkTesseract(exec executor, ocrEnabled bool) Dependency {
	d := Dependency{Name: "Tesseract OCR"}

	if !ocrEnabled {
		d.Remedy = "rebuild with -tags ocr (requires libtesseract: " +
			"apt-get install tesseract-ocr libtesseract-dev, or brew install tesseract)"
		return d
	}

	d.Installed = true
	d.Detail = "linked via gosseract"
	if _, err := exec.LookPath(binTesseract); err == nil {
		if out, err := exec.Output(binTesseract, "--version"); err == nil {
			if v := firstLine(out); v != "" {
				d.Detail = v
			}
		}
	}
	return d
}

func checkLanguages(lang, tessdataDir string) Dependency {
	name := fmt.Sprintf("OCR language data (%s)", lang)
	missing := tessdata.Missing(tessdataDir, lang)
	if len(missing) == 0 {
		return Dependency{
			Name:      name,
			Installed: true,
			Detail:    tessdataDir,
		}
	}
	return Dependency{
		Name:   name,
		Remedy: fmt.Sprintf("pdf2md languages fetch %s", strings.Join(missing, " ")),
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
