// Copyright Ogrodnik Labs, 2026. All rights reserved.

package deps

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	outputs       map[string]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Output(name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	if out, ok := m.outputs[key]; ok {
		return out, nil
	}
	return "", errors.New("command failed: " + key)
}

func tessdataWith(t *testing.T, langs ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, lang := range langs {
		path := filepath.Join(dir, lang+".traineddata")
		if err := os.WriteFile(path, []byte("pack"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheck_AllInstalled(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"tesseract": true},
		outputs: map[string]string{
			"tesseract --version": "tesseract 5.3.4\n leptonica-1.84.1\n",
		},
	}
	dir := tessdataWith(t, "rus", "eng")

	r := check(exec, true, "rus+eng", dir)

	if !r.AllInstalled() {
		t.Fatalf("expected all installed, missing: %v", r.MissingNames())
	}

	var out bytes.Buffer
	r.Write(&out)
	for _, want := range []string{"MuPDF engine", "tesseract 5.3.4", "rus+eng"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report %q should mention %q", out.String(), want)
		}
	}
	if strings.Contains(out.String(), "missing:") {
		t.Errorf("report should have no missing lines:\n%s", out.String())
	}
}

func TestCheck_OCRNotCompiledIn(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{}}
	dir := tessdataWith(t, "rus")

	r := check(exec, false, "rus", dir)

	if r.AllInstalled() {
		t.Fatal("expected Tesseract to be reported missing")
	}
	names := r.MissingNames()
	if len(names) != 1 || names[0] != "Tesseract OCR" {
		t.Errorf("missing = %v, want [Tesseract OCR]", names)
	}

	var out bytes.Buffer
	r.Write(&out)
	if !strings.Contains(out.String(), "-tags ocr") {
		t.Errorf("remedy should mention the ocr build tag:\n%s", out.String())
	}
}

func TestCheck_MissingLanguagePack(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"tesseract": true},
		outputs:       map[string]string{"tesseract --version": "tesseract 5.3.4\n"},
	}
	dir := tessdataWith(t, "eng")

	r := check(exec, true, "rus+eng", dir)

	if r.AllInstalled() {
		t.Fatal("expected missing language data")
	}

	var out bytes.Buffer
	r.Write(&out)
	if !strings.Contains(out.String(), "languages fetch rus") {
		t.Errorf("remedy should name the fetch command for rus:\n%s", out.String())
	}
	if strings.Contains(out.String(), "fetch rus eng") {
		t.Errorf("eng is installed and should not be in the remedy:\n%s", out.String())
	}
}

func TestCheck_TesseractBinaryProbeIsBestEffort(t *testing.T) {
	// Library linked in but no CLI binary on PATH: still installed.
	exec := &mockExecutor{availableBins: map[string]bool{}}
	dir := tessdataWith(t, "rus")

	r := check(exec, true, "rus", dir)

	if !r.AllInstalled() {
		t.Fatalf("expected all installed, missing: %v", r.MissingNames())
	}

	var out bytes.Buffer
	r.Write(&out)
	if !strings.Contains(out.String(), "linked via gosseract") {
		t.Errorf("detail should fall back to the library note:\n%s", out.String())
	}
}
