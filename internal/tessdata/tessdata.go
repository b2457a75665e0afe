// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package tessdata manages Tesseract language packs: resolving the
// tessdata directory, listing installed packs, and fetching missing
// ones from the upstream tessdata_fast repository.
package tessdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ogrodnik/pdf2md/internal/httputil"
)

const packExt = ".traineddata"

// DefaultBaseURL serves the fast (integer-quantized) language packs.
// They are the packs distro packages ship and are accurate enough for
// document OCR.
const DefaultBaseURL = "https://raw.githubusercontent.com/tesseract-ocr/tessdata_fast/main"

// wellKnownDirs are the tessdata locations of the common Tesseract
// installs, checked in order.
var wellKnownDirs = []string{
	"/usr/share/tesseract-ocr/5/tessdata",
	"/usr/share/tesseract-ocr/4.00/tessdata",
	"/usr/share/tessdata",
	"/opt/homebrew/share/tessdata",
	"/usr/local/share/tessdata",
}

// Resolve picks the tessdata directory: an explicit override wins, then
// $TESSDATA_PREFIX, then the first well-known install location that
// exists, then a per-user directory (which Fetch can populate).
func Resolve(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv("TESSDATA_PREFIX"); env != "" {
		return env
	}
	for _, dir := range wellKnownDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return UserDir()
}

// UserDir returns the per-user tessdata directory used for downloads
// when no system install is found.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tessdata")
	}
	return filepath.Join(home, ".local", "share", "pdf2md", "tessdata")
}

// Languages splits a "+"-separated language spec into its components,
// dropping empty entries.
func Languages(spec string) []string {
	var langs []string
	for _, l := range strings.Split(spec, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

// Installed lists the language packs present in dir, sorted. A missing
// directory is not an error; it simply has no packs.
func Installed(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading tessdata directory %s: %w", dir, err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, packExt) {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, packExt))
	}
	sort.Strings(langs)
	return langs, nil
}

// Missing returns the languages from spec that have no pack in dir.
func Missing(dir, spec string) []string {
	var missing []string
	for _, lang := range Languages(spec) {
		path := filepath.Join(dir, lang+packExt)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, lang)
		}
	}
	return missing
}

// Fetch downloads the pack for lang from baseURL into dir, writing to a
// temp file and renaming on success so a partial download never
// masquerades as an installed pack. Status lines go to w.
func Fetch(ctx context.Context, client *http.Client, baseURL, dir, lang string, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating tessdata directory %s: %w", dir, err)
	}

	url := baseURL + "/" + lang + packExt
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	fmt.Fprintf(w, "fetching: %s (%s)\n", lang, url)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", lang, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("no language pack %q upstream (HTTP 404)", lang)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", lang, resp.StatusCode)
	}

	destPath := filepath.Join(dir, lang+packExt)
	tmpFile, err := os.CreateTemp(dir, ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", lang, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("installing %s: %w", lang, err)
	}

	fmt.Fprintf(w, "installed: %s (%d bytes)\n", lang, n)
	return nil
}
