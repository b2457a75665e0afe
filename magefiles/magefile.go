//go:build mage

// Package main contains Mage build targets for pdf2md developer tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
)

const (
	binDir  = "bin"
	binName = "pdf2md"
	cmdPkg  = "./cmd/pdf2md"
)

// Build compiles the CLI binary into bin/ without OCR support.
func Build() error {
	return goBuild()
}

// BuildOCR compiles the CLI with Tesseract OCR linked in. Requires
// libtesseract headers (see Deps).
func BuildOCR() error {
	return goBuild("-tags", "ocr")
}

func goBuild(extra ...string) error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := append([]string{"build"}, extra...)
	args = append(args, "-o", out, cmdPkg)

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the test suite.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Deps checks the system packages the engines need and prints install
// instructions for anything missing.
func Deps() error {
	missing := false
	for _, bin := range []string{"tesseract"} {
		if _, err := exec.LookPath(bin); err != nil {
			missing = true
			fmt.Printf("missing: %s\n", bin)
		} else {
			fmt.Printf("ok:      %s\n", bin)
		}
	}

	if missing {
		switch runtime.GOOS {
		case "darwin":
			fmt.Println("\nInstall with: brew install tesseract mupdf")
		default:
			fmt.Println("\nInstall with: apt-get install tesseract-ocr libtesseract-dev tesseract-ocr-rus")
		}
		return fmt.Errorf("system dependencies missing")
	}

	fmt.Println("All system dependencies present.")
	return nil
}

// Check runs Deps and then the doctor command of a fresh build.
func Check() error {
	mg.Deps(Deps, BuildOCR)
	cmd := exec.Command(filepath.Join(binDir, binName), "doctor")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Stats prints Go production and test line counts.
func Stats() error {
	prod, test := 0, 0
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || filepath.Ext(path) != ".go" {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		lines := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				lines++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += lines
		} else {
			prod += lines
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}
