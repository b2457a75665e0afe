// Copyright Ogrodnik Labs, 2026. All rights reserved.

// Package device probes the host for an inference accelerator. The probe
// is informational: MuPDF and Tesseract pick their own execution path,
// the CLI only reports what is available and sizes thread hints.
package device

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/ogrodnik/pdf2md/pkg/types"
)

const binNvidiaSmi = "nvidia-smi"

// Info describes the detected accelerator.
type Info struct {
	// Kind is the accelerator class: cuda, metal, or cpu.
	Kind types.Accelerator

	// Label is a human-readable device name ("NVIDIA GeForce RTX 3060",
	// "Apple M2", or "CPU").
	Label string

	// Threads is a worker-thread hint: logical CPU count for the CPU
	// path, zero when an accelerator handles the heavy lifting.
	Threads int
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

var defaultExec executor = &osExecutor{}

// Detect probes for an accelerator: NVIDIA CUDA first, Apple Metal on
// darwin, CPU otherwise.
func Detect() Info {
	return detect(defaultExec, runtime.GOOS, runtime.NumCPU())
}

func detect(exec executor, goos string, numCPU int) Info {
	if name, ok := nvidiaGPU(exec); ok {
		return Info{Kind: types.AcceleratorCUDA, Label: name}
	}

	if goos == "darwin" {
		if name, ok := appleSilicon(exec); ok {
			return Info{Kind: types.AcceleratorMetal, Label: name}
		}
	}

	return Info{Kind: types.AcceleratorCPU, Label: "CPU", Threads: numCPU}
}

// nvidiaGPU checks for a working nvidia-smi and returns the first GPU name.
func nvidiaGPU(exec executor) (string, bool) {
	if _, err := exec.LookPath(binNvidiaSmi); err != nil {
		return "", false
	}
	out, err := exec.Output(binNvidiaSmi, "--query-gpu=name", "--format=csv,noheader")
	if err != nil {
		return "", false
	}
	name := firstLine(out)
	if name == "" {
		return "", false
	}
	return name, true
}

// appleSilicon reports whether the darwin host runs an Apple M-series
// chip, by brand string. Rosetta-translated processes still see the
// Apple brand here, so the Metal path stays available.
func appleSilicon(exec executor) (string, bool) {
	out, err := exec.Output("sysctl", "-n", "machdep.cpu.brand_string")
	if err != nil {
		return "", false
	}
	brand := firstLine(out)
	if !strings.HasPrefix(brand, "Apple") {
		return "", false
	}
	return brand, true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
