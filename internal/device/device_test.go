// Copyright Ogrodnik Labs, 2026. All rights reserved.

package device

import (
	"errors"
	"strings"
	"testing"

	"github.com/ogrodnik/pdf2md/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool   // binary -> whether LookPath succeeds
	outputs       map[string]string // "bin arg1 arg2" -> stdout
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

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		exec      *mockExecutor
		goos      string
		numCPU    int
		wantKind  types.Accelerator
		wantLabel string
	}{
		{
			name: "nvidia gpu present",
			exec: &mockExecutor{
				availableBins: map[string]bool{"nvidia-smi": true},
				outputs: map[string]string{
					"nvidia-smi --query-gpu=name --format=csv,noheader": "NVIDIA GeForce RTX 3060\n",
				},
			},
			goos:      "linux",
			numCPU:    8,
			wantKind:  types.AcceleratorCUDA,
			wantLabel: "NVIDIA GeForce RTX 3060",
		},
		{
			name: "nvidia-smi on PATH but not operational",
			exec: &mockExecutor{
				availableBins: map[string]bool{"nvidia-smi": true},
				outputs:       map[string]string{},
			},
			goos:      "linux",
			numCPU:    4,
			wantKind:  types.AcceleratorCPU,
			wantLabel: "CPU",
		},
		{
			name: "apple silicon on darwin",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				outputs: map[string]string{
					"sysctl -n machdep.cpu.brand_string": "Apple M2\n",
				},
			},
			goos:      "darwin",
			numCPU:    10,
			wantKind:  types.AcceleratorMetal,
			wantLabel: "Apple M2",
		},
		{
			name: "intel mac falls back to cpu",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				outputs: map[string]string{
					"sysctl -n machdep.cpu.brand_string": "Intel(R) Core(TM) i7-9750H\n",
				},
			},
			goos:      "darwin",
			numCPU:    12,
			wantKind:  types.AcceleratorCPU,
			wantLabel: "CPU",
		},
		{
			name:      "plain linux host",
			exec:      &mockExecutor{availableBins: map[string]bool{}},
			goos:      "linux",
			numCPU:    16,
			wantKind:  types.AcceleratorCPU,
			wantLabel: "CPU",
		},
		{
			name: "nvidia preferred over metal",
			exec: &mockExecutor{
				availableBins: map[string]bool{"nvidia-smi": true},
				outputs: map[string]string{
					"nvidia-smi --query-gpu=name --format=csv,noheader": "NVIDIA A100\n",
					"sysctl -n machdep.cpu.brand_string":                "Apple M3\n",
				},
			},
			goos:      "darwin",
			numCPU:    10,
			wantKind:  types.AcceleratorCUDA,
			wantLabel: "NVIDIA A100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := detect(tt.exec, tt.goos, tt.numCPU)
			if info.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", info.Kind, tt.wantKind)
			}
			if info.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", info.Label, tt.wantLabel)
			}
			if info.Kind == types.AcceleratorCPU && info.Threads != tt.numCPU {
				t.Errorf("threads = %d, want %d", info.Threads, tt.numCPU)
			}
			if info.Kind != types.AcceleratorCPU && info.Threads != 0 {
				t.Errorf("threads = %d, want 0 for accelerated path", info.Threads)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"NVIDIA A100\nNVIDIA A100\n", "NVIDIA A100"},
		{"  Apple M2  \n", "Apple M2"},
		{"", ""},
		{"single", "single"},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
