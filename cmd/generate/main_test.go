package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"starforge/internal/catalog"
	"starforge/internal/orbit"
	"starforge/internal/system"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const binaryRequest = `
name: Alpha Centauri
seed: 17
stars:
  - spectral_type: G2V
    luminosity: 1.519
  - spectral_type: K1V
    luminosity: 0.5
    companion:
      average_radius: 23.4
      eccentricity: 0.52
`

const presets = `
stars:
  - index: 0
    proper_name: Sol
    spectral_type: G2V
    luminosity: 1.0
`

func TestRunFromRequestFile(t *testing.T) {
	path := writeFile(t, "request.yaml", binaryRequest)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-input", path, "-compact"}, &stdout, &stderr); err != nil {
		t.Fatalf("run returned error: %v (stderr %s)", err, stderr.String())
	}

	var sys system.System
	if err := json.Unmarshal(stdout.Bytes(), &sys); err != nil {
		t.Fatalf("output is not a system: %v", err)
	}
	if sys.Name != "Alpha Centauri" || sys.Seed != 17 || len(sys.Stars) != 2 {
		t.Errorf("unexpected system: %s seed %d stars %d", sys.Name, sys.Seed, len(sys.Stars))
	}
	if strings.Count(stdout.String(), "\n") != 1 {
		t.Error("compact output spans several lines")
	}
}

func TestRunIsReproducible(t *testing.T) {
	path := writeFile(t, "request.yaml", binaryRequest)

	var first, second bytes.Buffer
	for _, out := range []*bytes.Buffer{&first, &second} {
		if err := run(context.Background(), []string{"-input", path}, out, &bytes.Buffer{}); err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	}
	if first.String() != second.String() {
		t.Fatal("same request produced different output")
	}
}

func TestRunFromCatalog(t *testing.T) {
	path := writeFile(t, "presets.yaml", presets)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-catalog", path, "-index", "0", "-seed", "3"}, &stdout, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	var sys system.System
	if err := json.Unmarshal(stdout.Bytes(), &sys); err != nil {
		t.Fatalf("output is not a system: %v", err)
	}
	if sys.Name != "Sol" || sys.Seed != 3 || sys.Stars[0].Catalog == nil {
		t.Errorf("unexpected system: %s seed %d", sys.Name, sys.Seed)
	}

	err = run(context.Background(), []string{"-catalog", path, "-index", "9"}, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestRunReportsCapacity(t *testing.T) {
	path := writeFile(t, "request.yaml", binaryRequest)

	err := run(context.Background(), []string{"-input", path, "-max-orbits", "2", "-max-worlds", "1"}, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, orbit.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	tests := [][]string{
		{},
		{"-input", "a.yaml", "-catalog", "b.yaml"},
		{"-catalog", "b.yaml"},
		{"-unknown"},
	}

	for _, args := range tests {
		if _, err := parseFlags(args, &bytes.Buffer{}); err == nil {
			t.Errorf("parseFlags(%v) succeeded", args)
		}
	}
}

func TestReadRequestRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "request.yaml", "seed: 1\nplanets: 3\n")

	if _, err := readRequest(path); err == nil {
		t.Fatal("expected an error for unknown fields")
	}
}
