// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"introsim/internal/app"
)

// smallRun is a parameter set tiny enough to finish in milliseconds while
// still producing labeled windows in every batch.
func smallRun(dir string, extra ...string) []string {
	argv := []string{
		"--nref", "3", "--ntgt", "3",
		"--seq-len", "20000", "--win-len", "5000",
		"--nfeature", "10", "--nrep", "4",
		"--seed", "11",
		"--output-dir", dir,
		"--output-prefix", "itest",
		"--quiet",
	}
	return append(argv, extra...)
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := app.Run(smallRun(dir), &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}

	raw, err := os.ReadFile(filepath.Join(dir, "itest.features.tsv"))
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want header plus 10 records", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Replicate\tChromosome\tStart\tEnd\tSample\tLabel\t") {
		t.Fatalf("bad header: %q", lines[0])
	}
	for _, l := range lines[1:] {
		if cols := strings.Split(l, "\t"); len(cols) != 12 {
			t.Fatalf("row has %d columns, want 6 identity + 6 features: %q", len(cols), l)
		}
	}
}

func TestRunTwiceIsByteIdentical(t *testing.T) {
	run := func() string {
		dir := t.TempDir()
		var out, errBuf bytes.Buffer
		if code := app.Run(smallRun(dir), &out, &errBuf); code != 0 {
			t.Fatalf("run exit %d, err=%s", code, errBuf.String())
		}
		raw, err := os.ReadFile(filepath.Join(dir, "itest.features.tsv"))
		if err != nil {
			t.Fatalf("read table: %v", err)
		}
		return string(raw)
	}
	if run() != run() {
		t.Fatal("same seed produced different tables")
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	run := func(workers int) string {
		dir := t.TempDir()
		var out, errBuf bytes.Buffer
		code := app.Run(smallRun(dir, "--workers", fmt.Sprint(workers)), &out, &errBuf)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errBuf.String())
		}
		raw, err := os.ReadFile(filepath.Join(dir, "itest.features.tsv"))
		if err != nil {
			t.Fatalf("read table: %v", err)
		}
		return string(raw)
	}

	serial := run(1)
	parallel := run(4)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel: %s", serial, parallel)
	}
}

func TestArtifactRetention(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := app.Run(smallRun(dir, "--keep-sim-data"), &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	// Replicate 0 always runs; its artifact dir must survive.
	if _, err := os.Stat(filepath.Join(dir, "0", "itest.0.true.tracts.bed")); err != nil {
		t.Fatalf("replicate artifacts missing: %v", err)
	}

	dir = t.TempDir()
	out.Reset()
	errBuf.Reset()
	if code := app.Run(smallRun(dir), &out, &errBuf); code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "0")); !os.IsNotExist(err) {
		t.Fatalf("replicate dir should be cleaned up by default, stat err=%v", err)
	}
}

func TestConfigurationErrorExitsTwo(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--nfeature", "0"}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if errBuf.Len() == 0 {
		t.Fatal("expected a diagnostic on stderr")
	}
}

func TestVersionFlag(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--version"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "introsim version") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}
