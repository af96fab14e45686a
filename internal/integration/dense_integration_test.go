// internal/integration/dense_integration_test.go
package integration

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"introsim/internal/denseapp"
)

func smallDenseRun(dir string, extra ...string) []string {
	argv := []string{
		"--nref", "3", "--ntgt", "3",
		"--seq-len", "20000", "--win-len", "5000",
		"--nfeature", "8", "--nrep", "4",
		"--nsite", "16",
		"--seed", "11",
		"--output-dir", dir,
		"--output-prefix", "dtest",
		"--quiet",
	}
	return append(argv, extra...)
}

func TestDenseEndToEndTSV(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := denseapp.Run(smallDenseRun(dir), &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}

	raw, err := os.ReadFile(filepath.Join(dir, "dtest.matrices.tsv"))
	if err != nil {
		t.Fatalf("read container: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want header plus 8 matrices", len(lines))
	}
	for _, l := range lines[1:] {
		cols := strings.Split(l, "\t")
		if len(cols) != 9 {
			t.Fatalf("row has %d columns: %q", len(cols), l)
		}
		// 16 padded positions per matrix.
		if got := len(strings.Split(cols[6], ",")); got != 16 {
			t.Fatalf("matrix has %d position slots, want 16: %q", got, cols[6])
		}
	}
}

func TestDenseEndToEndSQLite(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := denseapp.Run(smallDenseRun(dir, "--format", "sqlite"), &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "dtest.matrices.sqlite"))
	if err != nil {
		t.Fatalf("open container: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM matrices`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 8 {
		t.Fatalf("container holds %d matrices, want 8", n)
	}
}

func TestDenseOnlyNonIntroEmitsOneClass(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := denseapp.Run(smallDenseRun(dir, "--only-non-intro"), &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	raw, err := os.ReadFile(filepath.Join(dir, "dtest.matrices.tsv"))
	if err != nil {
		t.Fatalf("read container: %v", err)
	}
	for _, l := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n")[1:] {
		if cols := strings.Split(l, "\t"); cols[5] != "0" {
			t.Fatalf("positive matrix in only-non-intro output: %q", l)
		}
	}
}

func TestDenseRejectsConflictingFilters(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := denseapp.Run([]string{"--only-intro", "--only-non-intro"}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
