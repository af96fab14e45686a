// internal/writers/features_test.go
package writers

import (
	"bytes"
	"strings"
	"testing"

	"introsim/internal/replicate"
)

func sampleRecords() []replicate.Record {
	return []replicate.Record{
		{Replicate: 0, Chromosome: "1", Start: 0, End: 50000, Sample: "ind_8_1", Label: 1, Values: []float64{12, 0.5}},
		{Replicate: 0, Chromosome: "1", Start: 50000, End: 100000, Sample: "ind_8_1", Label: 0, Values: []float64{3, 0}},
	}
}

func TestWriteFeatures(t *testing.T) {
	buf := &bytes.Buffer{}
	features := []string{"seg_sites", "mean_tgt_freq"}
	if err := WriteFeatures(buf, features, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if lines[0] != "Replicate\tChromosome\tStart\tEnd\tSample\tLabel\tseg_sites\tmean_tgt_freq" {
		t.Fatalf("bad header: %q", lines[0])
	}
	if lines[1] != "0\t1\t0\t50000\tind_8_1\t1\t12\t0.5" {
		t.Fatalf("bad row: %q", lines[1])
	}
	if lines[2] != "0\t1\t50000\t100000\tind_8_1\t0\t3\t0" {
		t.Fatalf("bad row: %q", lines[2])
	}
}

func TestWriteFeaturesColumnMismatch(t *testing.T) {
	buf := &bytes.Buffer{}
	recs := []replicate.Record{{Values: []float64{1}}}
	if err := WriteFeatures(buf, []string{"a", "b"}, recs); err == nil {
		t.Fatal("value/column mismatch accepted")
	}
}

func TestStartFeatureWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	features := []string{"seg_sites", "mean_tgt_freq"}
	in, errCh := StartFeatureWriter(buf, features, 4)
	for _, r := range sampleRecords() {
		in <- r
	}
	close(in)
	if err := <-errCh; err != nil {
		t.Fatalf("writer: %v", err)
	}

	direct := &bytes.Buffer{}
	if err := WriteFeatures(direct, features, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != direct.String() {
		t.Fatalf("streamed output differs from direct output:\n%q\nvs\n%q", buf.String(), direct.String())
	}
}
