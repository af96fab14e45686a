// internal/densecli/options_test.go
package densecli

import (
	"io"
	"testing"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("introsim-dense")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestDenseDefaults(t *testing.T) {
	opt, err := parse(t)
	if err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if opt.NSite != 128 || opt.Format != "tsv" {
		t.Fatalf("unexpected defaults: %+v", opt)
	}
	if opt.OnlyIntro || opt.OnlyNonIntro {
		t.Fatal("filters should default off")
	}
}

func TestDenseFlagParsing(t *testing.T) {
	opt, err := parse(t, "--nsite", "64", "--format", "sqlite", "--only-intro")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.NSite != 64 || opt.Format != "sqlite" || !opt.OnlyIntro {
		t.Fatalf("flags lost: %+v", opt)
	}
}

func TestDenseValidation(t *testing.T) {
	cases := [][]string{
		{"--nsite", "0"},
		{"--format", "h5"},
		{"--only-intro", "--only-non-intro"},
		{"--only-intro", "--force-balanced"},
		{"--only-non-intro", "--force-balanced"},
		{"--nref", "0"},
	}
	for _, argv := range cases {
		if _, err := parse(t, argv...); err == nil {
			t.Errorf("argv %v accepted", argv)
		}
	}
}
