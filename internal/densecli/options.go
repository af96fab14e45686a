// internal/densecli/options.go
package densecli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"introsim/internal/clibase"
	"introsim/internal/writers"
)

// Options holds all CLI flags for the window-matrix tool.
type Options struct {
	clibase.Common

	// Matrix shape
	NSite int

	// Container
	Format string

	// Sampling filters (mutually exclusive)
	OnlyIntro    bool
	OnlyNonIntro bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s --nfeature 500 --nsite 128 --format sqlite --output-dir ./out\n", name)
		fmt.Fprintf(out, "  %s --only-intro --format tsv --output-dir ./out\n", name)

		fmt.Fprintln(out, "\nMatrices:")
		fmt.Fprintf(out, "      --nsite int             Polymorphic sites per matrix (pad or trim) [%s]\n", def("nsite"))
		fmt.Fprintf(out, "      --format string         Container: tsv | sqlite [%s]\n", def("format"))
		fmt.Fprintf(out, "      --only-intro            Emit introgressed matrices only [%s]\n", def("only-intro"))
		fmt.Fprintf(out, "      --only-non-intro        Emit non-introgressed matrices only [%s]\n", def("only-non-intro"))
	})
	return fs
}

func Parse() (Options, error) { return ParseArgs(NewFlagSet("introsim-dense"), nil) }

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	clibase.Register(fs, &o.Common)

	fs.IntVar(&o.NSite, "nsite", 128, "polymorphic sites per matrix (pad or trim) [128]")
	fs.StringVar(&o.Format, "format", writers.FormatTSV, "container: tsv | sqlite [tsv]")
	fs.BoolVar(&o.OnlyIntro, "only-intro", false, "emit introgressed matrices only [false]")
	fs.BoolVar(&o.OnlyNonIntro, "only-non-intro", false, "emit non-introgressed matrices only [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}

	if o.NSite <= 0 {
		return o, errors.New("--nsite must be positive")
	}
	if o.Format != writers.FormatTSV && o.Format != writers.FormatSQLite {
		return o, fmt.Errorf("invalid --format %q", o.Format)
	}
	switch {
	case o.OnlyIntro && o.OnlyNonIntro:
		return o, errors.New("--only-intro conflicts with --only-non-intro")
	case (o.OnlyIntro || o.OnlyNonIntro) && o.ForceBalanced:
		return o, errors.New("--force-balanced needs both classes; drop the --only-* filter")
	}
	return o, nil
}
