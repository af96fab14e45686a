// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"introsim/internal/clibase"
)

// Options holds all CLI flags for the scalar feature-table tool.
type Options struct {
	clibase.Common

	// Shuffle the final table instead of sorting it.
	Shuffled bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s --nfeature 1000 --nrep 100 --output-dir ./out\n", name)
		fmt.Fprintf(out, "  %s --force-balanced --shuffle --seed 7 --output-dir ./out\n", name)

		fmt.Fprintln(out, "\nTable:")
		fmt.Fprintf(out, "      --shuffle               Shuffle the final table (seeded) instead of sorting [%s]\n", def("shuffle"))
	})
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	clibase.Register(fs, &opt.Common)
	fs.BoolVar(&opt.Shuffled, "shuffle", false, "shuffle the final table (seeded) instead of sorting [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if err := clibase.Validate(&opt.Common); err != nil {
		return opt, err
	}
	return opt, nil
}
