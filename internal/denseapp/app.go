// internal/denseapp/app.go
package denseapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"introsim-core/feature"
	"introsim-core/simlite"
	"introsim/internal/cmdutil"
	"introsim/internal/dense"
	"introsim/internal/densecli"
	"introsim/internal/replicate"
	"introsim/internal/version"
	"introsim/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := densecli.NewFlagSet("introsim-dense")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := densecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "introsim-dense version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	simCfg := simlite.Config{
		NRef: opts.NRef, NTgt: opts.NTgt, Ploidy: opts.Ploidy,
		SeqLen:  opts.SeqLen,
		RefName: opts.RefID, TgtName: opts.TgtID, SrcName: opts.SrcID,
		MutRate: opts.MutRate, RecRate: opts.RecRate,
		IntroPulses: opts.IntroPulses, IntroMeanLen: opts.IntroMeanLen,
	}
	if err := simCfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.WinLen > opts.SeqLen {
		cmdutil.Warnf(stderr, opts.Quiet, "--win-len %d exceeds --seq-len %d; labeling the whole sequence as one window",
			opts.WinLen, opts.SeqLen)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	ropt := replicate.Options{
		SrcID: opts.SrcID, TgtID: opts.TgtID,
		NRef: opts.NRef, NTgt: opts.NTgt,
		Ploidy: opts.Ploidy, Phased: opts.Phased,
		WinLen:       opts.WinLen,
		IntroProp:    opts.IntroProp,
		NonIntroProp: opts.NonIntroProp,
		Features:     feature.Default(),
		OutputDir:    opts.OutputDir,
		OutputPrefix: opts.OutputPrefix,
	}
	runner := dense.NewRunner(replicate.NewRunner(simlite.New(simCfg), ropt), ropt, opts.NSite)

	mode := dense.Both
	switch {
	case opts.OnlyIntro:
		mode = dense.OnlyIntro
	case opts.OnlyNonIntro:
		mode = dense.OnlyNonIntro
	}

	path := filepath.Join(opts.OutputDir, opts.OutputPrefix+".matrices."+opts.Format)
	sink, err := writers.OpenDense(opts.Format, path)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	pos, neg, runErr := dense.Run(parent, dense.Options{
		NFeature:      opts.NFeature,
		NRep:          opts.NRep,
		Workers:       opts.Workers,
		Seed:          opts.Seed,
		ForceBalanced: opts.ForceBalanced,
		Mode:          mode,
		KeepSimData:   opts.KeepSimData,
		OutputDir:     opts.OutputDir,
		Quiet:         opts.Quiet,
		Log:           stderr,
	}, runner.Run, sink)

	if cerr := sink.Close(); runErr == nil {
		runErr = cerr
	}
	if runErr != nil {
		_, _ = fmt.Fprintln(stderr, runErr)
		if errors.Is(runErr, context.Canceled) {
			return 130
		}
		return 1
	}

	cmdutil.Progressf(stderr, opts.Quiet, "wrote %d matrices (%d positive, %d negative) to %s",
		pos+neg, pos, neg, path)
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
