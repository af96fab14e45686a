// internal/app/app.go
package app

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
	"introsim/internal/cli"
	"introsim/internal/cmdutil"
	"introsim/internal/replicate"
	"introsim/internal/sched"
	"introsim/internal/version"
	"introsim/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("introsim")
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

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "introsim version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	features, err := feature.Load(opts.FeatureConfig)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
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

	runner := replicate.NewRunner(simlite.New(simCfg), replicate.Options{
		SrcID: opts.SrcID, TgtID: opts.TgtID,
		NRef: opts.NRef, NTgt: opts.NTgt,
		Ploidy: opts.Ploidy, Phased: opts.Phased,
		WinLen:       opts.WinLen,
		IntroProp:    opts.IntroProp,
		NonIntroProp: opts.NonIntroProp,
		Features:     features,
		OutputDir:    opts.OutputDir,
		OutputPrefix: opts.OutputPrefix,
	})

	recs, err := sched.Run(parent, sched.Options{
		NFeature:      opts.NFeature,
		NRep:          opts.NRep,
		Workers:       opts.Workers,
		Seed:          opts.Seed,
		ForceBalanced: opts.ForceBalanced,
		Shuffled:      opts.Shuffled,
		KeepSimData:   opts.KeepSimData,
		OutputDir:     opts.OutputDir,
		Quiet:         opts.Quiet,
		Log:           stderr,
	}, runner.Run)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}

	path := filepath.Join(opts.OutputDir, opts.OutputPrefix+".features.tsv")
	f, err := os.Create(path)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := writers.WriteFeatures(f, features.Features, recs); err != nil {
		_ = f.Close()
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := f.Close(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	cmdutil.Progressf(stderr, opts.Quiet, "wrote %d records to %s", len(recs), path)
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
