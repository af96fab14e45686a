// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
)

// Common holds CLI fields shared by introsim and introsim-dense.
type Common struct {
	// Populations
	NRef   int
	NTgt   int
	RefID  string
	TgtID  string
	SrcID  string
	Ploidy int
	Phased bool

	// Simulation
	SeqLen       int
	MutRate      float64
	RecRate      float64
	IntroPulses  float64
	IntroMeanLen int

	// Labeling
	WinLen       int
	IntroProp    float64
	NonIntroProp float64

	// Features
	FeatureConfig string

	// Scheduling
	NFeature      int
	NRep          int
	Workers       int
	Seed          int64
	ForceBalanced bool
	KeepSimData   bool

	// Output
	OutputPrefix string
	OutputDir    string

	// Misc
	Quiet   bool
	Version bool
}

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	// Populations
	fs.IntVar(&c.NRef, "nref", 50, "reference individuals [50]")
	fs.IntVar(&c.NTgt, "ntgt", 50, "target individuals [50]")
	fs.StringVar(&c.RefID, "ref-id", "ref", "reference population name [ref]")
	fs.StringVar(&c.TgtID, "tgt-id", "tgt", "target population name [tgt]")
	fs.StringVar(&c.SrcID, "src-id", "src", "source (donor) population name [src]")
	fs.IntVar(&c.Ploidy, "ploidy", 2, "haplotypes per individual [2]")
	fs.BoolVar(&c.Phased, "phased", false, "emit per-haplotype rather than per-individual records [false]")

	// Simulation
	fs.IntVar(&c.SeqLen, "seq-len", 1000000, "simulated sequence length in bp [1000000]")
	fs.Float64Var(&c.MutRate, "mut-rate", 1e-8, "per-bp per-generation mutation rate [1e-8]")
	fs.Float64Var(&c.RecRate, "rec-rate", 1e-8, "per-bp per-generation recombination rate [1e-8]")
	fs.Float64Var(&c.IntroPulses, "intro-pulses", 1, "expected introgression pulses per replicate [1]")
	fs.IntVar(&c.IntroMeanLen, "intro-mean-len", 50000, "mean introgressed tract length in bp [50000]")

	// Labeling
	fs.IntVar(&c.WinLen, "win-len", 50000, "label window length in bp (0 = whole sequence) [50000]")
	fs.Float64Var(&c.IntroProp, "intro-prop", 0.7, "min tract coverage fraction for label 1 [0.7]")
	fs.Float64Var(&c.NonIntroProp, "non-intro-prop", 0.3, "max tract coverage fraction for label 0 [0.3]")

	// Features
	fs.StringVar(&c.FeatureConfig, "feature-config", "", "YAML feature list (empty = built-in default set)")

	// Scheduling
	fs.IntVar(&c.NFeature, "nfeature", 1000, "total records to collect [1000]")
	fs.IntVar(&c.NRep, "nrep", 100, "replicates per batch [100]")
	fs.IntVar(&c.Workers, "workers", 0, "parallel workers (0 = all CPUs) [0]")
	fs.Int64Var(&c.Seed, "seed", 42, "base random seed [42]")
	fs.BoolVar(&c.ForceBalanced, "force-balanced", false, "enforce exact class balance [false]")
	fs.BoolVar(&c.KeepSimData, "keep-sim-data", false, "retain per-replicate artifact directories [false]")

	// Output
	fs.StringVar(&c.OutputPrefix, "output-prefix", "introsim", "output file prefix [introsim]")
	fs.StringVar(&c.OutputDir, "output-dir", ".", "output directory [.]")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress progress messages [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies shared CLI invariants used by both tools.
func Validate(c *Common) error {
	if c.NRef <= 0 || c.NTgt <= 0 {
		return errors.New("--nref and --ntgt must be positive")
	}
	if c.Ploidy <= 0 {
		return errors.New("--ploidy must be positive")
	}
	if c.RefID == "" || c.TgtID == "" || c.SrcID == "" {
		return errors.New("population names must be non-empty")
	}
	if c.RefID == c.TgtID || c.TgtID == c.SrcID || c.RefID == c.SrcID {
		return errors.New("population names must be distinct")
	}
	if c.SeqLen <= 0 {
		return errors.New("--seq-len must be positive")
	}
	if c.MutRate < 0 || c.RecRate < 0 {
		return errors.New("rates must be non-negative")
	}
	if c.IntroPulses < 0 || c.IntroMeanLen <= 0 {
		return errors.New("--intro-pulses must be >= 0 and --intro-mean-len positive")
	}
	if c.WinLen < 0 {
		return errors.New("--win-len must be >= 0")
	}
	if c.IntroProp < 0 || c.IntroProp > 1 {
		return fmt.Errorf("--intro-prop %g outside [0, 1]", c.IntroProp)
	}
	if c.NonIntroProp < 0 || c.NonIntroProp > 1 {
		return fmt.Errorf("--non-intro-prop %g outside [0, 1]", c.NonIntroProp)
	}
	if c.NonIntroProp > c.IntroProp {
		return errors.New("--non-intro-prop must not exceed --intro-prop")
	}
	if c.NFeature <= 0 {
		return errors.New("--nfeature must be positive")
	}
	if c.NRep <= 0 {
		return errors.New("--nrep must be positive")
	}
	if c.Workers < 0 {
		return errors.New("--workers must be >= 0")
	}
	if c.OutputPrefix == "" {
		return errors.New("--output-prefix must be non-empty")
	}
	if c.OutputDir == "" {
		return errors.New("--output-dir must be non-empty")
	}
	return nil
}
