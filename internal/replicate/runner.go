// internal/replicate/runner.go
package replicate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"introsim-core/feature"
	"introsim-core/genealogy"
	"introsim-core/tract"
	"introsim-core/window"
)

// Engine produces one replicate's genealogical forest and genotype matrix.
// Implementations must be deterministic in the seed; rep only namespaces
// on-disk artifacts.
type Engine interface {
	Run(rep int, seed int64) (*genealogy.Forest, feature.Genotypes, error)
}

// Options configures the per-replicate pipeline.
type Options struct {
	SrcID, TgtID string
	NRef, NTgt   int
	Ploidy       int
	Phased       bool

	WinLen       int
	IntroProp    float64
	NonIntroProp float64
	Features     feature.Config

	OutputDir    string
	OutputPrefix string
}

// Runner drives the full pipeline for one replicate: simulate, extract and
// persist true tracts, label windows, compute features, and join labels with
// feature vectors by sample identity.
type Runner struct {
	eng Engine
	opt Options
}

func NewRunner(eng Engine, opt Options) *Runner {
	return &Runner{eng: eng, opt: opt}
}

// TargetSamples returns the per-sample identifiers of the target population
// in a fixed order: one per haplotype when phased, one per individual when
// unphased.
func (r *Runner) TargetSamples() []string {
	var out []string
	for i := r.opt.NRef; i < r.opt.NRef+r.opt.NTgt; i++ {
		if r.opt.Phased {
			for h := 1; h <= r.opt.Ploidy; h++ {
				out = append(out, fmt.Sprintf("ind_%d_%d", i, h))
			}
		} else {
			out = append(out, fmt.Sprintf("ind_%d", i))
		}
	}
	return out
}

// Manifest maps the engine's genotype columns onto population membership.
// Sample nodes are laid out individual-major: columns [i*ploidy, (i+1)*ploidy)
// belong to individual i, reference individuals first.
func (r *Runner) Manifest() feature.Manifest {
	man := feature.Manifest{}
	for c := 0; c < r.opt.NRef*r.opt.Ploidy; c++ {
		man.Ref = append(man.Ref, c)
	}
	for i := r.opt.NRef; i < r.opt.NRef+r.opt.NTgt; i++ {
		if r.opt.Phased {
			for h := 0; h < r.opt.Ploidy; h++ {
				man.Tgt = append(man.Tgt, feature.TargetSample{
					ID:   fmt.Sprintf("ind_%d_%d", i, h+1),
					Cols: []int{i*r.opt.Ploidy + h},
				})
			}
		} else {
			cols := make([]int, r.opt.Ploidy)
			for h := range cols {
				cols[h] = i*r.opt.Ploidy + h
			}
			man.Tgt = append(man.Tgt, feature.TargetSample{
				ID:   fmt.Sprintf("ind_%d", i),
				Cols: cols,
			})
		}
	}
	return man
}

// ArtifactDir is where one replicate's intermediate files land.
func (r *Runner) ArtifactDir(rep int) string {
	return filepath.Join(r.opt.OutputDir, strconv.Itoa(rep))
}

// Simulate runs the simulation half of the pipeline: the engine, tract
// extraction and merging, and artifact persistence. Both dataset flavors
// build on it.
func (r *Runner) Simulate(ctx context.Context, rep int, seed int64) (*genealogy.Forest, feature.Genotypes, []tract.Tract, error) {
	if err := ctx.Err(); err != nil {
		return nil, feature.Genotypes{}, nil, err
	}

	forest, g, err := r.eng.Run(rep, seed)
	if err != nil {
		return nil, feature.Genotypes{}, nil, fmt.Errorf("replicate %d: %w", rep, err)
	}

	raw, err := tract.Extract(forest, r.opt.SrcID, r.opt.TgtID, r.opt.Ploidy, r.opt.Phased)
	if err != nil {
		return nil, feature.Genotypes{}, nil, fmt.Errorf("replicate %d: %w", rep, err)
	}
	merged := tract.Merge(raw)

	if err := r.writeArtifacts(rep, seed, merged); err != nil {
		return nil, feature.Genotypes{}, nil, fmt.Errorf("replicate %d: %w", rep, err)
	}
	return forest, g, merged, nil
}

// Run executes the pipeline for one replicate and returns its labeled
// feature records. Ambiguous windows contribute nothing.
func (r *Runner) Run(ctx context.Context, rep int, seed int64) ([]Record, error) {
	forest, g, merged, err := r.Simulate(ctx, rep, seed)
	if err != nil {
		return nil, err
	}

	labeler := window.Labeler{
		WinLen:       r.opt.WinLen,
		IntroProp:    r.opt.IntroProp,
		NonIntroProp: r.opt.NonIntroProp,
	}
	samples := r.TargetSamples()
	labels := labeler.Run(merged, samples, forest.SeqLen)

	type key struct {
		start  int
		sample string
	}
	byKey := make(map[key]int, len(labels))
	for _, l := range labels {
		byKey[key{l.Start, l.Sample}] = l.Label
	}

	man := r.Manifest()
	var out []Record
	for _, w := range window.Tile(forest.SeqLen, r.opt.WinLen) {
		vectors, err := feature.Compute(r.opt.Features, g, w.Start, w.End, man)
		if err != nil {
			return nil, fmt.Errorf("replicate %d: %w", rep, err)
		}
		for _, v := range vectors {
			label, ok := byKey[key{w.Start, v.Sample}]
			if !ok {
				continue // ambiguous window
			}
			out = append(out, Record{
				Replicate:  rep,
				Chromosome: "1",
				Start:      w.Start,
				End:        w.End,
				Sample:     v.Sample,
				Label:      label,
				Values:     v.Values,
			})
		}
	}
	return out, nil
}

// writeArtifacts persists the replicate's true tracts, seed, and individual
// lists under its own directory so concurrent replicates never collide.
func (r *Runner) writeArtifacts(rep int, seed int64, merged []tract.Tract) error {
	dir := r.ArtifactDir(rep)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	prefix := fmt.Sprintf("%s.%d", r.opt.OutputPrefix, rep)

	bed, err := os.Create(filepath.Join(dir, prefix+".true.tracts.bed"))
	if err != nil {
		return err
	}
	if err := tract.WriteBED(bed, merged); err != nil {
		_ = bed.Close()
		return err
	}
	if err := bed.Close(); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, prefix+".seed"), []byte(strconv.FormatInt(seed, 10)+"\n"), 0o644); err != nil {
		return err
	}

	var refList, tgtList []byte
	for i := 0; i < r.opt.NRef; i++ {
		refList = append(refList, fmt.Sprintf("ind_%d\n", i)...)
	}
	for i := r.opt.NRef; i < r.opt.NRef+r.opt.NTgt; i++ {
		tgtList = append(tgtList, fmt.Sprintf("ind_%d\n", i)...)
	}
	if err := os.WriteFile(filepath.Join(dir, prefix+".ref.ind.list"), refList, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, prefix+".tgt.ind.list"), tgtList, 0o644)
}
