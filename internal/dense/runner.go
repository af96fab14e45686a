// internal/dense/runner.go
package dense

import (
	"context"

	"introsim-core/window"

	"introsim/internal/replicate"
)

// Runner produces one replicate's window-matrix items. It reuses the scalar
// pipeline's simulation stage (engine, tract extraction, artifacts) and
// swaps the per-window feature vectors for fixed-width genotype blocks.
type Runner struct {
	base  *replicate.Runner
	opt   replicate.Options
	nsite int
}

func NewRunner(base *replicate.Runner, opt replicate.Options, nsite int) *Runner {
	return &Runner{base: base, opt: opt, nsite: nsite}
}

// Run simulates one replicate and returns its labeled matrix items.
func (r *Runner) Run(ctx context.Context, rep int, seed int64) ([]Item, error) {
	forest, g, merged, err := r.base.Simulate(ctx, rep, seed)
	if err != nil {
		return nil, err
	}

	labeler := window.Labeler{
		WinLen:       r.opt.WinLen,
		IntroProp:    r.opt.IntroProp,
		NonIntroProp: r.opt.NonIntroProp,
	}
	labels := labeler.Run(merged, r.base.TargetSamples(), forest.SeqLen)
	return Build(rep, g, merged, labels, r.nsite), nil
}
