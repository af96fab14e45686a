// internal/sched/sched.go
package sched

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"introsim/internal/cmdutil"
	"introsim/internal/replicate"
)

// Job runs the full per-replicate pipeline and returns its labeled records.
// It must be a pure function of (rep, seed) apart from the artifact files it
// writes under its own replicate directory.
type Job func(ctx context.Context, rep int, seed int64) ([]replicate.Record, error)

// Options drives the balanced iterative collection loop.
type Options struct {
	NFeature int // total records requested (> 0)
	NRep     int // replicates per batch (> 0)
	Workers  int // parallel jobs; 0 = all CPUs
	Seed     int64

	ForceBalanced bool
	Shuffled      bool

	// KeepSimData retains per-replicate artifact directories after a batch
	// has been merged; it has no effect on the final dataset.
	KeepSimData bool
	OutputDir   string

	Quiet bool
	Log   io.Writer
}

// Quotas splits the requested total across classes. An odd total gives the
// extra record to the positive (introgressed) class.
func Quotas(nfeature int) (pos, neg int) {
	return nfeature/2 + nfeature%2, nfeature / 2
}

// collector is the scheduler's only mutable state: the two class
// accumulators and the replicate cursor. One instance per run, never
// shared.
type collector struct {
	pos, neg []replicate.Record
	startRep int
}

// Run launches batches of replicates until the collection target is met,
// then returns exactly NFeature records. Any job failure aborts the run with
// no partial result. Output order is deterministic given (Seed,
// ForceBalanced, Shuffled): records are globally sorted — or shuffled with
// the seeded generator — after collection, independent of worker completion
// order.
func Run(ctx context.Context, opt Options, job Job) ([]replicate.Record, error) {
	if opt.NFeature <= 0 {
		return nil, fmt.Errorf("nfeature must be positive, got %d", opt.NFeature)
	}
	if opt.NRep <= 0 {
		return nil, fmt.Errorf("nrep must be positive, got %d", opt.NRep)
	}
	if opt.Workers <= 0 {
		opt.Workers = runtime.NumCPU()
	}
	if opt.Log == nil {
		opt.Log = io.Discard
	}

	wantPos, wantNeg := Quotas(opt.NFeature)
	var col collector

	for {
		batch, err := runBatch(ctx, opt, job, col.startRep)
		if err != nil {
			return nil, err
		}
		replicate.Sort(batch)

		var pos, neg []replicate.Record
		for _, r := range batch {
			if r.Label == 1 {
				pos = append(pos, r)
			} else {
				neg = append(neg, r)
			}
		}

		done := false
		if opt.ForceBalanced {
			// Append only up to the remaining quota of each class; surplus
			// records of a filled class are discarded, not stored.
			if n := wantPos - len(col.pos); n > 0 {
				if n > len(pos) {
					n = len(pos)
				}
				col.pos = append(col.pos, pos[:n]...)
			}
			if n := wantNeg - len(col.neg); n > 0 {
				if n > len(neg) {
					n = len(neg)
				}
				col.neg = append(col.neg, neg[:n]...)
			}
			done = len(col.pos) >= wantPos && len(col.neg) >= wantNeg
		} else {
			col.pos = append(col.pos, pos...)
			col.neg = append(col.neg, neg...)
			done = len(col.pos)+len(col.neg) >= opt.NFeature
		}

		// Safe only now: the batch's records are merged into the
		// accumulators.
		if !opt.KeepSimData && opt.OutputDir != "" {
			for rep := col.startRep; rep < col.startRep+opt.NRep; rep++ {
				_ = os.RemoveAll(filepath.Join(opt.OutputDir, strconv.Itoa(rep)))
			}
		}

		cmdutil.Progressf(opt.Log, opt.Quiet, "collected %d of %d records",
			len(col.pos)+len(col.neg), opt.NFeature)

		// Advance the cursor unconditionally: replicate indices are never
		// re-run.
		col.startRep += opt.NRep
		if done {
			break
		}
	}

	total := make([]replicate.Record, 0, len(col.pos)+len(col.neg))
	total = append(total, col.pos...)
	total = append(total, col.neg...)
	if len(total) > opt.NFeature {
		total = total[:opt.NFeature]
	}

	if opt.Shuffled {
		rng := rand.New(rand.NewSource(opt.Seed))
		rng.Shuffle(len(total), func(i, j int) { total[i], total[j] = total[j], total[i] })
	} else {
		replicate.Sort(total)
	}
	return total, nil
}

// runBatch dispatches one batch across the worker pool and blocks until
// every replicate finishes. The first error cancels the remaining jobs and
// fails the batch.
func runBatch(ctx context.Context, opt Options, job Job, startRep int) ([]replicate.Record, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Workers)

	results := make([][]replicate.Record, opt.NRep)
	for i := 0; i < opt.NRep; i++ {
		i := i
		rep := startRep + i
		g.Go(func() error {
			recs, err := job(ctx, rep, ReplicateSeed(opt.Seed, rep))
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var batch []replicate.Record
	for _, recs := range results {
		batch = append(batch, recs...)
	}
	return batch, nil
}
