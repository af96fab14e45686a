// internal/dense/sched.go
package dense

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"introsim/internal/cmdutil"
	"introsim/internal/sched"
)

// Job runs the per-replicate matrix pipeline.
type Job func(ctx context.Context, rep int, seed int64) ([]Item, error)

// Sink receives admitted items in arrival order. It is called from a single
// goroutine.
type Sink interface {
	Write(Item) error
}

// Options drives the dense collection loop.
type Options struct {
	NFeature int // total matrices requested (> 0)
	NRep     int // replicates per batch (> 0)
	Workers  int // parallel jobs; 0 = all CPUs
	Seed     int64

	ForceBalanced bool
	Mode          Mode

	KeepSimData bool
	OutputDir   string

	Quiet bool
	Log   io.Writer
}

// Run launches batches of replicates until the shared quota is met,
// streaming admitted matrices to the sink as workers produce them. Unlike
// the scalar scheduler there is no global post-sort: workers gate each item
// through the quota's check-and-increment and the arrival order is whatever
// the pool produces. Any job or sink failure aborts the run.
func Run(ctx context.Context, opt Options, job Job, sink Sink) (pos, neg int, err error) {
	if opt.NRep <= 0 {
		return 0, 0, fmt.Errorf("nrep must be positive, got %d", opt.NRep)
	}
	if opt.Workers <= 0 {
		opt.Workers = runtime.NumCPU()
	}
	if opt.Log == nil {
		opt.Log = io.Discard
	}
	quota, err := NewQuota(opt.NFeature, opt.ForceBalanced, opt.Mode)
	if err != nil {
		return 0, 0, err
	}

	startRep := 0
	for {
		if err := runBatch(ctx, opt, job, quota, sink, startRep); err != nil {
			return 0, 0, err
		}

		if !opt.KeepSimData && opt.OutputDir != "" {
			for rep := startRep; rep < startRep+opt.NRep; rep++ {
				_ = os.RemoveAll(filepath.Join(opt.OutputDir, strconv.Itoa(rep)))
			}
		}

		p, n := quota.Counts()
		cmdutil.Progressf(opt.Log, opt.Quiet, "collected %d of %d matrices",
			p+n, opt.NFeature)

		startRep += opt.NRep
		if quota.Done() {
			break
		}
	}

	pos, neg = quota.Counts()
	return pos, neg, nil
}

// runBatch dispatches one batch across the worker pool. Workers gate items
// through the quota and hand survivors to a single collector goroutine that
// owns the sink.
func runBatch(ctx context.Context, opt Options, job Job, quota *Quota, sink Sink, startRep int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Workers)

	items := make(chan Item, opt.Workers)
	writeErr := make(chan error, 1)
	go func() {
		for it := range items {
			if err := sink.Write(it); err != nil {
				writeErr <- err
				// Drain so blocked workers can finish.
				for range items {
				}
				return
			}
		}
		writeErr <- nil
	}()

	for i := 0; i < opt.NRep; i++ {
		rep := startRep + i
		g.Go(func() error {
			out, err := job(ctx, rep, sched.ReplicateSeed(opt.Seed, rep))
			if err != nil {
				return err
			}
			for _, it := range out {
				if !quota.Admit(it.Label) {
					continue
				}
				select {
				case items <- it:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	err := g.Wait()
	close(items)
	if werr := <-writeErr; werr != nil {
		return werr
	}
	return err
}
