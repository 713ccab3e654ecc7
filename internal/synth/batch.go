package synth

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/lti"
	"github.com/san-kum/polyplan/internal/partition"
)

// Job is one synthesis problem inside a batch: an initial state and the
// route it should follow.
type Job struct {
	X0    mat.Vector
	Start int
	End   int
}

// JobResult pairs a job index with its outcome.
type JobResult struct {
	Index int
	Plan  *Plan
	Err   error
}

// Batch solves many synthesis problems over the same plant and
// partition concurrently. The wrapped Synthesizer must be safe for
// concurrent use, which holds when its QP solver and oracle are
// stateless.
type Batch struct {
	Synth *Synthesizer
}

func NewBatch(s *Synthesizer) *Batch {
	return &Batch{Synth: s}
}

// RegionCenter returns a representative interior point of the region:
// the Chebyshev center of the piece with the largest inscribed ball.
func RegionCenter(r partition.Region, oracle geom.Oracle) (*mat.VecDense, error) {
	if oracle == nil {
		return nil, fmt.Errorf("%w: geometry oracle (region center)", ErrNotConfigured)
	}
	if len(r.Polys) == 0 {
		return nil, fmt.Errorf("synth: region has no pieces to center on")
	}
	var best *mat.VecDense
	bestRadius := math.Inf(-1)
	for _, p := range r.Polys {
		radius, center, err := oracle.ChebyshevBall(p)
		if err != nil {
			return nil, err
		}
		if radius > bestRadius {
			bestRadius = radius
			best = center
		}
	}
	return best, nil
}

// Run solves every job and returns results in job order. Jobs started
// after the context is cancelled report ctx.Err().
func (b *Batch) Run(
	ctx context.Context,
	jobs []Job,
	sys *lti.System,
	part *partition.Partition,
	horizon int,
	cost CostParams,
	opts Options,
) []JobResult {
	results := make([]JobResult, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, j Job) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[idx] = JobResult{Index: idx, Err: err}
				return
			}

			plan, err := b.Synth.SynthesizeInput(j.X0, sys, part, j.Start, j.End, horizon, cost, opts)
			results[idx] = JobResult{Index: idx, Plan: plan, Err: err}
		}(i, job)
	}
	wg.Wait()

	return results
}
