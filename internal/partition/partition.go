package partition

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/geom"
)

// CellNotFound is the sentinel index returned by Locate when no region
// contains the queried point.
const CellNotFound = -1

var (
	// ErrCellIndex indicates a start or end index outside the partition.
	ErrCellIndex = errors.New("partition: cell index out of range")

	// ErrNoOrig indicates the original pre-abstraction partition was
	// requested but is not attached.
	ErrNoOrig = errors.New("partition: original partition not available")
)

// Region is one discrete state of the partition: a union of convex
// polytope pieces. A region with zero pieces is the sentinel for the
// whole space.
type Region struct {
	Polys []*geom.Polytope
}

// Contains reports whether any piece of the region contains x.
// The zero-piece sentinel region contains every point.
func (r Region) Contains(x mat.Vector) bool {
	if len(r.Polys) == 0 {
		return true
	}
	for _, p := range r.Polys {
		if p.Contains(x) {
			return true
		}
	}
	return false
}

// Partition is an ordered sequence of regions plus the optional metadata
// the synthesis core consumes: the refinement map back to the original
// proposition-preserving cells, and the discrete transition adjacency.
type Partition struct {
	// Regions are the discrete states, in partition order.
	Regions []Region

	// Orig maps a region index to the index of the original cell it was
	// refined from; nil when no refinement map is attached.
	Orig []int

	// OrigRegions are the original pre-abstraction cells referenced by
	// Orig.
	OrigRegions []Region

	// Trans is the transition adjacency: Trans[j][i] == 1 declares a
	// one-step transition from cell i to cell j. Nil means no
	// abstraction-level transition information is available.
	Trans [][]int
}

// NumRegions returns the number of discrete states.
func (p *Partition) NumRegions() int { return len(p.Regions) }

// Validate checks internal consistency of the attached metadata.
func (p *Partition) Validate() error {
	n := len(p.Regions)
	if p.Trans != nil {
		if len(p.Trans) != n {
			return fmt.Errorf("partition: transition matrix has %d rows, want %d", len(p.Trans), n)
		}
		for j, row := range p.Trans {
			if len(row) != n {
				return fmt.Errorf("partition: transition row %d has %d entries, want %d", j, len(row), n)
			}
		}
	}
	if p.Orig != nil {
		if len(p.Orig) != n {
			return fmt.Errorf("partition: orig map has %d entries, want %d", len(p.Orig), n)
		}
		for i, o := range p.Orig {
			if o < 0 || o >= len(p.OrigRegions) {
				return fmt.Errorf("partition: orig[%d] = %d outside original partition", i, o)
			}
		}
	}
	return nil
}

// HasTransMatrix reports whether abstraction-level transition information
// is attached.
func (p *Partition) HasTransMatrix() bool { return p.Trans != nil }

// TransitionDeclared reports whether the abstraction declares a one-step
// transition from cell start to cell end. Only meaningful when a
// transition matrix is attached.
func (p *Partition) TransitionDeclared(start, end int) bool {
	return p.Trans[end][start] == 1
}

// CheckIndices validates that start and end name existing regions.
func (p *Partition) CheckIndices(start, end int) error {
	if start < 0 || start >= len(p.Regions) {
		return fmt.Errorf("%w: start %d", ErrCellIndex, start)
	}
	if end < 0 || end >= len(p.Regions) {
		return fmt.Errorf("%w: end %d", ErrCellIndex, end)
	}
	return nil
}

// OrigRegion resolves the original pre-abstraction cell a region was
// refined from.
func (p *Partition) OrigRegion(i int) (Region, error) {
	if p.Orig == nil || p.OrigRegions == nil {
		return Region{}, ErrNoOrig
	}
	if i < 0 || i >= len(p.Orig) {
		return Region{}, fmt.Errorf("%w: %d", ErrCellIndex, i)
	}
	return p.OrigRegions[p.Orig[i]], nil
}
