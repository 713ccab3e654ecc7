package metrics

import "math"

// PathLength is the total Euclidean distance traveled by the state.
type PathLength struct {
	name   string
	total  float64
	prev   []float64
	primed bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(x, u []float64, step int) {
	if p.primed && len(x) == len(p.prev) {
		var d float64
		for i := range x {
			diff := x[i] - p.prev[i]
			d += diff * diff
		}
		p.total += math.Sqrt(d)
	}
	p.prev = append(p.prev[:0], x...)
	p.primed = true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.total = 0
	p.prev = p.prev[:0]
	p.primed = false
}

// TerminalDistance is the Euclidean distance from the final state to a
// fixed point, typically the target piece's Chebyshev center.
type TerminalDistance struct {
	name   string
	target []float64
	last   []float64
}

func NewTerminalDistance(target []float64) *TerminalDistance {
	return &TerminalDistance{name: "terminal_distance", target: target}
}

func (t *TerminalDistance) Name() string { return t.name }

func (t *TerminalDistance) Observe(x, u []float64, step int) {
	t.last = append(t.last[:0], x...)
}

func (t *TerminalDistance) Value() float64 {
	if len(t.last) != len(t.target) {
		return math.NaN()
	}
	var d float64
	for i := range t.last {
		diff := t.last[i] - t.target[i]
		d += diff * diff
	}
	return math.Sqrt(d)
}

func (t *TerminalDistance) Reset() {
	t.last = t.last[:0]
}
