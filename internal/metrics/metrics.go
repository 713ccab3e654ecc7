// Package metrics scores synthesized trajectories with streaming
// observers fed one step at a time.
package metrics

// Metric observes trajectory samples and reduces them to one number.
type Metric interface {
	Name() string
	Observe(x, u []float64, step int)
	Value() float64
	Reset()
}

// Evaluate feeds every trajectory row through the given metrics and
// collects the results by name. Input rows beyond the sequence length
// are fed as nil, so metrics see the terminal state too.
func Evaluate(states, inputs [][]float64, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for k, x := range states {
		var u []float64
		if k < len(inputs) {
			u = inputs[k]
		}
		for _, m := range ms {
			m.Observe(x, u, k)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults are the metrics reported after every synthesis run.
func Defaults() []Metric {
	return []Metric{
		NewInputEffort(),
		NewInputEnergy(),
		NewPathLength(),
	}
}
