package metrics

import "math"

// InputEffort is the mean absolute input over all applied steps.
type InputEffort struct {
	name    string
	sum     float64
	samples int
}

func NewInputEffort() *InputEffort {
	return &InputEffort{name: "input_effort"}
}

func (c *InputEffort) Name() string { return c.name }

func (c *InputEffort) Observe(x, u []float64, step int) {
	if len(u) == 0 {
		return
	}
	for _, val := range u {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *InputEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *InputEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// InputEnergy is the summed squared input, the open-loop actuation cost.
type InputEnergy struct {
	name string
	sum  float64
}

func NewInputEnergy() *InputEnergy {
	return &InputEnergy{name: "input_energy"}
}

func (e *InputEnergy) Name() string { return e.name }

func (e *InputEnergy) Observe(x, u []float64, step int) {
	for _, val := range u {
		e.sum += val * val
	}
}

func (e *InputEnergy) Value() float64 { return e.sum }

func (e *InputEnergy) Reset() { e.sum = 0 }
