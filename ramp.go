package tonic

import "math"

// DefaultSmoothing is the ramp length of Smoothed, in seconds.
const DefaultSmoothing = 0.05

// maxRampSamples limits ramp length, longer or infinite lengths are
// truncated to it.
const maxRampSamples = math.MaxInt32

// Ramp turns stepwise control into a continuous signal. Every time the
// target changes, the output moves linearly from its current value to the
// new target within the ramp length. A new target during a ramp restarts
// it from the current position.
type Ramp struct {
	BlockMemo
	target  Control
	length  Control
	samples int

	value     float64
	goal      float64
	increment float64
	remaining int
	started   bool
}

// Smoothed returns ramp following provided control with DefaultSmoothing
// length.
func Smoothed(c Control) *Ramp {
	return &Ramp{
		BlockMemo: NewBlockMemo(),
		target:    c,
		length:    ControlValue(DefaultSmoothing),
		samples:   -1,
	}
}

// Length sets ramp length control in seconds.
func (r *Ramp) Length(c Control) *Ramp {
	r.length = c
	r.samples = -1
	return r
}

// LengthSamples sets fixed ramp length in samples. It overrides Length.
func (r *Ramp) LengthSamples(n int) *Ramp {
	if n < 0 {
		n = 0
	}
	r.samples = n
	return r
}

// Tick implements Generator.
func (r *Ramp) Tick(ctx *Context) []float64 {
	out, ok := r.Begin(ctx)
	if !ok {
		return out
	}
	target := r.target.Tick(ctx).Value
	length := r.length.Tick(ctx).Value
	if math.IsNaN(target) || math.IsInf(target, 0) {
		target = r.goal
	}
	switch {
	case !r.started:
		r.started = true
		r.value, r.goal = target, target
	case target != r.goal:
		r.goal = target
		n := r.samples
		if n < 0 {
			n = rampSamples(length * ctx.SampleRate)
		}
		if n == 0 {
			r.value = target
			r.remaining = 0
		} else {
			r.increment = (target - r.value) / float64(n)
			r.remaining = n
		}
	}
	for i := range out {
		if r.remaining > 0 {
			r.remaining--
			r.value += r.increment
			if r.remaining == 0 {
				r.value = r.goal
			}
		}
		out[i] = r.value
	}
	r.Done(ctx)
	return out
}

// Inputs implements Node.
func (r *Ramp) Inputs() []Node {
	return nodes(r.target, r.length)
}

func rampSamples(n float64) int {
	switch {
	case math.IsNaN(n) || n <= 0:
		return 0
	case n > maxRampSamples:
		return maxRampSamples
	}
	return int(n)
}
