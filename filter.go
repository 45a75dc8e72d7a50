package tonic

import "math"

// Filter stability bounds. Cutoff is limited relative to the sample rate.
const (
	MinCutoff      = 10.0
	MaxCutoffRatio = 0.49
	MinQ           = 0.1
	MaxQ           = 20.0
)

type filterKind int

const (
	lowPass filterKind = iota
	highPass
)

// biquad is a transposed direct form II second order section.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

func (f *biquad) reset() {
	f.z1, f.z2 = 0, 0
}

func (f *biquad) finite() bool {
	return !math.IsNaN(f.z1+f.z2) && !math.IsInf(f.z1+f.z2, 0)
}

// coefficients follow the RBJ audio EQ cookbook.
func (f *biquad) coefficients(kind filterKind, cutoff, q, sampleRate float64) {
	w0 := 2 * math.Pi * cutoff / sampleRate
	cos := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	switch kind {
	case lowPass:
		f.b0 = (1 - cos) / 2 / a0
		f.b1 = (1 - cos) / a0
	case highPass:
		f.b0 = (1 + cos) / 2 / a0
		f.b1 = -(1 + cos) / a0
	}
	f.b2 = f.b0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

// Filter is a resonant low-pass or high-pass filter made of one or two
// biquad sections. Coefficients are derived once per block.
type Filter struct {
	BlockMemo
	kind     filterKind
	input    Generator
	cutoff   Control
	q        Control
	sections []biquad
}

func newFilter(kind filterKind, numSections int) *Filter {
	return &Filter{
		BlockMemo: NewBlockMemo(),
		kind:      kind,
		input:     Const(0),
		cutoff:    ControlValue(1000),
		q:         ControlValue(math.Sqrt2 / 2),
		sections:  make([]biquad, numSections),
	}
}

// NewLPF12 returns 12 dB/oct low-pass filter.
func NewLPF12() *Filter {
	return newFilter(lowPass, 1)
}

// NewLPF24 returns 24 dB/oct low-pass filter.
func NewLPF24() *Filter {
	return newFilter(lowPass, 2)
}

// NewHPF12 returns 12 dB/oct high-pass filter.
func NewHPF12() *Filter {
	return newFilter(highPass, 1)
}

// NewHPF24 returns 24 dB/oct high-pass filter.
func NewHPF24() *Filter {
	return newFilter(highPass, 2)
}

// Input sets filtered generator.
func (f *Filter) Input(g Generator) *Filter {
	f.input = g
	return f
}

// Cutoff sets cutoff frequency control in Hz. It's clamped to
// [MinCutoff, MaxCutoffRatio*sampleRate].
func (f *Filter) Cutoff(c Control) *Filter {
	f.cutoff = c
	return f
}

// Q sets resonance control. It's clamped to [MinQ, MaxQ].
func (f *Filter) Q(c Control) *Filter {
	f.q = c
	return f
}

// Tick implements Generator.
func (f *Filter) Tick(ctx *Context) []float64 {
	out, ok := f.Begin(ctx)
	if !ok {
		return out
	}
	cutoff := f.cutoff.Tick(ctx).Value
	q := f.q.Tick(ctx).Value
	if math.IsNaN(cutoff) {
		cutoff = MinCutoff
	}
	if math.IsNaN(q) {
		q = MinQ
	}
	cutoff = clamp(cutoff, MinCutoff, MaxCutoffRatio*ctx.SampleRate)
	q = clamp(q, MinQ, MaxQ)
	for i := range f.sections {
		f.sections[i].coefficients(f.kind, cutoff, q, ctx.SampleRate)
	}

	in := f.input.Tick(ctx)
	for i, x := range in {
		for j := range f.sections {
			x = f.sections[j].process(x)
		}
		out[i] = x
	}
	for i := range f.sections {
		if !f.sections[i].finite() {
			f.resetAll(out)
			break
		}
	}
	f.Done(ctx)
	return out
}

func (f *Filter) resetAll(out []float64) {
	for i := range f.sections {
		f.sections[i].reset()
	}
	for i := range out {
		out[i] = 0
	}
}

// Inputs implements Node.
func (f *Filter) Inputs() []Node {
	return nodes(f.input, f.cutoff, f.q)
}
