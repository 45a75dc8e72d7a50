package tonic

import (
	"math"
	"math/rand"
)

// DefaultFrequency is the frequency of new oscillators.
const DefaultFrequency = 440

// phasor accumulates normalized phase in [0, 1).
type phasor struct {
	BlockMemo
	freq  Generator
	phase float64
}

func newPhasor() phasor {
	return phasor{
		BlockMemo: NewBlockMemo(),
		freq:      Const(DefaultFrequency),
	}
}

// step returns current phase and advances it by f/sampleRate.
func (p *phasor) step(f, sampleRate float64) float64 {
	ph := p.phase
	p.phase += f / sampleRate
	p.phase -= math.Floor(p.phase)
	if math.IsNaN(p.phase) || math.IsInf(p.phase, 0) {
		p.phase = 0
	}
	return ph
}

// Phase returns current phase of oscillator.
func (p *phasor) Phase() float64 {
	return p.phase
}

// Inputs implements Node.
func (p *phasor) Inputs() []Node {
	return nodes(p.freq)
}

// SineWave is a sine oscillator.
type SineWave struct {
	phasor
}

// NewSineWave returns sine oscillator at DefaultFrequency.
func NewSineWave() *SineWave {
	return &SineWave{phasor: newPhasor()}
}

// Freq sets frequency generator. Frequency is read every sample.
func (s *SineWave) Freq(g Generator) *SineWave {
	s.freq = g
	return s
}

// Tick implements Generator.
func (s *SineWave) Tick(ctx *Context) []float64 {
	out, ok := s.Begin(ctx)
	if !ok {
		return out
	}
	freq := s.freq.Tick(ctx)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * s.step(freq[i], ctx.SampleRate))
	}
	s.Done(ctx)
	return out
}

// RectWave is a pulse oscillator.
type RectWave struct {
	phasor
	width Control
}

// NewRectWave returns square oscillator at DefaultFrequency.
func NewRectWave() *RectWave {
	return &RectWave{
		phasor: newPhasor(),
		width:  ControlValue(0.5),
	}
}

// Freq sets frequency generator. Frequency is read every sample.
func (r *RectWave) Freq(g Generator) *RectWave {
	r.freq = g
	return r
}

// PulseWidth sets duty cycle, clamped to [0, 1].
func (r *RectWave) PulseWidth(c Control) *RectWave {
	r.width = c
	return r
}

// Tick implements Generator.
func (r *RectWave) Tick(ctx *Context) []float64 {
	out, ok := r.Begin(ctx)
	if !ok {
		return out
	}
	width := clamp(r.width.Tick(ctx).Value, 0, 1)
	freq := r.freq.Tick(ctx)
	for i := range out {
		if r.step(freq[i], ctx.SampleRate) < width {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	r.Done(ctx)
	return out
}

// Inputs implements Node.
func (r *RectWave) Inputs() []Node {
	return nodes(r.freq, r.width)
}

// SawWave is a rising sawtooth oscillator.
type SawWave struct {
	phasor
}

// NewSawWave returns saw oscillator at DefaultFrequency.
func NewSawWave() *SawWave {
	return &SawWave{phasor: newPhasor()}
}

// Freq sets frequency generator. Frequency is read every sample.
func (s *SawWave) Freq(g Generator) *SawWave {
	s.freq = g
	return s
}

// Tick implements Generator.
func (s *SawWave) Tick(ctx *Context) []float64 {
	out, ok := s.Begin(ctx)
	if !ok {
		return out
	}
	freq := s.freq.Tick(ctx)
	for i := range out {
		out[i] = 2*s.step(freq[i], ctx.SampleRate) - 1
	}
	s.Done(ctx)
	return out
}

// Noise is a white noise generator.
type Noise struct {
	BlockMemo
	rand *rand.Rand
}

// NewNoise returns white noise generator with provided seed.
func NewNoise(seed int64) *Noise {
	return &Noise{
		BlockMemo: NewBlockMemo(),
		rand:      rand.New(rand.NewSource(seed)),
	}
}

// Tick implements Generator.
func (n *Noise) Tick(ctx *Context) []float64 {
	out, ok := n.Begin(ctx)
	if !ok {
		return out
	}
	for i := range out {
		out[i] = n.rand.Float64()*2 - 1
	}
	n.Done(ctx)
	return out
}

// Inputs implements Node.
func (n *Noise) Inputs() []Node {
	return nil
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
