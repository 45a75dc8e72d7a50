package tonic

import "math"

// Standard tuning reference.
const (
	ReferenceNote      = 69
	ReferenceFrequency = 440
)

// MidiToFreq converts midi note number to frequency in standard tuning.
func MidiToFreq(note float64) float64 {
	return ReferenceFrequency * math.Pow(2, (note-ReferenceNote)/12)
}

// FreqToMidi converts frequency to midi note number in standard tuning.
// Non-positive frequency returns negative infinity.
func FreqToMidi(freq float64) float64 {
	if freq <= 0 {
		return math.Inf(-1)
	}
	return ReferenceNote + 12*math.Log2(freq/ReferenceFrequency)
}

// SnapToScale returns the member of {offset + 12k} nearest to x, where
// offset is any value of scale and k is any integer. Ties resolve to the
// lower pitch. Empty scale returns x.
func SnapToScale(x float64, scale []float64) float64 {
	if len(scale) == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	best, bestDist := 0.0, math.Inf(1)
	for _, offset := range scale {
		below := offset + 12*math.Floor((x-offset)/12)
		for _, c := range [2]float64{below, below + 12} {
			d := math.Abs(x - c)
			if d < bestDist || (d == bestDist && c < best) {
				best, bestDist = c, d
			}
		}
	}
	return best
}

// ControlSnapToScale snaps input to the nearest note of the scale in any
// octave. Scale is a set of semitone offsets within an octave.
type ControlSnapToScale struct {
	ControlMemo
	input Control
	scale []float64
}

// NewControlSnapToScale returns snapper with chromatic scale.
func NewControlSnapToScale() *ControlSnapToScale {
	return &ControlSnapToScale{
		input: ControlValue(0),
		scale: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	}
}

// Input sets snapped control.
func (s *ControlSnapToScale) Input(c Control) *ControlSnapToScale {
	s.input = c
	return s
}

// Scale sets semitone offsets. The slice is copied.
func (s *ControlSnapToScale) Scale(scale []float64) *ControlSnapToScale {
	s.scale = append([]float64(nil), scale...)
	return s
}

// Tick implements Control.
func (s *ControlSnapToScale) Tick(ctx *Context) ControlOutput {
	out, ok := s.Begin(ctx)
	if !ok {
		return out
	}
	in := s.input.Tick(ctx)
	return s.Done(ctx, ControlOutput{
		Value:     SnapToScale(in.Value, s.scale),
		Triggered: in.Triggered,
	})
}

// Inputs implements Node.
func (s *ControlSnapToScale) Inputs() []Node {
	return nodes(s.input)
}

// ControlMidiToFreq converts midi note control into frequency.
type ControlMidiToFreq struct {
	ControlMemo
	input   Control
	refNote float64
	refFreq float64
}

// NewControlMidiToFreq returns converter in standard tuning.
func NewControlMidiToFreq() *ControlMidiToFreq {
	return &ControlMidiToFreq{
		input:   ControlValue(ReferenceNote),
		refNote: ReferenceNote,
		refFreq: ReferenceFrequency,
	}
}

// Input sets note control.
func (m *ControlMidiToFreq) Input(c Control) *ControlMidiToFreq {
	m.input = c
	return m
}

// Reference sets tuning: note which sounds at freq.
func (m *ControlMidiToFreq) Reference(note, freq float64) *ControlMidiToFreq {
	m.refNote = note
	m.refFreq = freq
	return m
}

// Tick implements Control.
func (m *ControlMidiToFreq) Tick(ctx *Context) ControlOutput {
	out, ok := m.Begin(ctx)
	if !ok {
		return out
	}
	in := m.input.Tick(ctx)
	return m.Done(ctx, ControlOutput{
		Value:     m.refFreq * math.Pow(2, (in.Value-m.refNote)/12),
		Triggered: in.Triggered,
	})
}

// Inputs implements Node.
func (m *ControlMidiToFreq) Inputs() []Node {
	return nodes(m.input)
}

// ControlFreqToMidi converts frequency control into midi note number.
type ControlFreqToMidi struct {
	ControlMemo
	input Control
}

// NewControlFreqToMidi returns converter in standard tuning.
func NewControlFreqToMidi() *ControlFreqToMidi {
	return &ControlFreqToMidi{input: ControlValue(ReferenceFrequency)}
}

// Input sets frequency control.
func (m *ControlFreqToMidi) Input(c Control) *ControlFreqToMidi {
	m.input = c
	return m
}

// Tick implements Control. Non-positive frequency maps to note 0.
func (m *ControlFreqToMidi) Tick(ctx *Context) ControlOutput {
	out, ok := m.Begin(ctx)
	if !ok {
		return out
	}
	in := m.input.Tick(ctx)
	note := FreqToMidi(in.Value)
	if math.IsInf(note, 0) || math.IsNaN(note) {
		note = 0
	}
	return m.Done(ctx, ControlOutput{Value: note, Triggered: in.Triggered})
}

// Inputs implements Node.
func (m *ControlFreqToMidi) Inputs() []Node {
	return nodes(m.input)
}
