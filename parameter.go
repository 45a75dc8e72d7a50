package tonic

import (
	"fmt"
	"math"
	"sync/atomic"
)

// atomicFloat is a float64 stored in a single machine word.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Parameter is a named, bounded control which can be set from any
// goroutine while the graph is rendering. Its value is always within
// [min, max]. It's triggered on the first tick and every time its value
// has changed.
type Parameter struct {
	ControlMemo
	name        string
	displayName string
	def         float64
	value       atomicFloat
	min         atomicFloat
	max         atomicFloat

	last   float64
	ticked bool
}

func newParameter(name string, def float64) *Parameter {
	p := &Parameter{
		name:        name,
		displayName: name,
		def:         def,
	}
	p.min.Store(math.Min(def, 0))
	p.max.Store(math.Max(def, 1))
	p.value.Store(def)
	return p
}

// Min sets lower bound and clamps current value. Bounds aren't checked
// against each other until Validate: Min above the current max leaves the
// value at the new min until Max is set. Set min first, then max.
func (p *Parameter) Min(v float64) *Parameter {
	p.min.Store(v)
	p.SetValue(p.value.Load())
	return p
}

// Max sets upper bound and clamps current value. See Min for bound order.
func (p *Parameter) Max(v float64) *Parameter {
	p.max.Store(v)
	p.SetValue(p.value.Load())
	return p
}

// DisplayName sets name shown to users.
func (p *Parameter) DisplayName(name string) *Parameter {
	p.displayName = name
	return p
}

// Name returns name of the parameter.
func (p *Parameter) Name() string {
	return p.name
}

// Label returns display name of the parameter.
func (p *Parameter) Label() string {
	return p.displayName
}

// Default returns the value parameter was registered with.
func (p *Parameter) Default() float64 {
	return p.def
}

// Bounds returns min and max values.
func (p *Parameter) Bounds() (min, max float64) {
	return p.min.Load(), p.max.Load()
}

// Validate checks that bounds are finite and ordered.
func (p *Parameter) Validate() error {
	min, max := p.Bounds()
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min > max {
		return fmt.Errorf("parameter %q [%v, %v]: %w", p.name, min, max, ErrInvalidBounds)
	}
	return nil
}

// SetValue clamps v to bounds and stores it. NaN is ignored.
func (p *Parameter) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	min, max := p.Bounds()
	p.value.Store(clamp(v, min, max))
}

// Value implements Control. It's safe to call from any goroutine.
func (p *Parameter) Value() float64 {
	return p.value.Load()
}

// SetNormalizedValue maps x from [0, 1] to [min, max] linearly. x is
// clamped to [0, 1].
func (p *Parameter) SetNormalizedValue(x float64) {
	if math.IsNaN(x) {
		return
	}
	min, max := p.Bounds()
	p.SetValue(min + clamp(x, 0, 1)*(max-min))
}

// NormalizedValue maps value from [min, max] to [0, 1]. It's zero when
// bounds are equal.
func (p *Parameter) NormalizedValue() float64 {
	min, max := p.Bounds()
	if max == min {
		return 0
	}
	return (p.value.Load() - min) / (max - min)
}

// Tick implements Control.
func (p *Parameter) Tick(ctx *Context) ControlOutput {
	out, ok := p.Begin(ctx)
	if !ok {
		return out
	}
	v := p.value.Load()
	out = ControlOutput{Value: v, Triggered: !p.ticked || v != p.last}
	p.last = v
	p.ticked = true
	return p.Done(ctx, out)
}

// Inputs implements Node.
func (p *Parameter) Inputs() []Node {
	return nil
}

// ParameterInfo is a snapshot of parameter state for enumeration.
type ParameterInfo struct {
	Name            string
	DisplayName     string
	Value           float64
	Min             float64
	Max             float64
	NormalizedValue float64
}

// Info returns current parameter snapshot.
func (p *Parameter) Info() ParameterInfo {
	min, max := p.Bounds()
	return ParameterInfo{
		Name:            p.name,
		DisplayName:     p.displayName,
		Value:           p.Value(),
		Min:             min,
		Max:             max,
		NormalizedValue: p.NormalizedValue(),
	}
}
