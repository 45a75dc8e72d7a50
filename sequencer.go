package tonic

import (
	"math"
	"sync/atomic"
)

// ControlTrigger emits a trigger on the next tick after Trigger is called.
// Trigger methods are safe to call from any goroutine. Triggers that
// arrive within a single block are merged, the last value wins.
type ControlTrigger struct {
	ControlMemo
	pending atomic.Bool
	value   atomic.Uint64
}

// NewControlTrigger returns a trigger that holds zero until triggered.
func NewControlTrigger() *ControlTrigger {
	return &ControlTrigger{}
}

// Trigger emits trigger with value 1.
func (t *ControlTrigger) Trigger() {
	t.TriggerValue(1)
}

// TriggerValue emits trigger with provided value. For envelopes positive
// value is a gate-on and zero is a gate-off.
func (t *ControlTrigger) TriggerValue(v float64) {
	t.value.Store(math.Float64bits(v))
	t.pending.Store(true)
}

// Tick implements Control.
func (t *ControlTrigger) Tick(ctx *Context) ControlOutput {
	out, ok := t.Begin(ctx)
	if !ok {
		return out
	}
	out.Triggered = t.pending.Swap(false)
	if out.Triggered {
		out.Value = math.Float64frombits(t.value.Load())
	}
	return t.Done(ctx, out)
}

// Inputs implements Node.
func (t *ControlTrigger) Inputs() []Node {
	return nil
}

// ControlMetro emits triggers with value 1 at provided tempo. Beats are
// aligned to block boundaries: a block is triggered when a beat falls
// into it. Several beats within one block are merged.
type ControlMetro struct {
	ControlMemo
	bpm       Control
	untilNext float64
	started   bool
}

// NewControlMetro returns metro at 120 bpm.
func NewControlMetro() *ControlMetro {
	return &ControlMetro{bpm: ControlValue(120)}
}

// Bpm sets tempo control in beats per minute. Non-positive tempo stops
// the metro.
func (m *ControlMetro) Bpm(c Control) *ControlMetro {
	m.bpm = c
	return m
}

// Tick implements Control.
func (m *ControlMetro) Tick(ctx *Context) ControlOutput {
	out, ok := m.Begin(ctx)
	if !ok {
		return out
	}
	bpm := m.bpm.Tick(ctx).Value
	out = ControlOutput{Value: 1}
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return m.Done(ctx, out)
	}
	period := 60 / bpm * ctx.SampleRate
	if period < 1 {
		period = 1
	}
	if !m.started {
		m.started = true
		m.untilNext = 0
	}
	if m.untilNext > period {
		m.untilNext = period
	}
	n := float64(ctx.BlockSize)
	if m.untilNext < n {
		out.Triggered = true
		for m.untilNext < n {
			m.untilNext += period
		}
	}
	m.untilNext -= n
	return m.Done(ctx, out)
}

// Inputs implements Node.
func (m *ControlMetro) Inputs() []Node {
	return nodes(m.bpm)
}

// ControlStepper advances a value by step on every trigger. The value
// runs from start up to, but not including, end and then wraps to start.
// The first trigger emits start.
type ControlStepper struct {
	ControlMemo
	start, end, step Control
	trigger          Control
	bidirectional    bool

	value     float64
	direction float64
	primed    bool
	ticked    bool
}

// NewControlStepper returns stepper from 0 to 1 with step 1.
func NewControlStepper() *ControlStepper {
	return &ControlStepper{
		start:     ControlValue(0),
		end:       ControlValue(1),
		step:      ControlValue(1),
		trigger:   NewControlTrigger(),
		direction: 1,
	}
}

// Start sets first value control.
func (s *ControlStepper) Start(c Control) *ControlStepper {
	s.start = c
	return s
}

// End sets exclusive bound control.
func (s *ControlStepper) End(c Control) *ControlStepper {
	s.end = c
	return s
}

// Step sets increment control. Sign of the step is ignored.
func (s *ControlStepper) Step(c Control) *ControlStepper {
	s.step = c
	return s
}

// Trigger sets control which advances the stepper.
func (s *ControlStepper) Trigger(c Control) *ControlStepper {
	s.trigger = c
	return s
}

// Bidirectional makes stepper bounce between start and end instead of
// wrapping.
func (s *ControlStepper) Bidirectional(v bool) *ControlStepper {
	s.bidirectional = v
	return s
}

// Tick implements Control.
func (s *ControlStepper) Tick(ctx *Context) ControlOutput {
	out, ok := s.Begin(ctx)
	if !ok {
		return out
	}
	start := s.start.Tick(ctx).Value
	end := s.end.Tick(ctx).Value
	step := math.Abs(s.step.Tick(ctx).Value)
	trig := s.trigger.Tick(ctx)

	if !s.ticked {
		s.ticked = true
		s.value = start
	}
	if trig.Triggered {
		if s.primed {
			s.value = s.next(start, end, step)
		} else {
			s.primed = true
			s.value = start
		}
	}
	return s.Done(ctx, ControlOutput{Value: s.value, Triggered: trig.Triggered})
}

func (s *ControlStepper) next(start, end, step float64) float64 {
	if end <= start || step == 0 {
		return start
	}
	if !s.bidirectional {
		v := s.value + step
		if v >= end || v < start {
			return start
		}
		return v
	}
	v := s.value + s.direction*step
	if v >= end {
		s.direction = -1
		v = s.value - step
	} else if v < start {
		s.direction = 1
		v = s.value + step
	}
	if v < start || v >= end {
		return start
	}
	return v
}

// Inputs implements Node.
func (s *ControlStepper) Inputs() []Node {
	return nodes(s.start, s.end, s.step, s.trigger)
}

// ControlSwitcher routes the input selected by index to its output. It's
// triggered when the index changes or the selected input is triggered.
// All inputs are ticked every block, so their state doesn't depend on
// selection.
type ControlSwitcher struct {
	ControlMemo
	index  Control
	inputs []Control
	wrap   bool

	selected int
	ticked   bool
}

// NewControlSwitcher returns switcher without inputs.
func NewControlSwitcher() *ControlSwitcher {
	return &ControlSwitcher{index: ControlValue(0)}
}

// InputIndex sets control which selects the input.
func (s *ControlSwitcher) InputIndex(c Control) *ControlSwitcher {
	s.index = c
	return s
}

// AddInput appends a selectable input.
func (s *ControlSwitcher) AddInput(c Control) *ControlSwitcher {
	s.inputs = append(s.inputs, c)
	return s
}

// Wrap sets if out of range index wraps around. By default it's clamped.
func (s *ControlSwitcher) Wrap(v bool) *ControlSwitcher {
	s.wrap = v
	return s
}

// Tick implements Control.
func (s *ControlSwitcher) Tick(ctx *Context) ControlOutput {
	out, ok := s.Begin(ctx)
	if !ok {
		return out
	}
	idx := s.index.Tick(ctx)
	for _, in := range s.inputs {
		in.Tick(ctx)
	}
	if len(s.inputs) == 0 {
		return s.Done(ctx, ControlOutput{})
	}
	sel := s.clampIndex(idx.Value)
	selected := s.inputs[sel].Tick(ctx)
	out = ControlOutput{
		Value:     selected.Value,
		Triggered: !s.ticked || sel != s.selected || selected.Triggered,
	}
	s.selected = sel
	s.ticked = true
	return s.Done(ctx, out)
}

func (s *ControlSwitcher) clampIndex(v float64) int {
	n := len(s.inputs)
	if math.IsNaN(v) {
		return 0
	}
	i := int(math.Floor(clamp(v, math.MinInt32, math.MaxInt32)))
	if s.wrap {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Inputs implements Node.
func (s *ControlSwitcher) Inputs() []Node {
	ns := make([]Node, 0, len(s.inputs)+1)
	ns = append(ns, s.index)
	for _, c := range s.inputs {
		ns = append(ns, c)
	}
	return ns
}
