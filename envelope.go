package tonic

// EnvelopeState is a stage of ADSR envelope.
type EnvelopeState int

const (
	// Idle means envelope is silent and waits for gate-on.
	Idle EnvelopeState = iota
	// Attack ramps towards 1.
	Attack
	// Decay ramps from 1 towards sustain level.
	Decay
	// Sustain holds sustain level until gate-off.
	Sustain
	// Release ramps towards 0.
	Release
)

func (s EnvelopeState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	}
	return "unknown"
}

// ADSR is a linear attack-decay-sustain-release envelope. Trigger with
// positive value is a gate-on, trigger with zero value is a gate-off.
// Transitions always start from the current value, so output never jumps.
// Every stage spans its full time regardless of the starting value: a
// retrigger at 0.5 still takes the whole attack time to reach 1.
type ADSR struct {
	BlockMemo
	attack, decay, sustain, release Control
	trigger                         Control
	doesSustain                     bool
	legato                          bool

	state EnvelopeState
	value float64
	slope float64
	level float64
	// stage durations in samples, refreshed every block
	attackN, decayN, releaseN float64
}

// NewADSR returns envelope with provided times in seconds and sustain
// level. It's idle until triggered.
func NewADSR(attack, decay, sustain, release float64) *ADSR {
	return &ADSR{
		BlockMemo:   NewBlockMemo(),
		attack:      ControlValue(attack),
		decay:       ControlValue(decay),
		sustain:     ControlValue(sustain),
		release:     ControlValue(release),
		trigger:     ControlValue(0),
		doesSustain: true,
	}
}

// Attack sets attack time control.
func (e *ADSR) Attack(c Control) *ADSR {
	e.attack = c
	return e
}

// Decay sets decay time control.
func (e *ADSR) Decay(c Control) *ADSR {
	e.decay = c
	return e
}

// Sustain sets sustain level control.
func (e *ADSR) Sustain(c Control) *ADSR {
	e.sustain = c
	return e
}

// Release sets release time control.
func (e *ADSR) Release(c Control) *ADSR {
	e.release = c
	return e
}

// Trigger sets gate control.
func (e *ADSR) Trigger(c Control) *ADSR {
	e.trigger = c
	return e
}

// DoesSustain sets if envelope holds sustain level until gate-off. If
// false, release starts as soon as decay is done.
func (e *ADSR) DoesSustain(v bool) *ADSR {
	e.doesSustain = v
	return e
}

// Legato sets if gate-on during attack, decay or sustain is ignored.
func (e *ADSR) Legato(v bool) *ADSR {
	e.legato = v
	return e
}

// State returns current envelope stage.
func (e *ADSR) State() EnvelopeState {
	return e.state
}

// Tick implements Generator.
func (e *ADSR) Tick(ctx *Context) []float64 {
	out, ok := e.Begin(ctx)
	if !ok {
		return out
	}
	sr := ctx.SampleRate
	e.attackN = e.attack.Tick(ctx).Value * sr
	e.decayN = e.decay.Tick(ctx).Value * sr
	e.level = clamp(e.sustain.Tick(ctx).Value, 0, 1)
	e.releaseN = e.release.Tick(ctx).Value * sr

	if gate := e.trigger.Tick(ctx); gate.Triggered {
		if gate.Value > 0 {
			if !e.legato || e.state == Idle || e.state == Release {
				e.enter(Attack)
			}
		} else if e.state != Idle {
			e.enter(Release)
		}
	}
	if e.state == Sustain {
		e.value = e.level
	}

	for i := range out {
		switch e.state {
		case Attack:
			e.value += e.slope
			if e.value >= 1 {
				e.value = 1
				e.enter(Decay)
			}
		case Decay:
			e.value += e.slope
			if e.value <= e.level {
				e.value = e.level
				e.afterDecay()
			}
		case Release:
			e.value += e.slope
			if e.value <= 0 {
				e.value = 0
				e.state = Idle
			}
		}
		out[i] = e.value
	}
	e.Done(ctx)
	return out
}

// enter switches to a stage. Stages shorter than a sample complete
// immediately.
func (e *ADSR) enter(s EnvelopeState) {
	e.state = s
	switch s {
	case Attack:
		if e.attackN < 1 || e.value >= 1 {
			e.value = 1
			e.enter(Decay)
			return
		}
		e.slope = (1 - e.value) / e.attackN
	case Decay:
		if e.decayN < 1 || e.value <= e.level {
			e.value = e.level
			e.afterDecay()
			return
		}
		e.slope = (e.level - e.value) / e.decayN
	case Release:
		if e.releaseN < 1 || e.value <= 0 {
			e.value = 0
			e.state = Idle
			return
		}
		e.slope = -e.value / e.releaseN
	}
}

func (e *ADSR) afterDecay() {
	if e.doesSustain {
		e.state = Sustain
		return
	}
	e.enter(Release)
}

// Inputs implements Node.
func (e *ADSR) Inputs() []Node {
	return nodes(e.attack, e.decay, e.sustain, e.release, e.trigger)
}
