// Package patch contains ready-made synthesis graphs. Every patch
// registers its parameters on the synth and sets the output generator.
package patch

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/signal"
)

// ErrUnknownPatch is returned when patch with provided name doesn't exist.
var ErrUnknownPatch = errors.New("unknown patch")

// Options are passed to patch builders.
type Options struct {
	// Seed is used for random default values.
	Seed int64
	// Sample is played by sample based patches. Nil sample is silent.
	Sample *signal.Buffer
	// SampleRate of Sample. Playback is resampled to the synth rate. Zero
	// means sample has the synth rate.
	SampleRate int
}

// Patch is a named synthesis graph.
type Patch struct {
	Name        string
	Description string
	build       func(*tonic.Synth, Options) tonic.Generator
}

// Build registers patch parameters and sets output generator of the synth.
func (p Patch) Build(s *tonic.Synth, opts Options) error {
	if err := s.SetOutputGen(p.build(s, opts)); err != nil {
		return fmt.Errorf("patch %s: %w", p.Name, err)
	}
	return nil
}

var patches = []Patch{
	{
		Name:        "basic",
		Description: "sine with vibrato and tremolo",
		build:       basic,
	},
	{
		Name:        "stepsequencer",
		Description: "8-step filtered square sequence in pentatonic scale",
		build:       stepSequencer,
	},
	{
		Name:        "sampler",
		Description: "sample retriggered at tempo through low-pass filter",
		build:       sampler,
	},
}

// All returns all available patches.
func All() []Patch {
	return append([]Patch(nil), patches...)
}

// Get returns patch by name.
func Get(name string) (Patch, error) {
	for _, p := range patches {
		if p.Name == name {
			return p, nil
		}
	}
	return Patch{}, fmt.Errorf("%q: %w", name, ErrUnknownPatch)
}

func basic(s *tonic.Synth, _ Options) tonic.Generator {
	const basePitch = 400
	vibrato := tonic.NewSineWave().Freq(tonic.Const(10))
	frequency := tonic.Add(tonic.Const(basePitch), tonic.Mul(vibrato, tonic.Const(basePitch*0.01)))
	tone := tonic.NewSineWave().Freq(frequency)
	tremolo := tonic.NewSineWave().Freq(tonic.Const(1))
	return tonic.Mul(tone, tremolo)
}

// pentatonic is a minor pentatonic scale with added second.
var pentatonic = []float64{0, 2, 3, 5, 7, 10}

func stepSequencer(s *tonic.Synth, opts Options) tonic.Generator {
	const numSteps = 8
	rnd := rand.New(rand.NewSource(opts.Seed))

	bpm := s.AddParameter("tempo", 100).Min(50).Max(300)
	transpose := s.AddParameter("transpose", 0).Min(-6).Max(6)

	// four 16th notes per beat
	metro := tonic.NewControlMetro().Bpm(tonic.ControlMul(tonic.ControlValue(4), bpm))
	step := tonic.NewControlStepper().End(tonic.ControlValue(numSteps)).Trigger(metro)

	pitches := tonic.NewControlSwitcher().InputIndex(step)
	cutoffs := tonic.NewControlSwitcher().InputIndex(step)
	glides := tonic.NewControlSwitcher().InputIndex(step)
	for i := 0; i < numSteps; i++ {
		pitches.AddInput(s.AddParameter(fmt.Sprintf("step%dPitch", i), 10+rnd.Float64()*70).Min(10).Max(80))
		cutoffs.AddInput(s.AddParameter(fmt.Sprintf("step%dCutoff", i), 500).Min(30).Max(1500))
		glides.AddInput(s.AddParameter(fmt.Sprintf("step%dGlide", i), 0).Min(0).Max(0.1))
	}

	midiNote := tonic.ControlAdd(transpose, tonic.NewControlSnapToScale().Scale(pentatonic).Input(pitches))
	frequency := tonic.NewControlMidiToFreq().Input(midiNote)
	tone := tonic.NewRectWave().Freq(tonic.Smoothed(frequency).Length(glides))
	amplitude := tonic.Mul(tonic.NewADSR(0.01, 0.1, 0, 0).Trigger(metro), tonic.Const(0.3))

	return tonic.NewLPF24().
		Cutoff(cutoffs).
		Q(tonic.ControlValue(0.1)).
		Input(tonic.Mul(tone, amplitude))
}

func sampler(s *tonic.Synth, opts Options) tonic.Generator {
	bpm := s.AddParameter("tempo", 60).Min(20).Max(240)
	rate := s.AddParameter("rate", 1).Min(0.25).Max(4)
	cutoff := s.AddParameter("cutoff", 2000).Min(50).Max(10000)
	volume := s.AddParameter("volume", 0.5).Min(0).Max(1)

	var speed tonic.Control = rate
	if opts.SampleRate > 0 && opts.SampleRate != s.SampleRate() {
		ratio := float64(opts.SampleRate) / float64(s.SampleRate())
		speed = tonic.ControlMul(rate, tonic.ControlValue(ratio))
	}
	player := tonic.NewBufferPlayer(opts.Sample).
		Trigger(tonic.NewControlMetro().Bpm(bpm)).
		PlaybackRate(speed)
	return tonic.Mul(
		tonic.NewLPF12().Cutoff(cutoff).Input(player),
		tonic.Smoothed(volume),
	)
}
