package tonic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/internal/mock"
)

func TestSnapToScale(t *testing.T) {
	minor := []float64{0, 3, 7, 10}
	var tests = []struct {
		x        float64
		scale    []float64
		expected float64
	}{
		{x: 6.4, scale: minor, expected: 7},
		{x: 6.6, scale: minor, expected: 7},
		{x: 6.5, scale: minor, expected: 7},
		{x: 4, scale: minor, expected: 3},
		{x: 1, scale: minor, expected: 0},
		{x: -1, scale: minor, expected: -2},
		{x: 32.5, scale: minor, expected: 31},
		{x: 60, scale: minor, expected: 60},
		{x: 5, scale: minor, expected: 3},
		{x: 0.5, scale: []float64{0, 1}, expected: 0},
		{x: 11.9, scale: []float64{0}, expected: 12},
		{x: 4.2, scale: nil, expected: 4.2},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, tonic.SnapToScale(test.x, test.scale), "%v in %v", test.x, test.scale)
	}
	assert.True(t, math.IsNaN(tonic.SnapToScale(math.NaN(), minor)))
}

func TestMidiConversion(t *testing.T) {
	assert.Equal(t, 440.0, tonic.MidiToFreq(69))
	assert.InDelta(t, 880.0, tonic.MidiToFreq(81), 1e-9)
	assert.InDelta(t, 261.6256, tonic.MidiToFreq(60), 1e-4)
	assert.Equal(t, 69.0, tonic.FreqToMidi(440))
	assert.InDelta(t, 57.0, tonic.FreqToMidi(220), 1e-9)
	assert.True(t, math.IsInf(tonic.FreqToMidi(0), -1))
	for _, note := range []float64{0, 12.5, 60, 127} {
		assert.InDelta(t, note, tonic.FreqToMidi(tonic.MidiToFreq(note)), 1e-9)
	}
}

func TestPitchControls(t *testing.T) {
	notes := &mock.Control{Outputs: []tonic.ControlOutput{
		{Value: 61, Triggered: true},
		{Value: 65.4, Triggered: false},
	}}
	snap := tonic.NewControlSnapToScale().Input(notes).Scale([]float64{0, 2, 4, 5, 7, 9, 11})
	freq := tonic.NewControlMidiToFreq().Input(snap)
	back := tonic.NewControlFreqToMidi().Input(freq)

	ctx := tonic.NewContext(tonic.DefaultSampleRate)
	out := pullControl(ctx, back, 16)
	assert.True(t, out.Triggered)
	assert.InDelta(t, 60.0, out.Value, 1e-9)
	assert.InDelta(t, tonic.MidiToFreq(60), freq.Value(), 1e-9)

	out = pullControl(ctx, back, 16)
	assert.False(t, out.Triggered)
	assert.InDelta(t, 65.0, out.Value, 1e-9)
}

func TestMidiToFreqReference(t *testing.T) {
	c := tonic.NewControlMidiToFreq().Input(tonic.ControlValue(60)).Reference(60, 256)
	ctx := tonic.NewContext(tonic.DefaultSampleRate)
	assert.Equal(t, 256.0, pullControl(ctx, c, 16).Value)

	zero := tonic.NewControlFreqToMidi().Input(tonic.ControlValue(0))
	assert.Equal(t, 0.0, pullControl(ctx, zero, 16).Value)
}
