package tonic_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/tonic"
)

func TestParameterBounds(t *testing.T) {
	s := newSynth()
	p := s.AddParameter("cutoff", 1000).Min(20).Max(20000).DisplayName("Cutoff")
	assert.Equal(t, "cutoff", p.Name())
	assert.Equal(t, "Cutoff", p.Label())
	assert.Equal(t, 1000.0, p.Default())
	assert.Equal(t, 1000.0, p.Value())

	var tests = []struct {
		value    float64
		expected float64
	}{
		{value: 500, expected: 500},
		{value: 30000, expected: 20000},
		{value: -5, expected: 20},
		{value: math.Inf(1), expected: 20000},
	}
	for _, test := range tests {
		require.NoError(t, s.SetParameter("cutoff", test.value))
		assert.Equal(t, test.expected, p.Value())
	}

	err := s.SetParameter("cutoff", math.NaN())
	assert.True(t, errors.Is(err, tonic.ErrInvalidValue))
	assert.Equal(t, 20000.0, p.Value())
}

func TestParameterNormalized(t *testing.T) {
	s := newSynth()
	p := s.AddParameter("tempo", 120).Min(50).Max(250)

	require.NoError(t, s.SetNormalizedParameter("tempo", 0.5))
	assert.Equal(t, 150.0, p.Value())
	assert.Equal(t, 0.5, p.NormalizedValue())

	require.NoError(t, s.SetNormalizedParameter("tempo", 2))
	assert.Equal(t, 250.0, p.Value())
	require.NoError(t, s.SetNormalizedParameter("tempo", -1))
	assert.Equal(t, 50.0, p.Value())

	for _, x := range []float64{0, 0.1, 0.25, 0.9, 1} {
		p.SetNormalizedValue(x)
		assert.InDelta(t, x, p.NormalizedValue(), 1e-12)
	}

	flat := s.AddParameter("flat", 3).Min(3).Max(3)
	assert.Equal(t, 0.0, flat.NormalizedValue())
}

func TestParameterDefaultBounds(t *testing.T) {
	s := newSynth()
	min, max := s.AddParameter("gain", 0.5).Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)

	min, max = s.AddParameter("detune", -3).Bounds()
	assert.Equal(t, -3.0, min)
	assert.Equal(t, 1.0, max)
}

func TestParameterValidate(t *testing.T) {
	s := newSynth()
	assert.NoError(t, s.AddParameter("ok", 1).Validate())
	assert.True(t, errors.Is(s.AddParameter("inverted", 0).Min(2).Max(1).Validate(), tonic.ErrInvalidBounds))
	assert.True(t, errors.Is(s.AddParameter("nan", 0).Max(math.NaN()).Validate(), tonic.ErrInvalidBounds))
	assert.True(t, errors.Is(s.AddParameter("inf", 0).Min(math.Inf(-1)).Validate(), tonic.ErrInvalidBounds))
}

func TestParameterBoundOrder(t *testing.T) {
	s := newSynth()
	p := s.AddParameter("freq", 0.5).Min(100)
	assert.Equal(t, 100.0, p.Value())
	assert.True(t, errors.Is(p.Validate(), tonic.ErrInvalidBounds))
	assert.True(t, errors.Is(s.SetOutputGen(tonic.Hold(p)), tonic.ErrInvalidBounds))

	p.Max(1000)
	assert.NoError(t, p.Validate())
	assert.Equal(t, 100.0, p.Value())
	require.NoError(t, s.SetOutputGen(tonic.Hold(p)))
}

func TestParameterRegistry(t *testing.T) {
	s := newSynth()
	first := s.AddParameter("b", 0.5).Min(0).Max(1)
	s.AddParameter("a", 2).Max(4)
	s.AddParameter("c", 0)

	dup := s.AddParameter("b", 100)
	assert.Same(t, first, dup)
	assert.Equal(t, 0.5, dup.Value())

	p, err := s.Parameter("a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Value())

	_, err = s.Parameter("missing")
	assert.True(t, errors.Is(err, tonic.ErrUnknownParameter))
	assert.True(t, errors.Is(s.SetParameter("missing", 1), tonic.ErrUnknownParameter))
	assert.True(t, errors.Is(s.SetNormalizedParameter("missing", 1), tonic.ErrUnknownParameter))

	infos := s.Parameters()
	require.Len(t, infos, 3)
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
	assert.Equal(t, tonic.ParameterInfo{
		Name:            "a",
		DisplayName:     "a",
		Value:           2,
		Min:             0,
		Max:             4,
		NormalizedValue: 0.5,
	}, infos[1])
}

func TestParameterTick(t *testing.T) {
	s := newSynth()
	p := s.AddParameter("note", 60).Min(0).Max(127)
	ctx := tonic.NewContext(tonic.DefaultSampleRate)

	assert.Equal(t, tonic.ControlOutput{Value: 60, Triggered: true}, pullControl(ctx, p, 16))
	assert.Equal(t, tonic.ControlOutput{Value: 60}, pullControl(ctx, p, 16))
	require.NoError(t, s.SetParameter("note", 64))
	assert.Equal(t, tonic.ControlOutput{Value: 64, Triggered: true}, pullControl(ctx, p, 16))
	require.NoError(t, s.SetParameter("note", 64))
	assert.Equal(t, tonic.ControlOutput{Value: 64}, pullControl(ctx, p, 16))
}
