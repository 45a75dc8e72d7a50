package tonic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/internal/mock"
)

func TestRampRestartsFromCurrentValue(t *testing.T) {
	target := &mock.Control{Outputs: []tonic.ControlOutput{
		{Value: 0, Triggered: true},
		{Value: 1, Triggered: true},
		{Value: 0, Triggered: true},
	}}
	r := tonic.Smoothed(target).LengthSamples(4)
	ctx := tonic.NewContext(tonic.DefaultSampleRate)

	var out []float64
	for i := 0; i < 4; i++ {
		out = append(out, pull(ctx, r, 2)...)
	}
	assert.InDeltaSlice(t, []float64{0, 0, 0.25, 0.5, 0.375, 0.25, 0.125, 0}, out, 1e-9)

	// holds the target afterwards
	assert.Equal(t, []float64{0, 0}, pull(ctx, r, 2))
}

func TestRampLength(t *testing.T) {
	target := &mock.Control{Outputs: []tonic.ControlOutput{
		{Value: 1, Triggered: true},
		{Value: 2, Triggered: true},
	}}
	r := tonic.Smoothed(target).Length(tonic.ControlValue(0.5))
	ctx := tonic.NewContext(8)

	assert.Equal(t, []float64{1, 1}, pull(ctx, r, 2))
	assert.InDeltaSlice(t, []float64{1.25, 1.5, 1.75, 2, 2, 2}, pull(ctx, r, 6), 1e-9)
}

func TestRampZeroLength(t *testing.T) {
	target := &mock.Control{Outputs: []tonic.ControlOutput{
		{Value: 1, Triggered: true},
		{Value: 3, Triggered: true},
	}}
	r := tonic.Smoothed(target).LengthSamples(0)
	ctx := tonic.NewContext(tonic.DefaultSampleRate)

	assert.Equal(t, []float64{1, 1}, pull(ctx, r, 2))
	assert.Equal(t, []float64{3, 3}, pull(ctx, r, 2))
}

func TestRampInfiniteLength(t *testing.T) {
	for _, length := range []float64{math.Inf(1), math.MaxFloat64, 1e300} {
		target := &mock.Control{Outputs: []tonic.ControlOutput{
			{Value: 0, Triggered: true},
			{Value: 1, Triggered: true},
		}}
		r := tonic.Smoothed(target).Length(tonic.ControlValue(length))
		ctx := tonic.NewContext(tonic.DefaultSampleRate)

		assert.Equal(t, []float64{0, 0}, pull(ctx, r, 2))
		out := pull(ctx, r, 2)
		assert.Greater(t, out[0], 0.0, "length %v", length)
		assert.Greater(t, out[1], out[0], "length %v", length)
		assert.Less(t, out[1], 1.0, "length %v", length)
	}
}
