package tonic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/internal/mock"
)

// pull advances context by one block and pulls the generator.
func pull(ctx *tonic.Context, g tonic.Generator, blockSize int) []float64 {
	ctx.Next(blockSize)
	return g.Tick(ctx)
}

// pullControl advances context by one block and ticks the control.
func pullControl(ctx *tonic.Context, c tonic.Control, blockSize int) tonic.ControlOutput {
	ctx.Next(blockSize)
	return c.Tick(ctx)
}

func TestSharedNodeComputedOncePerTick(t *testing.T) {
	shared := tonic.NewSineWave().Freq(tonic.Const(100))
	reference := tonic.NewSineWave().Freq(tonic.Const(100))
	out := tonic.Sum(shared, shared, tonic.Mul(shared, tonic.Const(1)))

	ctx := tonic.NewContext(8000)
	for i := 0; i < 10; i++ {
		ctx.Next(64)
		block := out.Tick(ctx)
		ref := reference.Tick(ctx)
		assert.InDeltaSlice(t, scale(ref, 3), block, 1e-9)
	}
	assert.Equal(t, reference.Phase(), shared.Phase())
}

func TestMemoizedFanOut(t *testing.T) {
	g := mock.NewGenerator(1)
	c := mock.Triggers(1)
	out := tonic.Add(tonic.Mul(g, tonic.Hold(c)), tonic.Sub(g, tonic.Hold(c)))

	ctx := tonic.NewContext(tonic.DefaultSampleRate)
	for i := 0; i < 5; i++ {
		block := pull(ctx, out, 16)
		assert.Equal(t, 16, len(block))
	}
	blocks, samples := g.Count()
	assert.Equal(t, 5, blocks)
	assert.Equal(t, 5*16, samples)
	blocks, _ = c.Count()
	assert.Equal(t, 5, blocks)

	// same tick returns memoized block
	before := append([]float64(nil), out.Tick(ctx)...)
	assert.Equal(t, before, out.Tick(ctx))
	blocks, _ = g.Count()
	assert.Equal(t, 5, blocks)
}

func TestContextNext(t *testing.T) {
	ctx := tonic.NewContext(100)
	ctx.Next(tonic.MaxBlockSize * 2)
	first := ctx.Tick
	assert.Equal(t, tonic.MaxBlockSize, ctx.BlockSize)
	ctx.Next(1)
	assert.Greater(t, ctx.Tick, first)
	assert.Equal(t, 0, ctx.Faults())
}

func TestOperators(t *testing.T) {
	var tests = []struct {
		name     string
		g        tonic.Generator
		expected float64
	}{
		{name: "add", g: tonic.Add(tonic.Const(1), tonic.Const(2)), expected: 3},
		{name: "sub", g: tonic.Sub(tonic.Const(1), tonic.Const(2)), expected: -1},
		{name: "mul", g: tonic.Mul(tonic.Const(1.5), tonic.Const(2)), expected: 3},
		{name: "div", g: tonic.Div(tonic.Const(1), tonic.Const(4)), expected: 0.25},
		{name: "div by zero", g: tonic.Div(tonic.Const(1), tonic.Const(0)), expected: 0},
		{name: "sum", g: tonic.Sum(tonic.Const(1), tonic.Const(2)).Input(tonic.Const(3)), expected: 6},
		{name: "empty sum", g: tonic.Sum(), expected: 0},
		{name: "hold", g: tonic.Hold(tonic.ControlAdd(tonic.ControlValue(1), tonic.ControlValue(0.5))), expected: 1.5},
		{name: "control div by zero", g: tonic.Hold(tonic.ControlDiv(tonic.ControlValue(1), tonic.ControlValue(0))), expected: 0},
		{name: "control mul", g: tonic.Hold(tonic.ControlMul(tonic.ControlValue(3), tonic.ControlSub(tonic.ControlValue(2), tonic.ControlValue(1)))), expected: 3},
	}
	ctx := tonic.NewContext(tonic.DefaultSampleRate)
	for _, test := range tests {
		block := pull(ctx, test.g, 4)
		assert.Equal(t, []float64{test.expected, test.expected, test.expected, test.expected}, block, test.name)
	}
}

func TestControlValueTriggersOnce(t *testing.T) {
	c := tonic.ControlValue(2)
	ctx := tonic.NewContext(tonic.DefaultSampleRate)
	assert.Equal(t, tonic.ControlOutput{Value: 2, Triggered: true}, pullControl(ctx, c, 8))
	assert.Equal(t, tonic.ControlOutput{Value: 2}, pullControl(ctx, c, 8))
	assert.Equal(t, 2.0, c.Value())
}

func scale(block []float64, k float64) []float64 {
	out := make([]float64, len(block))
	for i, v := range block {
		out[i] = v * k
	}
	return out
}
