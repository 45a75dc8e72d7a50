// Package mock provides mocks for graph nodes and allows to test
// memoization and fault handling.
package mock

import (
	"github.com/dudk/tonic"
)

// Generator mocks a tonic.Generator. It emits Value and counts how many
// blocks it computed.
type Generator struct {
	tonic.BlockMemo
	counter
	Value float64
	// Input is pulled before the block is computed, if set.
	Input tonic.Generator
	// Idle is listed as input, but never pulled.
	Idle tonic.Control
	// PanicOnCall makes Tick panic with provided value.
	PanicOnCall interface{}
}

// NewGenerator returns generator of constant value.
func NewGenerator(v float64) *Generator {
	return &Generator{
		BlockMemo: tonic.NewBlockMemo(),
		Value:     v,
	}
}

// Tick implements tonic.Generator.
func (m *Generator) Tick(ctx *tonic.Context) []float64 {
	out, ok := m.Begin(ctx)
	if !ok {
		return out
	}
	if m.PanicOnCall != nil {
		panic(m.PanicOnCall)
	}
	if m.Input != nil {
		m.Input.Tick(ctx)
	}
	for i := range out {
		out[i] = m.Value
	}
	m.advance(len(out))
	m.Done(ctx)
	return out
}

// Inputs implements tonic.Node.
func (m *Generator) Inputs() []tonic.Node {
	var ns []tonic.Node
	if m.Input != nil {
		ns = append(ns, m.Input)
	}
	if m.Idle != nil {
		ns = append(ns, m.Idle)
	}
	return ns
}

// Control mocks a tonic.Control. It emits Outputs one by one, and then
// repeats the last value without trigger.
type Control struct {
	tonic.ControlMemo
	counter
	Outputs []tonic.ControlOutput
	// Input is ticked before the output is computed, if set.
	Input tonic.Control
}

// Triggers returns control which emits provided number of triggers with
// value 1, one per block.
func Triggers(n int) *Control {
	c := &Control{Outputs: make([]tonic.ControlOutput, n)}
	for i := range c.Outputs {
		c.Outputs[i] = tonic.ControlOutput{Value: 1, Triggered: true}
	}
	return c
}

// Tick implements tonic.Control.
func (m *Control) Tick(ctx *tonic.Context) tonic.ControlOutput {
	out, ok := m.Begin(ctx)
	if !ok {
		return out
	}
	if m.Input != nil {
		m.Input.Tick(ctx)
	}
	if m.messages < len(m.Outputs) {
		out = m.Outputs[m.messages]
	} else {
		out.Triggered = false
	}
	m.advance(ctx.BlockSize)
	return m.Done(ctx, out)
}

// Inputs implements tonic.Node.
func (m *Control) Inputs() []tonic.Node {
	if m.Input == nil {
		return nil
	}
	return []tonic.Node{m.Input}
}

// counter counts blocks and samples.
type counter struct {
	messages int
	samples  int
}

// Advance counter's metrics.
func (c *counter) advance(size int) {
	c.messages++
	c.samples = c.samples + size
}

// Count returns blocks and samples metrics.
func (c *counter) Count() (int, int) {
	return c.messages, c.samples
}
