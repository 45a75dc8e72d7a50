package tonic

import (
	"sync/atomic"
)

const (
	// MaxBlockSize is the largest block a node renders in one tick. Larger
	// render requests are split by the Synth.
	MaxBlockSize = 1024
	// DefaultSampleRate is used when no sample rate option is provided.
	DefaultSampleRate = 44100
)

// ticks is the process-wide block counter. The first block gets tick 1, so
// zero stamps always mean "never computed".
var ticks atomic.Uint64

// silence is returned to consumers that re-enter a node within a tick.
var silence [MaxBlockSize]float64

// Context is passed down the graph on every pull. It is owned by the
// render goroutine.
type Context struct {
	Tick       uint64
	SampleRate float64
	BlockSize  int

	faults int
}

// NewContext returns a context for provided sample rate. Call Next before
// pulling the first block.
func NewContext(sampleRate float64) *Context {
	return &Context{SampleRate: sampleRate}
}

// Next advances the context to a new block of provided size.
func (ctx *Context) Next(blockSize int) {
	if blockSize > MaxBlockSize {
		blockSize = MaxBlockSize
	}
	ctx.Tick = ticks.Add(1)
	ctx.BlockSize = blockSize
	ctx.faults = 0
}

// Faults returns number of faults raised during the current block.
func (ctx *Context) Faults() int {
	return ctx.faults
}

func (ctx *Context) fault() {
	ctx.faults++
}

type (
	// Node is an element of the synthesis graph.
	Node interface {
		// Inputs returns nodes this node pulls from. It's used to validate
		// the graph and is never called on the render path.
		Inputs() []Node
	}

	// Generator is an audio-rate node. Tick returns exactly
	// ctx.BlockSize samples and must compute them at most once per tick.
	// The returned slice is owned by the generator and valid until the
	// next tick.
	Generator interface {
		Node
		Tick(ctx *Context) []float64
	}

	// Control is a control-rate node. Tick must compute its output at
	// most once per tick. Value returns the last computed value without
	// side effects.
	Control interface {
		Node
		Tick(ctx *Context) ControlOutput
		Value() float64
	}

	// ControlOutput is a value of control node for a single block.
	ControlOutput struct {
		Value     float64
		Triggered bool
	}
)

// BlockMemo keeps the last block of a generator. Embed it to implement a
// Generator:
//
//	func (g *MyGen) Tick(ctx *tonic.Context) []float64 {
//		out, ok := g.Begin(ctx)
//		if !ok {
//			return out
//		}
//		// fill out
//		g.Done(ctx)
//		return out
//	}
type BlockMemo struct {
	block []float64
	stamp uint64
	busy  uint64
}

// NewBlockMemo allocates the block storage.
func NewBlockMemo() BlockMemo {
	return BlockMemo{block: make([]float64, MaxBlockSize)}
}

// Begin returns the block to fill and true when it must be computed for
// this tick. If the block was already computed, it's returned with false.
// Re-entering a generator that is still computing means the graph has a
// cycle: silence is returned and a fault is raised on the context.
func (m *BlockMemo) Begin(ctx *Context) ([]float64, bool) {
	if m.stamp == ctx.Tick {
		return m.block[:ctx.BlockSize], false
	}
	if m.busy == ctx.Tick {
		ctx.fault()
		return silence[:ctx.BlockSize], false
	}
	m.busy = ctx.Tick
	return m.block[:ctx.BlockSize], true
}

// Done marks block as computed for this tick.
func (m *BlockMemo) Done(ctx *Context) {
	m.stamp = ctx.Tick
}

// ControlMemo keeps the last output of a control node. It works like
// BlockMemo.
type ControlMemo struct {
	out   ControlOutput
	stamp uint64
	busy  uint64
}

// Begin returns the last output and true when a new output must be
// computed for this tick.
func (m *ControlMemo) Begin(ctx *Context) (ControlOutput, bool) {
	if m.stamp == ctx.Tick {
		return m.out, false
	}
	if m.busy == ctx.Tick {
		ctx.fault()
		return ControlOutput{}, false
	}
	m.busy = ctx.Tick
	return m.out, true
}

// Done stores the output computed for this tick and returns it.
func (m *ControlMemo) Done(ctx *Context, out ControlOutput) ControlOutput {
	m.out = out
	m.stamp = ctx.Tick
	return out
}

// Value returns the last computed value.
func (m *ControlMemo) Value() float64 {
	return m.out.Value
}

func nodes(ns ...Node) []Node {
	return ns
}
