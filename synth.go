package tonic

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/dudk/tonic/log"
	"github.com/dudk/tonic/metric"
	"github.com/dudk/tonic/signal"
)

// mutationsBuffer is the number of pending mutations a synth accepts.
const mutationsBuffer = 16

// Logger is a global interface for synth loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
}

// Renderer is implemented by anything that can fill interleaved audio
// blocks. Audio device adapters consume it.
type Renderer interface {
	FillBuffer(output []float32, blockSize, numChannels int)
}

// Synth is the root of synthesis graph. It owns the output generator and
// the registry of named parameters, and renders blocks for the audio
// device.
//
// FillBuffer must be called from a single goroutine. Parameters,
// SwapOutputGen and Mutate can be used from other goroutines while
// rendering. SetOutputGen and AddParameter must be called before rendering
// starts.
type Synth struct {
	uid     string
	log     Logger
	limiter bool
	metered bool
	measure metric.MeasureFunc

	ctx      Context
	output   Generator
	controls []Control

	paramsMu sync.RWMutex
	params   map[string]*Parameter
	order    []*Parameter

	mutations chan func()
	faults    atomic.Uint64
}

// NewSynth creates a new synth and applies provided options.
func NewSynth(options ...Option) *Synth {
	s := &Synth{
		uid:       xid.New().String(),
		ctx:       Context{SampleRate: DefaultSampleRate},
		params:    make(map[string]*Parameter),
		mutations: make(chan func(), mutationsBuffer),
	}
	for _, option := range options {
		option(s)
	}
	if s.log == nil {
		s.log = log.GetLogger()
	}
	if s.metered {
		s.measure = metric.Meter(s, int(s.ctx.SampleRate))()
	}
	return s
}

// ID returns unique id of the synth.
func (s *Synth) ID() string {
	return s.uid
}

// SampleRate returns sample rate of the synth.
func (s *Synth) SampleRate() int {
	return int(s.ctx.SampleRate)
}

// Faults returns number of blocks degraded to silence.
func (s *Synth) Faults() uint64 {
	return s.faults.Load()
}

// SetOutputGen validates the graph and sets it as synth output. It's not
// safe to call while rendering, use SwapOutputGen instead.
func (s *Synth) SetOutputGen(g Generator) error {
	controls, err := s.validate(g)
	if err != nil {
		return err
	}
	s.output = g
	s.controls = controls
	s.log.Info(fmt.Sprintf("synth %s: output %T set with %d controls", s.uid, g, len(controls)))
	return nil
}

// SwapOutputGen validates the graph on the calling goroutine and replaces
// output before the next rendered block.
func (s *Synth) SwapOutputGen(g Generator) error {
	controls, err := s.validate(g)
	if err != nil {
		return err
	}
	return s.Mutate(func() {
		s.output = g
		s.controls = controls
	})
}

// Mutate schedules fn to be executed by the render goroutine before the
// next block. fn must not block. ErrQueueFull is returned if too many
// mutations are pending.
func (s *Synth) Mutate(fn func()) error {
	select {
	case s.mutations <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *Synth) validate(g Generator) ([]Control, error) {
	if g == nil {
		return nil, ErrNilOutput
	}
	controls, err := walk(g)
	if err != nil {
		return nil, fmt.Errorf("synth %s: %w", s.uid, err)
	}
	var errs multiError
	s.paramsMu.RLock()
	for _, p := range s.order {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	s.paramsMu.RUnlock()
	return controls, errs.ret()
}

// AddParameter registers new parameter. If parameter with such name
// already exists, it's returned unchanged.
func (s *Synth) AddParameter(name string, defaultValue float64) *Parameter {
	s.paramsMu.Lock()
	defer s.paramsMu.Unlock()
	if p, ok := s.params[name]; ok {
		s.log.Warn(fmt.Sprintf("synth %s: parameter %q already registered", s.uid, name))
		return p
	}
	p := newParameter(name, defaultValue)
	s.params[name] = p
	s.order = append(s.order, p)
	return p
}

// Parameter returns registered parameter.
func (s *Synth) Parameter(name string) (*Parameter, error) {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	if p, ok := s.params[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownParameter)
}

// SetParameter clamps value to parameter bounds and sets it.
func (s *Synth) SetParameter(name string, value float64) error {
	if math.IsNaN(value) {
		return fmt.Errorf("%q: %w", name, ErrInvalidValue)
	}
	p, err := s.Parameter(name)
	if err != nil {
		return err
	}
	p.SetValue(value)
	return nil
}

// SetNormalizedParameter sets parameter value from [0, 1] range.
func (s *Synth) SetNormalizedParameter(name string, x float64) error {
	if math.IsNaN(x) {
		return fmt.Errorf("%q: %w", name, ErrInvalidValue)
	}
	p, err := s.Parameter(name)
	if err != nil {
		return err
	}
	p.SetNormalizedValue(x)
	return nil
}

// Parameters returns snapshot of all parameters in registration order.
func (s *Synth) Parameters() []ParameterInfo {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	infos := make([]ParameterInfo, 0, len(s.order))
	for _, p := range s.order {
		infos = append(infos, p.Info())
	}
	return infos
}

// FillBuffer renders blockSize frames into output, interleaved for
// numChannels channels. Mono output of the graph is copied to every
// channel. It doesn't allocate, block or panic: any fault results in
// silence for the affected block.
func (s *Synth) FillBuffer(output []float32, blockSize, numChannels int) {
	if blockSize <= 0 || numChannels <= 0 || len(output) < blockSize*numChannels {
		zero32(output)
		s.faults.Add(1)
		return
	}
	output = output[:blockSize*numChannels]
	s.applyMutations()

	faults := s.render(output, blockSize, numChannels)
	if faults > 0 {
		s.faults.Add(uint64(faults))
	}
	if s.measure != nil {
		s.measure(int64(blockSize), faults)
	}
}

func (s *Synth) applyMutations() {
	for {
		select {
		case fn := <-s.mutations:
			fn()
		default:
			return
		}
	}
}

// render fills output block by block. A panic in the graph silences the
// rest of output.
func (s *Synth) render(output []float32, blockSize, numChannels int) (faults int64) {
	pos := 0
	defer func() {
		if r := recover(); r != nil {
			zero32(output[pos*numChannels:])
			faults++
		}
	}()
	for pos < blockSize {
		n := blockSize - pos
		if n > MaxBlockSize {
			n = MaxBlockSize
		}
		if !s.renderBlock(output[pos*numChannels:(pos+n)*numChannels], n, numChannels) {
			faults++
		}
		pos += n
	}
	return faults
}

// renderBlock renders a single tick. It returns false if block was
// degraded to silence.
func (s *Synth) renderBlock(output []float32, n, numChannels int) bool {
	s.ctx.Next(n)
	for _, c := range s.controls {
		c.Tick(&s.ctx)
	}
	if s.output == nil {
		zero32(output)
		return true
	}
	block := s.output.Tick(&s.ctx)
	if s.ctx.Faults() > 0 {
		zero32(output)
		return false
	}
	ok := true
	for i, v := range block {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
			ok = false
		} else if s.limiter {
			v = clamp(v, -1, 1)
		}
		f := float32(v)
		for j := 0; j < numChannels; j++ {
			output[i*numChannels+j] = f
		}
	}
	return ok
}

// Render renders numFrames frames offline. It allocates and must not be
// used on the audio thread.
func (s *Synth) Render(numFrames, numChannels int) *signal.Buffer {
	b := signal.NewBuffer(numFrames, numChannels)
	if b.Len() == 0 || numChannels <= 0 {
		return b
	}
	out := make([]float32, MaxBlockSize*numChannels)
	for pos := 0; pos < numFrames; pos += MaxBlockSize {
		n := numFrames - pos
		if n > MaxBlockSize {
			n = MaxBlockSize
		}
		s.FillBuffer(out, n, numChannels)
		for i, v := range out[:n*numChannels] {
			b.Data[pos*numChannels+i] = float64(v)
		}
	}
	return b
}

func zero32(b []float32) {
	for i := range b {
		b[i] = 0
	}
}
