package tonic

import (
	"math"

	"github.com/dudk/tonic/signal"
)

// BufferPlayer plays a sample buffer as mono signal. Multichannel buffers
// are mixed down. Nil or empty buffer produces silence, this is how a
// failed file load is handled.
type BufferPlayer struct {
	BlockMemo
	buffer  *signal.Buffer
	loop    bool
	trigger Control
	rate    Control

	position float64
	playing  bool
}

// NewBufferPlayer returns player which starts at the first tick.
func NewBufferPlayer(b *signal.Buffer) *BufferPlayer {
	return &BufferPlayer{
		BlockMemo: NewBlockMemo(),
		buffer:    b,
		trigger:   NewControlTrigger(),
		rate:      ControlValue(1),
		playing:   true,
	}
}

// Loop sets if playback restarts when buffer ends.
func (p *BufferPlayer) Loop(v bool) *BufferPlayer {
	p.loop = v
	return p
}

// Trigger sets control which restarts playback.
func (p *BufferPlayer) Trigger(c Control) *BufferPlayer {
	p.trigger = c
	return p
}

// PlaybackRate sets speed control, 1 is original speed.
func (p *BufferPlayer) PlaybackRate(c Control) *BufferPlayer {
	p.rate = c
	return p
}

// Tick implements Generator.
func (p *BufferPlayer) Tick(ctx *Context) []float64 {
	out, ok := p.Begin(ctx)
	if !ok {
		return out
	}
	if p.trigger.Tick(ctx).Triggered {
		p.position = 0
		p.playing = true
	}
	rate := p.rate.Tick(ctx).Value
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		rate = 0
	}
	frames := p.buffer.Len()
	if frames > 0 && p.buffer.NumChannels == 0 {
		frames = 0
	}
	for i := range out {
		if !p.playing || frames == 0 {
			out[i] = 0
			continue
		}
		out[i] = p.sample(frames)
		p.position += rate
		if p.position >= float64(frames) {
			if p.loop {
				p.position = math.Mod(p.position, float64(frames))
			} else {
				p.playing = false
			}
		}
	}
	p.Done(ctx)
	return out
}

// sample interpolates linearly between neighbour frames.
func (p *BufferPlayer) sample(frames int) float64 {
	i, frac := math.Modf(p.position)
	a := p.buffer.Mono(int(i))
	if frac == 0 {
		return a
	}
	next := int(i) + 1
	if next >= frames {
		if !p.loop {
			return a
		}
		next = 0
	}
	return a + (p.buffer.Mono(next)-a)*frac
}

// Inputs implements Node.
func (p *BufferPlayer) Inputs() []Node {
	return nodes(p.trigger, p.rate)
}
