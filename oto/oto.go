// Package oto plays synth output with oto. Unlike portaudio, oto pulls the
// signal through an io.Reader.
package oto

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/xid"

	"github.com/dudk/tonic"
)

// bytesPerSample is the size of float32 sample.
const bytesPerSample = 4

// ErrPlayerExists is returned when a player is created while another
// one is alive. oto allows a single context per process.
var ErrPlayerExists = errors.New("oto player already exists")

var (
	mu     sync.Mutex
	shared *oto.Context
	inUse  bool
)

// Reader renders interleaved float32 little-endian frames on every Read.
// It doesn't allocate after creation.
type Reader struct {
	r           tonic.Renderer
	numChannels int
	scratch     []float32
}

// NewReader returns reader which renders at most bufferSize frames per
// Read call.
func NewReader(r tonic.Renderer, numChannels, bufferSize int) *Reader {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Reader{
		r:           r,
		numChannels: numChannels,
		scratch:     make([]float32, bufferSize*numChannels),
	}
}

// Read implements io.Reader. Only whole frames are rendered, so p must
// fit at least one frame.
func (rd *Reader) Read(p []byte) (int, error) {
	frameSize := rd.numChannels * bytesPerSample
	if frameSize == 0 {
		return 0, io.EOF
	}
	frames := len(p) / frameSize
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}
	if limit := len(rd.scratch) / rd.numChannels; frames > limit {
		frames = limit
	}
	samples := rd.scratch[:frames*rd.numChannels]
	rd.r.FillBuffer(samples, frames, rd.numChannels)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return len(samples) * bytesPerSample, nil
}

// Player plays renderer on the default device.
type Player struct {
	uid    string
	player *oto.Player
}

// NewPlayer creates oto context on the first call and a player that pulls
// from renderer. The context is reused by subsequent players, but only
// one player can exist at a time.
func NewPlayer(r tonic.Renderer, sampleRate, numChannels, bufferSize int) (*Player, error) {
	mu.Lock()
	defer mu.Unlock()
	if inUse {
		return nil, ErrPlayerExists
	}
	if shared == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: numChannels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(bufferSize) * time.Second / time.Duration(sampleRate),
		})
		if err != nil {
			return nil, err
		}
		<-ready
		shared = ctx
	}
	inUse = true
	return &Player{
		uid:    xid.New().String(),
		player: shared.NewPlayer(NewReader(r, numChannels, bufferSize)),
	}, nil
}

// ID returns unique id of the player.
func (p *Player) ID() string {
	return p.uid
}

// Play starts playback in background.
func (p *Player) Play() {
	p.player.Play()
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	mu.Lock()
	defer mu.Unlock()
	inUse = false
	return p.player.Close()
}
