// Package portaudio plays synth output on the default device with
// portaudio callback API.
package portaudio

import (
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/xid"

	"github.com/dudk/tonic"
)

type (
	// Stream represents portaudio output stream which pulls renderer on
	// every device callback.
	Stream struct {
		uid         string
		r           tonic.Renderer
		stream      *portaudio.Stream
		numChannels int
		closeOnce   sync.Once
	}
)

// Open initializes portaudio and opens default output stream. Stream is
// not started.
func Open(r tonic.Renderer, sampleRate, bufferSize, numChannels int) (*Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Stream{
		uid:         xid.New().String(),
		r:           r,
		numChannels: numChannels,
	}
	var err error
	s.stream, err = portaudio.OpenDefaultStream(0, numChannels, float64(sampleRate), bufferSize, s.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return s, nil
}

// callback is called by portaudio on the audio thread.
func (s *Stream) callback(out []float32) {
	s.r.FillBuffer(out, len(out)/s.numChannels, s.numChannels)
}

// ID returns unique id of the stream.
func (s *Stream) ID() string {
	return s.uid
}

// Start starts the playback.
func (s *Stream) Start() error {
	return s.stream.Start()
}

// Stop stops the playback. It can be started again.
func (s *Stream) Stop() error {
	return s.stream.Stop()
}

// Close closes the stream and terminates portaudio.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if err = s.stream.Close(); err != nil {
			return
		}
		err = portaudio.Terminate()
	})
	return err
}
