//go:build portaudio

package portaudio_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/log"
	"github.com/dudk/tonic/portaudio"
)

const (
	sampleRate = 44100
	bufferSize = 512
)

func TestStream(t *testing.T) {
	s := tonic.NewSynth(tonic.WithSampleRate(sampleRate), tonic.WithLogger(log.Silent()))
	tone := tonic.NewSineWave().Freq(tonic.Const(440))
	require.NoError(t, s.SetOutputGen(tonic.Mul(tone, tonic.Const(0.1))))

	stream, err := portaudio.Open(s, sampleRate, bufferSize, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, stream.ID())
	require.NoError(t, stream.Start())
	time.Sleep(200 * time.Millisecond)
	assert.NoError(t, stream.Stop())
	assert.NoError(t, stream.Close())
	assert.NoError(t, stream.Close())
	assert.Equal(t, uint64(0), s.Faults())
}
