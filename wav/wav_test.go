package wav_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/tonic/signal"
	"github.com/dudk/tonic/test"
	"github.com/dudk/tonic/wav"
)

func TestWriteLoad(t *testing.T) {
	var tests = []struct {
		name        string
		bitDepth    signal.BitDepth
		numChannels int
		delta       float64
	}{
		{name: "mono16", bitDepth: signal.BitDepth16, numChannels: 1, delta: 1e-3},
		{name: "stereo16", bitDepth: signal.BitDepth16, numChannels: 2, delta: 1e-3},
		{name: "stereo32", bitDepth: signal.BitDepth32, numChannels: 2, delta: 1e-6},
	}
	for _, tt := range tests {
		in := test.Sine(1000, tt.numChannels, 440)
		path := test.Out(t, tt.name+".wav")
		require.NoError(t, wav.Write(path, in, test.SampleRate, tt.bitDepth), tt.name)

		out, sampleRate, err := wav.LoadRate(path, 0)
		require.NoError(t, err, tt.name)
		assert.Equal(t, test.SampleRate, sampleRate, tt.name)
		assert.Equal(t, in.NumFrames, out.NumFrames, tt.name)
		assert.Equal(t, in.NumChannels, out.NumChannels, tt.name)
		assert.InDeltaSlice(t, in.Data, out.Data, tt.delta, tt.name)
	}
}

func TestLoadRemapsChannels(t *testing.T) {
	stereo := test.Sine(100, 2, 440)
	path := test.Out(t, "stereo.wav")
	require.NoError(t, wav.Write(path, stereo, test.SampleRate, signal.BitDepth16))

	mono, err := wav.Load(path, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, mono.NumChannels)
	for i := 0; i < mono.NumFrames; i++ {
		assert.InDelta(t, stereo.Mono(i), mono.At(i, 0), 1e-3)
	}

	quad, err := wav.Load(path, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, quad.NumChannels)
	for i := 0; i < quad.NumFrames; i++ {
		assert.Equal(t, quad.At(i, 0), quad.At(i, 2))
		assert.Equal(t, quad.At(i, 1), quad.At(i, 3))
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := wav.Load(test.Out(t, "missing.wav"), 1)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := test.Out(t, "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file at all"), 0644))
	_, err = wav.Load(path, 1)
	assert.True(t, errors.Is(err, wav.ErrInvalidFile))
}

func TestWriteErrors(t *testing.T) {
	path := test.Out(t, "out.wav")
	assert.Equal(t, wav.ErrUnsupportedBitDepth, wav.Write(path, test.Sine(10, 1, 440), test.SampleRate, signal.BitDepth(24)))
	assert.Error(t, wav.Write(path, nil, test.SampleRate, signal.BitDepth16))
}
