// Package wav loads sample buffers from wav files and writes rendered
// buffers back.
package wav

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/tonic/signal"
)

// pcmFormat is the wav audio format of integer PCM data.
const pcmFormat = 1

var (
	// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
	ErrUnsupportedBitDepth = errors.New("only 8, 16 and 32 bit depth is supported")
	// ErrInvalidFile is returned when file is not a valid wav.
	ErrInvalidFile = errors.New("wav is not valid")
)

func supported(bitDepth signal.BitDepth) bool {
	switch bitDepth {
	case signal.BitDepth8, signal.BitDepth16, signal.BitDepth32:
		return true
	}
	return false
}

// Load reads whole wav file into a buffer with numChannels channels. If
// numChannels is not positive, channels of the file are kept. Otherwise
// the file is mixed down to mono or its channels are repeated.
func Load(path string, numChannels int) (*signal.Buffer, error) {
	b, _, err := LoadRate(path, numChannels)
	return b, err
}

// LoadRate works as Load and also returns sample rate of the file.
func LoadRate(path string, numChannels int) (*signal.Buffer, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrInvalidFile)
	}
	bitDepth := signal.BitDepth(decoder.BitDepth)
	if !supported(bitDepth) {
		return nil, 0, fmt.Errorf("%s: %d bits: %w", path, decoder.BitDepth, ErrUnsupportedBitDepth)
	}
	ib, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	fileChannels := int(decoder.NumChans)
	if fileChannels == 0 {
		return nil, 0, fmt.Errorf("%s: no channels: %w", path, ErrInvalidFile)
	}
	floats := signal.InterInt{
		Data:        ib.Data,
		NumChannels: fileChannels,
		BitDepth:    bitDepth,
	}.AsFloat64()
	return remap(floats.AsBuffer(), numChannels), int(decoder.SampleRate), nil
}

// remap converts buffer to provided number of channels.
func remap(b *signal.Buffer, numChannels int) *signal.Buffer {
	if numChannels <= 0 || numChannels == b.NumChannels {
		return b
	}
	result := signal.NewBuffer(b.NumFrames, numChannels)
	for i := 0; i < b.NumFrames; i++ {
		if numChannels == 1 {
			result.Set(i, 0, b.Mono(i))
			continue
		}
		for j := 0; j < numChannels; j++ {
			result.Set(i, j, b.At(i, j%b.NumChannels))
		}
	}
	return result
}

// Write saves buffer into wav file with provided bit depth. Samples out
// of [-1, 1] are clipped.
func Write(path string, b *signal.Buffer, sampleRate int, bitDepth signal.BitDepth) (err error) {
	if !supported(bitDepth) {
		return ErrUnsupportedBitDepth
	}
	if b == nil || b.NumChannels == 0 {
		return fmt.Errorf("%s: empty buffer", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	e := wav.NewEncoder(f, sampleRate, int(bitDepth), b.NumChannels, pcmFormat)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: b.NumChannels,
			SampleRate:  sampleRate,
		},
		Data:           b.AsFloat64().AsInterInt(bitDepth),
		SourceBitDepth: int(bitDepth),
	}
	if err = e.Write(ib); err != nil {
		return err
	}
	return e.Close()
}
