// Package mp3 encodes rendered buffers into mp3 files and decodes mp3
// files into sample buffers.
package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/viert/lame"

	"github.com/dudk/tonic/signal"
)

// decodedChannels is the number of channels go-mp3 always decodes to.
const decodedChannels = 2

// ErrUnsupportedNumChannels is returned when buffer is neither mono nor
// stereo.
var ErrUnsupportedNumChannels = errors.New("only mono and stereo are supported")

// Write encodes buffer into mp3 file. Quality is lame quality from 0
// (best) to 9 (fastest).
func Write(path string, b *signal.Buffer, sampleRate, bitRate, quality int) (err error) {
	if b == nil || b.NumChannels < 1 || b.NumChannels > 2 {
		return ErrUnsupportedNumChannels
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

	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(bitRate)
	wr.Encoder.SetQuality(quality)
	wr.Encoder.SetNumChannels(b.NumChannels)
	wr.Encoder.SetInSamplerate(sampleRate)
	if b.NumChannels == 1 {
		wr.Encoder.SetMode(lame.MONO)
	} else {
		wr.Encoder.SetMode(lame.JOINT_STEREO)
	}
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	buf := new(bytes.Buffer)
	ints := b.AsFloat64().AsInterInt(signal.BitDepth16)
	for i := range ints {
		if err = binary.Write(buf, binary.LittleEndian, int16(ints[i])); err != nil {
			return err
		}
	}
	if _, err = wr.Write(buf.Bytes()); err != nil {
		return err
	}
	return wr.Close()
}

// Load decodes whole mp3 file into a buffer. Decoded signal is always
// stereo, numChannels 1 mixes it down to mono. It also returns sample
// rate of the file.
func Load(path string, numChannels int) (*signal.Buffer, int, error) {
	if numChannels > 2 {
		return nil, 0, ErrUnsupportedNumChannels
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	var (
		ints []int
		val  int16
	)
	for {
		if err := binary.Read(d, binary.LittleEndian, &val); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}
		ints = append(ints, int(val))
	}
	if len(ints)%decodedChannels == 1 {
		ints = append(ints, 0)
	}
	b := signal.InterInt{
		Data:        ints,
		NumChannels: decodedChannels,
		BitDepth:    signal.BitDepth16,
	}.AsFloat64().AsBuffer()
	if numChannels == 1 {
		mono := signal.NewBuffer(b.NumFrames, 1)
		for i := 0; i < b.NumFrames; i++ {
			mono.Set(i, 0, b.Mono(i))
		}
		b = mono
	}
	return b, d.SampleRate(), nil
}
