// Package signal provides sample buffers used by the synthesis engine. It allows to:
// 	- hold fixed-size interleaved float buffers (file contents, rendered blocks)
// 	- convert interleaved data to non-interleaved and back
//	- convert bit depth for int signals
package signal

import (
	"math"
	"time"
)

// Float64 is a non-interleaved float64 signal.
type Float64 [][]float64

const (
	// BitDepth8 is 8 bit depth.
	BitDepth8 = BitDepth(8)
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// InterInt is an interleaved int signal.
type InterInt struct {
	Data        []int
	NumChannels int
	BitDepth
}

// BitDepth contains values required for int-to-float and backward conversion.
type BitDepth int

// devider is used when int to float conversion is done.
func (bitDepth BitDepth) devider() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8
	case BitDepth16:
		return math.MaxInt16
	case BitDepth32:
		return math.MaxInt32
	default:
		return 1
	}
}

// multiplier is used when float to int conversion is done.
func (bitDepth BitDepth) multiplier() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8 - 1
	case BitDepth16:
		return math.MaxInt16 - 1
	case BitDepth32:
		return math.MaxInt32 - 1
	default:
		return 1
	}
}

// DurationOf returns time duration of passed samples for this sample rate.
func DurationOf(sampleRate int, samples int64) time.Duration {
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second))
}

// Buffer is an interleaved float64 signal with fixed dimensions. Data
// length is always NumFrames * NumChannels and never changes after
// NewBuffer.
type Buffer struct {
	Data        []float64
	NumFrames   int
	NumChannels int
}

// NewBuffer allocates a zeroed buffer. Negative dimensions are treated as
// zero.
func NewBuffer(numFrames, numChannels int) *Buffer {
	if numFrames < 0 {
		numFrames = 0
	}
	if numChannels < 0 {
		numChannels = 0
	}
	return &Buffer{
		Data:        make([]float64, numFrames*numChannels),
		NumFrames:   numFrames,
		NumChannels: numChannels,
	}
}

// Len returns number of frames. Nil buffer has zero length.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return b.NumFrames
}

// At returns sample for provided frame and channel.
func (b *Buffer) At(frame, channel int) float64 {
	return b.Data[frame*b.NumChannels+channel]
}

// Set assigns sample for provided frame and channel.
func (b *Buffer) Set(frame, channel int, v float64) {
	b.Data[frame*b.NumChannels+channel] = v
}

// Mono returns the average of all channels for provided frame.
func (b *Buffer) Mono(frame int) float64 {
	if b.NumChannels == 1 {
		return b.Data[frame]
	}
	var sum float64
	pos := frame * b.NumChannels
	for _, v := range b.Data[pos : pos+b.NumChannels] {
		sum += v
	}
	return sum / float64(b.NumChannels)
}

// AsFloat64 converts buffer to non-interleaved signal.
func (b *Buffer) AsFloat64() Float64 {
	if b == nil || b.NumChannels == 0 {
		return nil
	}
	floats := EmptyFloat64(b.NumChannels, b.NumFrames)
	for i := 0; i < b.NumFrames; i++ {
		for j := range floats {
			floats[j][i] = b.Data[i*b.NumChannels+j]
		}
	}
	return floats
}

// AsBuffer converts non-interleaved signal into interleaved buffer. Shorter
// channels are padded with zeros.
func (floats Float64) AsBuffer() *Buffer {
	b := NewBuffer(floats.Size(), floats.NumChannels())
	for j := range floats {
		for i, v := range floats[j] {
			if i >= b.NumFrames {
				break
			}
			b.Data[i*b.NumChannels+j] = v
		}
	}
	return b
}

// AsFloat64 converts interleaved int signal to float64.
func (ints InterInt) AsFloat64() Float64 {
	if ints.Data == nil || ints.NumChannels == 0 {
		return nil
	}
	floats := make([][]float64, ints.NumChannels)
	bufSize := int(math.Ceil(float64(len(ints.Data)) / float64(ints.NumChannels)))

	// determine the devider for bit depth conversion
	devider := float64(ints.BitDepth.devider())

	for i := range floats {
		floats[i] = make([]float64, bufSize)
		pos := 0
		for j := i; j < len(ints.Data); j = j + ints.NumChannels {
			floats[i][pos] = float64(ints.Data[j]) / devider
			pos++
		}
	}
	return floats
}

// AsInterInt converts float64 signal to interleaved int. Samples are
// clipped to [-1, 1] before scaling.
func (floats Float64) AsInterInt(bitDepth BitDepth) []int {
	var numChannels int
	if numChannels = len(floats); numChannels == 0 {
		return nil
	}

	// determine the multiplier for bit depth conversion
	multiplier := float64(bitDepth.multiplier())

	ints := make([]int, len(floats[0])*numChannels)

	for j := range floats {
		for i := range floats[j] {
			if i >= len(floats[0]) {
				break
			}
			ints[i*numChannels+j] = int(clip(floats[j][i], bitDepth) * multiplier)
		}
	}
	return ints
}

func clip(v float64, bitDepth BitDepth) float64 {
	if bitDepth.multiplier() == 1 {
		return v
	}
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

// EmptyFloat64 returns an empty buffer of specified dimentions.
func EmptyFloat64(numChannels int, bufferSize int) Float64 {
	result := make([][]float64, numChannels)
	for i := range result {
		result[i] = make([]float64, bufferSize)
	}
	return result
}

// NumChannels returns number of channels in this sample slice
func (floats Float64) NumChannels() int {
	return len(floats)
}

// Size returns number of samples in single block in this sample slice
func (floats Float64) Size() int {
	if floats.NumChannels() == 0 {
		return 0
	}
	return len(floats[0])
}
