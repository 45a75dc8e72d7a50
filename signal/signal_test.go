package signal_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/tonic/signal"
)

func TestInterIntsAsFloat64(t *testing.T) {
	tests := []struct {
		ints        []int
		numChannels int
		bitDepth    signal.BitDepth
		expected    [][]float64
	}{
		{
			ints:        []int{1, 2, 1, 2, 1, 2, 1, 2},
			numChannels: 2,
			expected: [][]float64{
				{1, 1, 1, 1},
				{2, 2, 2, 2},
			},
		},
		{
			ints:        []int{1, 2, 1, 2, 1},
			numChannels: 2,
			expected: [][]float64{
				{1, 1, 1},
				{2, 2, 0},
			},
		},
		{
			ints:        []int{math.MaxInt16, math.MaxInt16 * 2},
			numChannels: 2,
			expected: [][]float64{
				{1},
				{2},
			},
			bitDepth: signal.BitDepth16,
		},
		{
			ints:     nil,
			expected: nil,
		},
		{
			ints:     []int{1, 2, 3},
			expected: nil,
		},
	}

	for _, test := range tests {
		ints := signal.InterInt{
			Data:        test.ints,
			NumChannels: test.numChannels,
			BitDepth:    test.bitDepth,
		}
		result := ints.AsFloat64()
		assert.Equal(t, len(test.expected), len(result))
		for i := range test.expected {
			for j, val := range test.expected[i] {
				assert.Equal(t, val, result[i][j])
			}
		}
	}
}

func TestFloat64AsInterInt(t *testing.T) {
	tests := []struct {
		floats   [][]float64
		bitDepth signal.BitDepth
		expected []int
	}{
		{
			floats: [][]float64{
				{1, 1, 1, 1},
				{2, 2, 2, 2},
			},
			expected: []int{1, 2, 1, 2, 1, 2, 1, 2},
		},
		{
			floats: [][]float64{
				{1},
				{-2},
			},
			bitDepth: signal.BitDepth16,
			expected: []int{math.MaxInt16 - 1, -(math.MaxInt16 - 1)},
		},
		{
			floats:   nil,
			expected: nil,
		},
		{
			floats:   [][]float64{{}, {}},
			expected: []int{},
		},
	}

	for _, test := range tests {
		ints := signal.Float64(test.floats).AsInterInt(test.bitDepth)
		assert.Equal(t, len(test.expected), len(ints))
		for i := range test.expected {
			assert.Equal(t, test.expected[i], ints[i])
		}
	}
}

func TestBuffer(t *testing.T) {
	b := signal.NewBuffer(3, 2)
	assert.Equal(t, 6, len(b.Data))
	assert.Equal(t, 3, b.Len())

	b.Set(1, 0, 0.5)
	b.Set(1, 1, 1.5)
	assert.Equal(t, 0.5, b.At(1, 0))
	assert.Equal(t, 1.5, b.At(1, 1))
	assert.Equal(t, 1.0, b.Mono(1))
	assert.Equal(t, []float64{0, 0, 0.5, 1.5, 0, 0}, b.Data)

	floats := b.AsFloat64()
	assert.Equal(t, signal.Float64{{0, 0.5, 0}, {0, 1.5, 0}}, floats)
	assert.Equal(t, b, floats.AsBuffer())

	var empty *signal.Buffer
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.AsFloat64())
	assert.Equal(t, 0, signal.NewBuffer(-1, 2).Len())
}

func TestDurationOf(t *testing.T) {
	assert.Equal(t, time.Second, signal.DurationOf(44100, 44100))
	assert.Equal(t, 500*time.Millisecond, signal.DurationOf(1000, 500))
}
