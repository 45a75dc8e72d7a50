// Package test contains helper functions useful for testing tonic packages.
package test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/dudk/tonic/signal"
)

// SampleRate is used by test signals.
const SampleRate = 8000

// Sine returns buffer with a sine of provided frequency in every channel.
// Channel j is scaled by 1/(j+1), so channels can be told apart.
func Sine(numFrames, numChannels int, freq float64) *signal.Buffer {
	b := signal.NewBuffer(numFrames, numChannels)
	for i := 0; i < numFrames; i++ {
		v := 0.9 * math.Sin(2*math.Pi*freq*float64(i)/SampleRate)
		for j := 0; j < numChannels; j++ {
			b.Set(i, j, v/float64(j+1))
		}
	}
	return b
}

// Out returns path of output file in a temporary directory that is
// removed when test is done.
func Out(t testing.TB, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
