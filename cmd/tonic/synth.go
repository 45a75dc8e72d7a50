package main

import (
	"flag"
	"path/filepath"
	"strings"

	"github.com/dudk/tonic"
	"github.com/dudk/tonic/log"
	"github.com/dudk/tonic/mp3"
	"github.com/dudk/tonic/patch"
	"github.com/dudk/tonic/signal"
	"github.com/dudk/tonic/wav"
)

// synthFlags are shared by commands which build a synth from a patch.
type synthFlags struct {
	patch      string
	sampleRate int
	seed       int64
	sample     string
	set        stringList
	metric     bool
}

func (f *synthFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.patch, "patch", "stepsequencer", "name of the patch, see list command")
	fs.IntVar(&f.sampleRate, "rate", tonic.DefaultSampleRate, "sample rate")
	fs.Int64Var(&f.seed, "seed", 1, "seed for random patch values")
	fs.StringVar(&f.sample, "sample", "", "wav or mp3 file played by sample based patches")
	fs.Var(&f.set, "set", "parameter value as name=value, can be repeated")
	fs.BoolVar(&f.metric, "metric", false, "print render metrics when done")
}

// synth builds patch and applies parameter flags.
func (f *synthFlags) synth() (*tonic.Synth, error) {
	assignments, err := parseAssignments(f.set)
	if err != nil {
		return nil, err
	}
	p, err := patch.Get(f.patch)
	if err != nil {
		return nil, err
	}
	options := []tonic.Option{tonic.WithSampleRate(f.sampleRate), tonic.WithLimiter()}
	if f.metric {
		options = append(options, tonic.WithMetric())
	}
	s := tonic.NewSynth(options...)
	sample, sampleRate := loadSample(f.sample)
	opts := patch.Options{Seed: f.seed, Sample: sample, SampleRate: sampleRate}
	if err := p.Build(s, opts); err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if err := s.SetParameter(a.name, a.value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// loadSample returns sample and its rate. Sample is nil if it can't be
// loaded, so patch plays silence instead.
func loadSample(path string) (*signal.Buffer, int) {
	if path == "" {
		return nil, 0
	}
	var (
		b          *signal.Buffer
		sampleRate int
		err        error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		b, sampleRate, err = mp3.Load(path, 1)
	default:
		b, sampleRate, err = wav.LoadRate(path, 1)
	}
	if err != nil {
		log.GetLogger().Warnf("failed to load sample: %v", err)
		return nil, 0
	}
	return b, sampleRate
}
