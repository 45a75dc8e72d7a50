package tonic

// Option provides a way to set functional parameters to synth.
type Option func(s *Synth)

// WithSampleRate sets sample rate of the synth.
func WithSampleRate(sampleRate int) Option {
	return func(s *Synth) {
		if sampleRate > 0 {
			s.ctx.SampleRate = float64(sampleRate)
		}
	}
}

// WithLogger sets logger to Synth. If this option is not provided, logger
// from log package is used.
func WithLogger(logger Logger) Option {
	return func(s *Synth) {
		s.log = logger
	}
}

// WithMetric enables render metrics for this synth. Counters are
// published with expvar, see metric package.
func WithMetric() Option {
	return func(s *Synth) {
		s.metered = true
	}
}

// WithLimiter enables hard clipping of output to [-1, 1].
func WithLimiter() Option {
	return func(s *Synth) {
		s.limiter = true
	}
}
