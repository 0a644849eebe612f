// Package scoring implements the tiered step-to-score transform.
package scoring

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithPolicy replaces the whole tier policy. Zero fields keep their defaults.
func WithPolicy(p Policy) Option {
	return func(s *Scorer) {
		if p.BaselineMax > 0 {
			s.policy.BaselineMax = p.BaselineMax
		}
		if p.CapThreshold > 0 {
			s.policy.CapThreshold = p.CapThreshold
		}
		if p.RampBase > 0 {
			s.policy.RampBase = p.RampBase
		}
		if p.CapScore > 0 {
			s.policy.CapScore = p.CapScore
		}
	}
}

// WithBaseline sets the step count where the incentive ramp begins.
func WithBaseline(steps int) Option {
	return func(s *Scorer) {
		if steps > 0 {
			s.policy.BaselineMax = steps
		}
	}
}

// WithCap sets the saturation threshold and the capped score value.
func WithCap(threshold, score int) Option {
	return func(s *Scorer) {
		if threshold > 0 && score > 0 {
			s.policy.CapThreshold = threshold
			s.policy.CapScore = score
		}
	}
}
