// Package scoring implements the tiered step-to-score transform.
package scoring

import "fmt"

// Default tier constants for the reference incentive policy.
const (
	defaultBaselineMax  = 8000
	defaultCapThreshold = 15000
	defaultRampBase     = 16000
	defaultCapScore     = 23000
)

// Policy holds the tier boundaries of the transform.
//
// Steps below BaselineMax score at face value. Steps at or above
// CapThreshold saturate at CapScore. In between, the score ramps linearly
// starting at RampBase, so crossing BaselineMax is a deliberate jump in
// score, not a smooth transition.
type Policy struct {
	BaselineMax  int
	CapThreshold int
	RampBase     int
	CapScore     int
}

// Scorer computes scores from raw step counts. Score is pure and total:
// the same input always yields the same output and no input panics.
type Scorer struct {
	policy Policy
}

// New creates a Scorer, validating the policy tiers.
func New(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		policy: Policy{
			BaselineMax:  defaultBaselineMax,
			CapThreshold: defaultCapThreshold,
			RampBase:     defaultRampBase,
			CapScore:     defaultCapScore,
		},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if err := s.policy.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (p Policy) validate() error {
	switch {
	case p.BaselineMax <= 0:
		return fmt.Errorf("%w: baseline max %d must be positive", ErrInvalidPolicy, p.BaselineMax)
	case p.CapThreshold <= p.BaselineMax:
		return fmt.Errorf("%w: cap threshold %d must exceed baseline max %d", ErrInvalidPolicy, p.CapThreshold, p.BaselineMax)
	case p.RampBase < p.BaselineMax:
		return fmt.Errorf("%w: ramp base %d below baseline max %d would let scores decrease across the threshold", ErrInvalidPolicy, p.RampBase, p.BaselineMax)
	case p.CapScore < p.RampBase+(p.CapThreshold-p.BaselineMax):
		return fmt.Errorf("%w: cap score %d below the top of the ramp", ErrInvalidPolicy, p.CapScore)
	}
	return nil
}

// Score maps a raw step count to its score.
func (s *Scorer) Score(steps int) int {
	p := s.policy
	if steps < p.BaselineMax {
		return steps
	}
	if steps >= p.CapThreshold {
		return p.CapScore
	}
	return p.RampBase + (steps - p.BaselineMax)
}

// Baseline returns the step count at which the incentive ramp begins.
// The "met the daily target" statistics use this as their cutoff.
func (s *Scorer) Baseline() int { return s.policy.BaselineMax }

// Policy returns a copy of the active policy.
func (s *Scorer) Policy() Policy { return s.policy }
