// Package normalize converts raw tabular step data into canonical records.
package normalize

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithRoster sets the participant-to-team lookup used for wide-format
// input. The map is copied to avoid external modifications.
func WithRoster(roster map[string]string) Option {
	return func(n *Normalizer) {
		n.roster = make(map[string]string, len(roster))
		for participant, team := range roster {
			if participant != "" && team != "" {
				n.roster[participant] = team
			}
		}
	}
}

// WithUnknownPolicy decides how roster misses are handled.
func WithUnknownPolicy(policy UnknownPolicy) Option {
	return func(n *Normalizer) {
		if policy == AssignUnknown || policy == RejectUnknown {
			n.unknownPolicy = policy
		}
	}
}

// WithUnknownTeam overrides the sentinel team label used by AssignUnknown.
func WithUnknownTeam(label string) Option {
	return func(n *Normalizer) {
		if label != "" {
			n.unknownTeam = label
		}
	}
}

// WithMaxSteps sets the plausibility ceiling for a single day's count.
// A value <= 0 disables the check.
func WithMaxSteps(maxSteps int) Option {
	return func(n *Normalizer) {
		n.maxSteps = maxSteps
	}
}
