// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxLeaderboardLimit caps GET .../leaderboard/participants?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxUploadBytes caps the size of one CSV upload.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// MaxDatasets bounds the in-memory dataset store; oldest evicted first.
	MaxDatasets int `koanf:"max_datasets"`

	// Scoring tier boundaries. Steps below BaselineSteps score at face
	// value; steps at or past CapThresholdSteps score CapScore; in between
	// the score ramps linearly from RampBaseScore.
	BaselineSteps     int `koanf:"baseline_steps"`
	CapThresholdSteps int `koanf:"cap_threshold_steps"`
	RampBaseScore     int `koanf:"ramp_base_score"`
	CapScore          int `koanf:"cap_score"`

	// MaxDailySteps rejects implausible counts at ingestion; <= 0 disables.
	MaxDailySteps int `koanf:"max_daily_steps"`

	// UnknownTeamPolicy handles wide-format participants missing from the
	// roster: "assign" labels them UnknownTeamLabel, "reject" fails the upload.
	UnknownTeamPolicy string `koanf:"unknown_team_policy"`
	UnknownTeamLabel  string `koanf:"unknown_team_label"`

	// Roster maps participant names to team names for wide-format input.
	// It is deployment data, not code: supply it via config file or env.
	Roster map[string]string `koanf:"roster"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxLeaderboardLimit: 100,
		MaxUploadBytes:      8 << 20,
		MaxDatasets:         16,
		BaselineSteps:       8000,
		CapThresholdSteps:   15000,
		RampBaseScore:       16000,
		CapScore:            23000,
		MaxDailySteps:       200_000,
		UnknownTeamPolicy:   "assign",
		UnknownTeamLabel:    "Unknown",
		Roster:              map[string]string{},
	}
	return c
}
