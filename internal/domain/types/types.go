// Package types contains common read-model types used across the application.
package types

import "time"

// Overview carries the headline metrics for the filtered record set.
// AvgDailyScore and PctAtTarget are nil when the set is empty so the view
// layer can render "no data" instead of a number.
type Overview struct {
	TotalSteps    int      `json:"total_steps"`
	AvgDailyScore *float64 `json:"avg_daily_score"`
	PctAtTarget   *float64 `json:"pct_at_target"`
	TargetSteps   int      `json:"target_steps"`
	Records       int      `json:"records"`
}

// TeamTotal is one row of the team leaderboard.
type TeamTotal struct {
	Rank  int    `json:"rank"`
	Team  string `json:"team"`
	Score int    `json:"score"`
}

// TeamStat carries the per-team score statistics behind the radar view.
type TeamStat struct {
	Team    string  `json:"team"`
	Total   int     `json:"total"`
	Mean    float64 `json:"mean"`
	Max     int     `json:"max"`
	Min     int     `json:"min"`
	Records int     `json:"records"`
}

// ParticipantTotal is one row of the individual leaderboard.
type ParticipantTotal struct {
	Rank        int    `json:"rank"`
	Participant string `json:"participant"`
	Team        string `json:"team"`
	Score       int    `json:"score"`
}

// CumulativeSeries is a date-indexed, team-columned table of running
// score totals. Values[i][j] is the cumulative score of Teams[j] at
// Dates[i]; dates ascend and every cell is filled.
type CumulativeSeries struct {
	Dates  []time.Time `json:"dates"`
	Teams  []string    `json:"teams"`
	Values [][]int     `json:"values"`
}

// RacePoint is one (date, team) score sum in the long-format race series.
type RacePoint struct {
	Date  time.Time `json:"date"`
	Team  string    `json:"team"`
	Score int       `json:"score"`
}

// TeamBreakdown is the part-to-whole view: a team with its participants.
type TeamBreakdown struct {
	Team         string             `json:"team"`
	Score        int                `json:"score"`
	Participants []ParticipantTotal `json:"participants"`
}

// CalendarBucket is one day's step total with its calendar coordinates
// for 2-D heatmap bucketing. Weekday is 0 for Monday; Week is the ISO
// week number within ISOYear.
type CalendarBucket struct {
	Date    time.Time `json:"date"`
	Steps   int       `json:"steps"`
	Weekday int       `json:"weekday"`
	Week    int       `json:"week"`
	ISOYear int       `json:"iso_year"`
}

// DatasetInfo describes a stored dataset after ingestion.
type DatasetInfo struct {
	ID                  string    `json:"id"`
	Records             int       `json:"records"`
	RowsRead            int       `json:"rows_read"`
	CellsDropped        int       `json:"cells_dropped"`
	UnknownParticipants []string  `json:"unknown_participants,omitempty"`
	Teams               []string  `json:"teams"`
	FirstDate           time.Time `json:"first_date"`
	LastDate            time.Time `json:"last_date"`
	CreatedAt           time.Time `json:"created_at"`
}
