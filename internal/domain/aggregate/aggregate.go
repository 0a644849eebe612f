// Package aggregate computes the derived views consumed by the dashboard.
//
// Every function here is pure: it takes a record set and a filter, returns
// a fresh result, and touches no shared state. Views are recomputed from
// scratch on each call; the dataset is bounded by days times participants,
// so there is nothing worth caching.
package aggregate

import (
	"sort"
	"time"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/types"
)

const pctMultiplier = 100

// Filter returns the records passing spec. The input slice is never
// mutated; the result is a new slice sharing the record values.
func Filter(records []model.ScoredRecord, spec model.FilterSpec) []model.ScoredRecord {
	out := make([]model.ScoredRecord, 0, len(records))
	for _, r := range records {
		if spec.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// TotalSteps sums raw steps over the passing set.
func TotalSteps(records []model.ScoredRecord, spec model.FilterSpec) int {
	total := 0
	for _, r := range Filter(records, spec) {
		total += r.Steps
	}
	return total
}

// AvgDailyScore sums score per distinct date, then averages across dates.
// Returns ErrNoData when nothing passes the filter.
func AvgDailyScore(records []model.ScoredRecord, spec model.FilterSpec) (float64, error) {
	byDate := make(map[time.Time]int)
	for _, r := range Filter(records, spec) {
		byDate[r.Date] += r.Score
	}
	if len(byDate) == 0 {
		return 0, ErrNoData
	}
	total := 0
	for _, sum := range byDate {
		total += sum
	}
	return float64(total) / float64(len(byDate)), nil
}

// PctAtOrAbove returns the percentage of passing records whose raw steps
// reach target. Returns ErrNoData when nothing passes the filter, never a
// silent division by zero.
func PctAtOrAbove(records []model.ScoredRecord, spec model.FilterSpec, target int) (float64, error) {
	passing := Filter(records, spec)
	if len(passing) == 0 {
		return 0, ErrNoData
	}
	hit := 0
	for _, r := range passing {
		if r.Steps >= target {
			hit++
		}
	}
	return float64(hit) / float64(len(passing)) * pctMultiplier, nil
}

// TeamTotals sums score per team, ordered by descending total with ties
// broken by team name ascending for determinism.
func TeamTotals(records []model.ScoredRecord, spec model.FilterSpec) []types.TeamTotal {
	byTeam := make(map[string]int)
	for _, r := range Filter(records, spec) {
		byTeam[r.Team] += r.Score
	}

	out := make([]types.TeamTotal, 0, len(byTeam))
	for team, score := range byTeam {
		out = append(out, types.TeamTotal{Team: team, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Team < out[j].Team
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// TeamStats computes sum, mean, max and min of score per team. Teams with
// no passing records simply do not appear; a present row always has a
// well-defined mean, max and min.
func TeamStats(records []model.ScoredRecord, spec model.FilterSpec) []types.TeamStat {
	byTeam := make(map[string]*types.TeamStat)
	for _, r := range Filter(records, spec) {
		st, ok := byTeam[r.Team]
		if !ok {
			st = &types.TeamStat{Team: r.Team, Max: r.Score, Min: r.Score}
			byTeam[r.Team] = st
		}
		st.Total += r.Score
		st.Records++
		if r.Score > st.Max {
			st.Max = r.Score
		}
		if r.Score < st.Min {
			st.Min = r.Score
		}
	}

	out := make([]types.TeamStat, 0, len(byTeam))
	for _, st := range byTeam {
		st.Mean = float64(st.Total) / float64(st.Records)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// ParticipantTotals sums score per (participant, team), ordered by
// descending total, ties by participant name ascending.
func ParticipantTotals(records []model.ScoredRecord, spec model.FilterSpec) []types.ParticipantTotal {
	type key struct{ participant, team string }
	byParticipant := make(map[key]int)
	for _, r := range Filter(records, spec) {
		byParticipant[key{r.Participant, r.Team}] += r.Score
	}

	out := make([]types.ParticipantTotal, 0, len(byParticipant))
	for k, score := range byParticipant {
		out = append(out, types.ParticipantTotal{Participant: k.participant, Team: k.team, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Participant < out[j].Participant
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// DailyCumulativeByTeam pivots (date, team) score sums into a date-indexed
// matrix, fills missing cells with 0, then accumulates down each team
// column. The last row per team equals that team's TeamTotals value.
func DailyCumulativeByTeam(records []model.ScoredRecord, spec model.FilterSpec) types.CumulativeSeries {
	type cell struct {
		date time.Time
		team string
	}
	sums := make(map[cell]int)
	dateSet := make(map[time.Time]struct{})
	teamSet := make(map[string]struct{})
	for _, r := range Filter(records, spec) {
		sums[cell{r.Date, r.Team}] += r.Score
		dateSet[r.Date] = struct{}{}
		teamSet[r.Team] = struct{}{}
	}

	series := types.CumulativeSeries{
		Dates: sortedDates(dateSet),
		Teams: sortedKeys(teamSet),
	}
	running := make([]int, len(series.Teams))
	series.Values = make([][]int, len(series.Dates))
	for i, date := range series.Dates {
		row := make([]int, len(series.Teams))
		for j, team := range series.Teams {
			running[j] += sums[cell{date, team}]
			row[j] = running[j]
		}
		series.Values[i] = row
	}
	return series
}

// TeamDailyRace returns (date, team) score sums as a long table ordered by
// date ascending then team ascending, for time-animated consumption.
func TeamDailyRace(records []model.ScoredRecord, spec model.FilterSpec) []types.RacePoint {
	type cell struct {
		date time.Time
		team string
	}
	sums := make(map[cell]int)
	for _, r := range Filter(records, spec) {
		sums[cell{r.Date, r.Team}] += r.Score
	}

	out := make([]types.RacePoint, 0, len(sums))
	for c, score := range sums {
		out = append(out, types.RacePoint{Date: c.date, Team: c.team, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// TeamParticipantBreakdown groups score sums hierarchically: team parent,
// participant children. Teams order by descending total; children by
// descending score within their team.
func TeamParticipantBreakdown(records []model.ScoredRecord, spec model.FilterSpec) []types.TeamBreakdown {
	totals := TeamTotals(records, spec)
	participants := ParticipantTotals(records, spec)

	out := make([]types.TeamBreakdown, 0, len(totals))
	for _, t := range totals {
		node := types.TeamBreakdown{Team: t.Team, Score: t.Score}
		for _, p := range participants {
			if p.Team == t.Team {
				node.Participants = append(node.Participants, p)
			}
		}
		out = append(out, node)
	}
	return out
}

// CalendarBuckets sums raw steps per date and attaches weekday (Monday=0)
// and ISO week coordinates for heatmap bucketing.
func CalendarBuckets(records []model.ScoredRecord, spec model.FilterSpec) []types.CalendarBucket {
	byDate := make(map[time.Time]int)
	for _, r := range Filter(records, spec) {
		byDate[r.Date] += r.Steps
	}

	out := make([]types.CalendarBucket, 0, len(byDate))
	for date, steps := range byDate {
		isoYear, isoWeek := date.ISOWeek()
		out = append(out, types.CalendarBucket{
			Date:    date,
			Steps:   steps,
			Weekday: mondayIndexed(date.Weekday()),
			Week:    isoWeek,
			ISOYear: isoYear,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// mondayIndexed shifts Go's Sunday=0 weekday to Monday=0.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func sortedDates(set map[time.Time]struct{}) []time.Time {
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
