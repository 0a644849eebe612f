package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/stride/internal/domain/model"
)

// parseFilter builds a FilterSpec from the common query parameters:
//
//	teams  comma-separated team names; absent means all teams
//	from   inclusive start date (2006-01-02); absent leaves the bound open
//	to     inclusive end date; absent leaves the bound open
func parseFilter(r *http.Request) (model.FilterSpec, error) {
	var filter model.FilterSpec
	q := r.URL.Query()

	if raw := q.Get("teams"); raw != "" {
		for _, team := range strings.Split(raw, ",") {
			team = strings.TrimSpace(team)
			if team != "" {
				filter.Teams = append(filter.Teams, team)
			}
		}
	}

	if raw := q.Get("from"); raw != "" {
		from, err := model.ParseDate(raw)
		if err != nil {
			return model.FilterSpec{}, fmt.Errorf("invalid from date: %v", err)
		}
		filter.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := model.ParseDate(raw)
		if err != nil {
			return model.FilterSpec{}, fmt.Errorf("invalid to date: %v", err)
		}
		filter.To = to
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return model.FilterSpec{}, fmt.Errorf("date range end %s precedes start %s", filter.To.Format("2006-01-02"), filter.From.Format("2006-01-02"))
	}

	return filter, nil
}
