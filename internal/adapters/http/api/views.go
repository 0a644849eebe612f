// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/types"
)

// ViewDependencies defines the interface for aggregate view operations.
type ViewDependencies interface {
	Overview(ctx context.Context, id string, filter model.FilterSpec) (types.Overview, error)
	TeamTotals(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamTotal, error)
	TeamStats(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamStat, error)
	ParticipantTotals(ctx context.Context, id string, filter model.FilterSpec, limit int) ([]types.ParticipantTotal, error)
	Cumulative(ctx context.Context, id string, filter model.FilterSpec) (types.CumulativeSeries, error)
	Race(ctx context.Context, id string, filter model.FilterSpec) ([]types.RacePoint, error)
	Breakdown(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamBreakdown, error)
	Calendar(ctx context.Context, id string, filter model.FilterSpec) ([]types.CalendarBucket, error)
}

// ViewsHandler handles aggregate view requests. Every endpoint accepts the
// common filter query parameters teams, from and to.
type ViewsHandler struct {
	deps     ViewDependencies
	maxLimit int
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewDependencies, maxLimit int) *ViewsHandler {
	return &ViewsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleOverview handles GET /datasets/{id}/overview requests.
func (h *ViewsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	overview, err := h.deps.Overview(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// HandleTeamLeaderboard handles GET /datasets/{id}/leaderboard/teams requests.
func (h *ViewsHandler) HandleTeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	totals, err := h.deps.TeamTotals(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// HandleParticipantLeaderboard handles
// GET /datasets/{id}/leaderboard/participants?limit=N requests.
func (h *ViewsHandler) HandleParticipantLeaderboard(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid limit %q", ErrBadRequest, raw))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: limit %d exceeds maximum %d", ErrBadRequest, n, h.maxLimit))
			return
		}
		limit = n
	}

	totals, err := h.deps.ParticipantTotals(r.Context(), id, filter, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// HandleTeamStats handles GET /datasets/{id}/teams/stats requests.
func (h *ViewsHandler) HandleTeamStats(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	stats, err := h.deps.TeamStats(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleCumulative handles GET /datasets/{id}/trends/cumulative requests.
func (h *ViewsHandler) HandleCumulative(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	series, err := h.deps.Cumulative(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// HandleRace handles GET /datasets/{id}/trends/race requests.
func (h *ViewsHandler) HandleRace(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	points, err := h.deps.Race(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleBreakdown handles GET /datasets/{id}/breakdown requests.
func (h *ViewsHandler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	breakdown, err := h.deps.Breakdown(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// HandleCalendar handles GET /datasets/{id}/calendar requests.
func (h *ViewsHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	id, filter, ok := h.requireFilter(w, r)
	if !ok {
		return
	}
	buckets, err := h.deps.Calendar(r.Context(), id, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

// requireFilter extracts the dataset ID and filter query parameters,
// writing the 400 response itself when they are malformed.
func (h *ViewsHandler) requireFilter(w http.ResponseWriter, r *http.Request) (string, model.FilterSpec, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return "", model.FilterSpec{}, false
	}
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return "", model.FilterSpec{}, false
	}
	return id, filter, true
}
