// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/normalize"
	"github.com/okian/stride/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ingest operations create and manage session datasets.
	IngestTable(ctx context.Context, table normalize.Table, format normalize.Format) (types.DatasetInfo, error)
	ListDatasets(ctx context.Context) []types.DatasetInfo
	DeleteDataset(ctx context.Context, id string) error

	// Read operations compute aggregate views over a stored dataset.
	Overview(ctx context.Context, id string, filter model.FilterSpec) (types.Overview, error)
	TeamTotals(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamTotal, error)
	TeamStats(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamStat, error)
	ParticipantTotals(ctx context.Context, id string, filter model.FilterSpec, limit int) ([]types.ParticipantTotal, error)
	Cumulative(ctx context.Context, id string, filter model.FilterSpec) (types.CumulativeSeries, error)
	Race(ctx context.Context, id string, filter model.FilterSpec) ([]types.RacePoint, error)
	Breakdown(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamBreakdown, error)
	Calendar(ctx context.Context, id string, filter model.FilterSpec) ([]types.CalendarBucket, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	datasetsHandler  *DatasetsHandler
	viewsHandler     *ViewsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int, maxUploadBytes int64) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		datasetsHandler:  NewDatasetsHandler(deps, maxUploadBytes),
		viewsHandler:     NewViewsHandler(deps, maxLimit),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /datasets", MetricsMiddleware(s.datasetsHandler.HandleIngest, "datasets"))
	mux.HandleFunc("GET /datasets", MetricsMiddleware(s.datasetsHandler.HandleList, "datasets"))
	mux.HandleFunc("DELETE /datasets/{id}", MetricsMiddleware(s.datasetsHandler.HandleDelete, "datasets"))

	mux.HandleFunc("GET /datasets/{id}/overview", MetricsMiddleware(s.viewsHandler.HandleOverview, "overview"))
	mux.HandleFunc("GET /datasets/{id}/leaderboard/teams", MetricsMiddleware(s.viewsHandler.HandleTeamLeaderboard, "leaderboard_teams"))
	mux.HandleFunc("GET /datasets/{id}/leaderboard/participants", MetricsMiddleware(s.viewsHandler.HandleParticipantLeaderboard, "leaderboard_participants"))
	mux.HandleFunc("GET /datasets/{id}/teams/stats", MetricsMiddleware(s.viewsHandler.HandleTeamStats, "team_stats"))
	mux.HandleFunc("GET /datasets/{id}/trends/cumulative", MetricsMiddleware(s.viewsHandler.HandleCumulative, "trends_cumulative"))
	mux.HandleFunc("GET /datasets/{id}/trends/race", MetricsMiddleware(s.viewsHandler.HandleRace, "trends_race"))
	mux.HandleFunc("GET /datasets/{id}/breakdown", MetricsMiddleware(s.viewsHandler.HandleBreakdown, "breakdown"))
	mux.HandleFunc("GET /datasets/{id}/calendar", MetricsMiddleware(s.viewsHandler.HandleCalendar, "calendar"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates upstream errors to their HTTP shapes:
// unknown dataset to 404, normalization failures to 422, everything
// else to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, normalize.ErrParse),
		errors.Is(err, normalize.ErrUnknownParticipant),
		errors.Is(err, normalize.ErrDuplicateRecord),
		errors.Is(err, normalize.ErrUnknownFormat),
		errors.Is(err, repository.ErrEmptyDataset):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
