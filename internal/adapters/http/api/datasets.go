// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/stride/internal/adapters/ingest"
	"github.com/okian/stride/internal/domain/normalize"
	"github.com/okian/stride/internal/domain/types"
)

// DatasetDependencies defines the interface for dataset lifecycle operations.
type DatasetDependencies interface {
	IngestTable(ctx context.Context, table normalize.Table, format normalize.Format) (types.DatasetInfo, error)
	ListDatasets(ctx context.Context) []types.DatasetInfo
	DeleteDataset(ctx context.Context, id string) error
}

// DatasetsHandler handles dataset upload and lifecycle requests.
type DatasetsHandler struct {
	deps   DatasetDependencies
	reader *ingest.Reader
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps DatasetDependencies, maxUploadBytes int64) *DatasetsHandler {
	return &DatasetsHandler{
		deps:   deps,
		reader: ingest.NewReader(ingest.WithMaxBytes(maxUploadBytes)),
	}
}

// HandleIngest handles POST /datasets?format=auto|long|wide requests.
// The body is a CSV table; ingestion is one-shot and all-or-nothing.
func (h *DatasetsHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	format, err := parseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	table, err := h.reader.ReadTable(r.Body)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
		case errors.Is(err, ingest.ErrEmptyTable):
			writeError(w, http.StatusBadRequest, "empty_table", err)
		default:
			writeError(w, http.StatusBadRequest, "bad_csv", err)
		}
		return
	}

	info, err := h.deps.IngestTable(r.Context(), table, format)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// HandleList handles GET /datasets requests.
func (h *DatasetsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ListDatasets(r.Context()))
}

// HandleDelete handles DELETE /datasets/{id} requests.
func (h *DatasetsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.DeleteDataset(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFormat(raw string) (normalize.Format, error) {
	switch raw {
	case "", string(normalize.FormatAuto):
		return normalize.FormatAuto, nil
	case string(normalize.FormatLong):
		return normalize.FormatLong, nil
	case string(normalize.FormatWide):
		return normalize.FormatWide, nil
	default:
		return "", fmt.Errorf("format must be auto, long or wide, got %q", raw)
	}
}
