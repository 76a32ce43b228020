package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/komsit37/sheetreport/pkg/sheetreport/report"
)

// Job runs one report.
type Job interface {
	Run(ctx context.Context, opts report.RunOptions) (*report.Report, error)
}

// Handler serves the report endpoints.
type Handler struct {
	job Job
	log zerolog.Logger
}

func NewHandler(job Job, log zerolog.Logger) *Handler {
	return &Handler{job: job, log: log}
}

// Analyze runs the report and returns its rows.
// GET /analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	rep, err := h.job.Run(r.Context(), report.RunOptions{})
	if err != nil {
		h.log.Error().Err(err).Msg("analyze failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
