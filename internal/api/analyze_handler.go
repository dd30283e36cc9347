package api

import (
	"log/slog"
	"net/http"

	"github.com/taskline/taskline-api/internal/analysis"
	"github.com/taskline/taskline-api/internal/api/shared"
	"github.com/taskline/taskline-api/internal/platform/logger"
	"github.com/taskline/taskline-api/internal/redact"
)

// AnalyzeHandler handles the AI analysis endpoint. It validates the task
// list, forwards it to the analyzer, and passes upstream error statuses
// through to the client.
type AnalyzeHandler struct {
	analyzer analysis.Analyzer
	provider string
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
// The provider tag is echoed back in successful responses.
func NewAnalyzeHandler(analyzer analysis.Analyzer, provider string, logger *slog.Logger) *AnalyzeHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AnalyzeHandler")
	}

	return &AnalyzeHandler{
		analyzer: analyzer,
		provider: provider,
		logger:   logger.With(slog.String("component", "analyze_handler")),
	}
}

// Analyze handles POST /analyze requests.
// An empty or absent task list is rejected with 400 before any upstream
// call is made. A single upstream attempt is made per request.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnalyzeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Tasks) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No tasks provided")
		return
	}

	summary, err := h.analyzer.Analyze(r.Context(), req.Tasks)
	if err != nil {
		// Upstream HTTP errors keep their status code; everything else
		// (transport failures, malformed bodies) is a 500.
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("analysis completed",
		slog.Int("task_count", len(req.Tasks)),
		slog.Int("summary_length", len(summary)))
	shared.RespondWithJSON(w, r, http.StatusOK, AnalyzeResponse{
		Summary:  summary,
		Provider: h.provider,
	})
}
