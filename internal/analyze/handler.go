package analyze

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"vocalnotes/internal/note/model"
	"vocalnotes/pkg/logger"
)

type Handler struct {
	Extractor *Extractor
}

func NewHandler(extractor *Extractor) *Handler {
	return &Handler{Extractor: extractor}
}

// Analyze handles POST /api/analyze-note. The response always carries the
// four draft keys; only a transport-level upstream failure yields a 500.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Transcription) == "" {
		writeError(w, http.StatusBadRequest, "transcription required")
		return
	}

	logger.Sugar.Infof("Analyzing transcription: %.100s", req.Transcription)

	result, err := h.Extractor.Extract(r.Context(), req.Transcription)
	if err != nil {
		logger.Sugar.Errorf("Analyze error: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Analyze failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, result.Draft)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}
