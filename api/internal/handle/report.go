package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mathbot/api/internal/solver"
)

type ReportRequest struct {
	Text string `json:"text"`
}

// Report solves the text and returns the rendered Markdown document
// instead of structured JSON.
func (h *Handle) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reqTimeout(r, 90*time.Second))
	defer cancel()

	md := solver.RenderMarkdown(h.Solver.Solve(ctx, req.Text))

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}
