package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"mathbot/api/internal/solver"
	"mathbot/api/internal/store"
)

type SolveRequest struct {
	Text string `json:"text"`
	// Persist writes the batch to solve history. Needs a configured
	// database.
	Persist bool  `json:"persist,omitempty"`
	ChatID  int64 `json:"chat_id,omitempty"`
}

type SolveResponse struct {
	BatchID   string            `json:"batch_id"`
	Solutions []solver.Solution `json:"solutions"`
}

func (h *Handle) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}
	if req.Persist && h.Repo == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "persist requested but no database is configured"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reqTimeout(r, 90*time.Second))
	defer cancel()

	batch := uuid.New()
	sols := h.Solver.Solve(ctx, req.Text)

	if req.Persist {
		recs := lo.Map(sols, func(s solver.Solution, _ int) store.SolveRecord {
			return store.RecordFromSolution(batch, req.ChatID, "", s)
		})
		for _, rec := range recs {
			if err := h.Repo.Insert(ctx, rec); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "persist: " + err.Error()})
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		BatchID:   batch.String(),
		Solutions: sols,
	})
}
