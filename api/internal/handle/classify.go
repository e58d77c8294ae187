package handle

import (
	"encoding/json"
	"net/http"
	"strings"
)

type ClassifyRequest struct {
	Text string `json:"text"`
}

type ClassifyResponse struct {
	Category string `json:"category"`
}

func (h *Handle) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	writeJSON(w, http.StatusOK, ClassifyResponse{Category: h.Solver.Classify(req.Text)})
}
