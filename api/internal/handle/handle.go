// Package handle implements the HTTP API over the solver core.
package handle

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mathbot/api/internal/solver"
	"mathbot/api/internal/store"
)

type Handle struct {
	Solver *solver.Solver
	// Repo persists solve batches when the request asks for it; nil
	// disables persistence and persist requests fail.
	Repo *store.SolveRepo
}

func New(s *solver.Solver, repo *store.SolveRepo) *Handle {
	return &Handle{Solver: s, Repo: repo}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// reqTimeout reads the per-request deadline from the X-Request-Timeout
// header or the timeoutSec query parameter, in seconds.
func reqTimeout(r *http.Request, def time.Duration) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return def
}
