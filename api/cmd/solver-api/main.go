package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"mathbot/api/internal/config"
	"mathbot/api/internal/handle"
	"mathbot/api/internal/httpserver"
	"mathbot/api/internal/llm/gemini"
	"mathbot/api/internal/solver"
	"mathbot/api/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional Postgres for the persist flag on /v1/solve.
	var db *sql.DB
	var repo *store.SolveRepo
	if dsn := cfg.ResolveDSN(); dsn != "" {
		var err error
		db, err = store.Connect(context.Background(), dsn)
		if err != nil {
			log.Fatalf("store.Connect: %v", err)
		}
		log.Printf("db connected: %s", store.SafeDSNSummary(dsn))
		repo = store.NewSolveRepo(db)
	}

	// A Gemini key gives the solver its oracle backstop; without one the
	// API answers from the local strategies alone.
	var opts solver.Options
	if cfg.GeminiAPIKey != "" {
		opts.Oracle = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("oracle: gemini (%s)", cfg.GeminiModel)
	}

	h := handle.New(solver.New(opts), repo)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", httpserver.Healthz(db))
	mux.HandleFunc("/v1/solve", h.Solve)
	mux.HandleFunc("/v1/classify", h.Classify)
	mux.HandleFunc("/v1/report", h.Report)

	addr := ":" + cfg.Port
	log.Printf("solver api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
