// Package httpserver carries the small HTTP bootstrap shared by the bot
// and the solver API.
package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// Healthz builds the liveness handler. With a database attached the
// check pings it and reports 503 until the pool answers; with a nil db
// it is a plain liveness probe.
func Healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
