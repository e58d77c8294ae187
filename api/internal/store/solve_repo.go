package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"mathbot/api/internal/solver"
)

type SolveRepo struct{ DB *sql.DB }

func NewSolveRepo(db *sql.DB) *SolveRepo { return &SolveRepo{DB: db} }

// SolveRecord is one solved (or failed) problem. Problems solved together
// share a BatchID.
type SolveRecord struct {
	ID        int64
	BatchID   uuid.UUID
	ChatID    int64
	Problem   string
	Category  string
	Answer    string
	Steps     []solver.Step
	Err       string
	Engine    string
	CreatedAt time.Time
}

// RecordFromSolution flattens a solver record for storage.
func RecordFromSolution(batchID uuid.UUID, chatID int64, engine string, sol solver.Solution) SolveRecord {
	return SolveRecord{
		BatchID:  batchID,
		ChatID:   chatID,
		Problem:  sol.Problem,
		Category: sol.Category,
		Answer:   sol.Answer,
		Steps:    sol.Steps,
		Err:      sol.Err,
		Engine:   engine,
	}
}

func (r *SolveRepo) Insert(ctx context.Context, rec SolveRecord) error {
	steps, err := json.Marshal(rec.Steps)
	if err != nil {
		steps = []byte("[]")
	}
	const q = `
insert into solve_history (batch_id, chat_id, problem, category, answer, steps_json, error, engine)
values ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err = r.DB.ExecContext(ctx, q,
		rec.BatchID, rec.ChatID, rec.Problem, rec.Category, rec.Answer, steps, rec.Err, rec.Engine,
	)
	return err
}

// History returns the chat's most recent records, newest first.
func (r *SolveRepo) History(ctx context.Context, chatID int64, limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
select id, batch_id, chat_id, problem, category, answer, steps_json, error, engine, created_at
from solve_history
where chat_id = $1
order by created_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SolveRecord
	for rows.Next() {
		var rec SolveRecord
		var steps []byte
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.ChatID, &rec.Problem, &rec.Category,
			&rec.Answer, &steps, &rec.Err, &rec.Engine, &rec.CreatedAt); err != nil {
			return nil, err
		}
		// a broken steps blob degrades to an empty step list, the record
		// itself still shows up in history
		_ = json.Unmarshal(steps, &rec.Steps)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SolveRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from solve_history where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
