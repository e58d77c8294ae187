package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"mathbot/api/internal/llm"
)

// ReadRepo caches photo extractions keyed by (image_hash, engine, model)
// so re-sent photos skip the model call.
type ReadRepo struct{ DB *sql.DB }

func NewReadRepo(db *sql.DB) *ReadRepo { return &ReadRepo{DB: db} }

type ReadRow struct {
	ID           int64
	CreatedAt    time.Time
	ChatID       int64
	MediaGroupID string
	ImageHash    string
	Engine       string
	Model        string
	Read         llm.ReadResult
	Accepted     bool
	AcceptReason string
}

// FindByHash returns the freshest cached extraction for the key. A row
// older than maxAge (when maxAge > 0) or with a broken JSON blob counts
// as not found.
func (r *ReadRepo) FindByHash(ctx context.Context, imageHash, engine, model string, maxAge time.Duration) (*ReadRow, error) {
	const q = `
select id, created_at,
       coalesce(chat_id,0) as chat_id,
       coalesce(media_group_id,'') as media_group_id,
       image_hash, engine, model,
       result_json,
       accepted, coalesce(accept_reason,'') as accept_reason
from read_cache
where image_hash = $1 and engine = $2 and model = $3
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, imageHash, engine, model)

	var (
		out ReadRow
		js  []byte
	)
	if err := row.Scan(&out.ID, &out.CreatedAt, &out.ChatID, &out.MediaGroupID,
		&out.ImageHash, &out.Engine, &out.Model, &js, &out.Accepted, &out.AcceptReason); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(out.CreatedAt) > maxAge {
		return nil, ErrNotFound
	}
	if err := json.Unmarshal(js, &out.Read); err != nil {
		return nil, ErrNotFound
	}
	return &out, nil
}

// Upsert stores an extraction, draft or accepted. A repeat of the same
// key overwrites all fields.
func (r *ReadRepo) Upsert(
	ctx context.Context,
	chatID int64,
	mediaGroupID, imageHash, engine, model string,
	rr llm.ReadResult,
	accepted bool,
	reason string,
) error {
	js, _ := json.Marshal(rr)
	const q = `
insert into read_cache (
  chat_id, media_group_id, image_hash, engine, model,
  result_json, confidence, accepted, accept_reason
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
on conflict (image_hash, engine, model) do update
set chat_id = excluded.chat_id,
    media_group_id = excluded.media_group_id,
    result_json = excluded.result_json,
    confidence = excluded.confidence,
    accepted = excluded.accepted,
    accept_reason = excluded.accept_reason,
    created_at = now()`
	_, err := r.DB.ExecContext(ctx, q,
		chatID, mediaGroupID, imageHash, engine, model,
		js, rr.Confidence, accepted, reason,
	)
	return err
}

// MarkAccepted flips an existing row to accepted without touching the
// extraction itself.
func (r *ReadRepo) MarkAccepted(ctx context.Context, imageHash, engine, model, reason string) error {
	const q = `update read_cache set accepted=true, accept_reason=$4 where image_hash=$1 and engine=$2 and model=$3`
	res, err := r.DB.ExecContext(ctx, q, imageHash, engine, model, reason)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReadRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from read_cache where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
