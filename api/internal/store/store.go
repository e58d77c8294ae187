// Package store persists solve history and the photo-extraction cache in
// Postgres through database/sql with the pgx driver.
package store

import (
	"context"
	"database/sql"
)

var ErrNotFound = sql.ErrNoRows

const schema = `
create table if not exists solve_history (
  id          bigserial primary key,
  batch_id    uuid not null,
  chat_id     bigint not null default 0,
  problem     text not null,
  category    text not null default '',
  answer      text not null default '',
  steps_json  jsonb not null default '[]',
  error       text not null default '',
  engine      text not null default '',
  created_at  timestamptz not null default now()
);
create index if not exists solve_history_chat_idx on solve_history (chat_id, created_at desc);

create table if not exists read_cache (
  id              bigserial primary key,
  created_at      timestamptz not null default now(),
  chat_id         bigint not null default 0,
  media_group_id  text not null default '',
  image_hash      text not null,
  engine          text not null,
  model           text not null,
  result_json     jsonb not null,
  confidence      double precision not null default 0,
  accepted        boolean not null default false,
  accept_reason   text not null default '',
  unique (image_hash, engine, model)
);
`

// EnsureSchema creates the tables on first run. Single-container
// deployments have no separate migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
