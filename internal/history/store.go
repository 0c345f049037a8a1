// Package history persists pipeline run outcomes in PostgreSQL so an admin
// can review past validations and insertions per entity. The store is
// optional infrastructure: the pipeline works unchanged without it.
package history

import (
	"context"
	"fmt"

	"github.com/andesmarket/bulkimport/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultListLimit caps history queries when the caller passes no limit.
const DefaultListLimit = 50

const createTableSQL = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
	id            UUID PRIMARY KEY,
	entity        TEXT NOT NULL,
	file_name     TEXT NOT NULL DEFAULT '',
	action        TEXT NOT NULL,
	state         TEXT NOT NULL,
	is_valid      BOOLEAN NOT NULL,
	record_count  INTEGER NOT NULL DEFAULT 0,
	error_count   INTEGER NOT NULL DEFAULT 0,
	warning_count INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS pipeline_runs_entity_created_idx
	ON pipeline_runs (entity, created_at DESC);
`

// Store records pipeline runs. Implements core.HistoryStore.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Init creates the runs table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create pipeline_runs table: %w", err)
	}
	return nil
}

// RecordRun inserts one run entry.
func (s *Store) RecordRun(ctx context.Context, entry core.RunEntry) error {
	id, err := toPgUUID(entry.ID)
	if err != nil {
		return fmt.Errorf("invalid run id: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO pipeline_runs
			(id, entity, file_name, action, state, is_valid,
			 record_count, error_count, warning_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, entry.Entity, entry.FileName, entry.Action, entry.State, entry.Valid,
		entry.RecordCount, entry.ErrorCount, entry.WarningCount, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs for an entity, newest first.
func (s *Store) List(ctx context.Context, entity string, limit int) ([]core.RunEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, entity, file_name, action, state, is_valid,
		       record_count, error_count, warning_count, created_at
		FROM pipeline_runs
		WHERE entity = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		entity, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	entries := make([]core.RunEntry, 0, limit)
	for rows.Next() {
		var (
			id        pgtype.UUID
			createdAt pgtype.Timestamptz
			e         core.RunEntry
		)
		if err := rows.Scan(&id, &e.Entity, &e.FileName, &e.Action, &e.State, &e.Valid,
			&e.RecordCount, &e.ErrorCount, &e.WarningCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if id.Valid {
			e.ID = uuid.UUID(id.Bytes).String()
		}
		if createdAt.Valid {
			e.CreatedAt = createdAt.Time
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return entries, nil
}

func toPgUUID(s string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
