package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andesmarket/bulkimport/internal/logging"
	"github.com/andesmarket/bulkimport/internal/remote"
	"github.com/google/uuid"
)

// RemoteService is the system-of-record boundary consumed by the pipeline.
// Implemented by *remote.Client; tests substitute fakes to exercise each
// reconciliation branch deterministically.
type RemoteService interface {
	Validate(ctx context.Context, path string, records []map[string]any, validatedKey string) remote.ValidateOutcome
	Insert(ctx context.Context, path string, records []map[string]any) remote.InsertOutcome
	Sample(ctx context.Context, path, key string, limit int) ([]map[string]any, error)
}

// HistoryStore records pipeline runs for later review. May be nil, in which
// case history is disabled.
type HistoryStore interface {
	RecordRun(ctx context.Context, entry RunEntry) error
	List(ctx context.Context, entity string, limit int) ([]RunEntry, error)
}

// Service coordinates the validation pipeline for every registered schema.
// It is stateless between invocations; each call owns its header map,
// duplicate groups and result exclusively.
type Service struct {
	remote  RemoteService
	history HistoryStore
	limiter *RunLimiter

	sampleLimit int
}

// NewService creates a Service. history may be nil to disable run history.
func NewService(rc RemoteService, history HistoryStore, maxConcurrent int, maxWait time.Duration) *Service {
	return &Service{
		remote:      rc,
		history:     history,
		limiter:     NewRunLimiter(maxConcurrent, maxWait),
		sampleLimit: 5,
	}
}

// SetSampleLimit overrides how many live records Template requests.
// Call during startup, before the service handles traffic.
func (s *Service) SetSampleLimit(n int) {
	if n > 0 {
		s.sampleLimit = n
	}
}

// Entities returns the registered schemas.
func (s *Service) Entities() []Schema {
	return All()
}

// LimiterActive returns the number of pipeline runs currently in flight.
func (s *Service) LimiterActive() int {
	return s.limiter.Active()
}

// ValidateFile runs the full pipeline for one uploaded file: tokenize,
// resolve headers, validate and map every row, detect duplicates, then
// reconcile against the system of record. It returns an error only for an
// unknown entity key or when no run slot becomes available; every data
// problem is reported inside the Result.
func (s *Service) ValidateFile(ctx context.Context, entityKey, fileName, text string) (Result, error) {
	schema, ok := Get(entityKey)
	if !ok {
		return Result{}, fmt.Errorf("unknown entity: %s", entityKey)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return Result{}, err
	}
	defer s.limiter.Release()

	logger := logging.WithFields(ctx, "entity", entityKey, "file", fileName)

	start := time.Now()
	result := s.run(ctx, schema, text)

	logger.Info("file validated",
		"state", result.State,
		"valid", result.Valid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"duration", time.Since(start),
	)

	s.recordRun(ctx, RunEntry{
		ID:           uuid.New().String(),
		Entity:       entityKey,
		FileName:     fileName,
		Action:       "validate",
		State:        string(result.State),
		Valid:        result.Valid,
		RecordCount:  len(result.Records),
		ErrorCount:   len(result.Errors),
		WarningCount: len(result.Warnings),
		CreatedAt:    time.Now().UTC(),
	})

	return result, nil
}

// InsertRecords sends a reconciled record set to the remote insertion
// operation and relays its raw outcome. Transport failures come back as a
// structured failure, never an error.
func (s *Service) InsertRecords(ctx context.Context, entityKey string, records []map[string]any) (InsertOutcome, error) {
	schema, ok := Get(entityKey)
	if !ok {
		return InsertOutcome{}, fmt.Errorf("unknown entity: %s", entityKey)
	}

	// Insertion cannot degrade the way validation does: it mutates the
	// system of record, so an absent remote is a structured failure.
	out := remote.InsertOutcome{Err: "no remote service configured"}
	if s.remote != nil {
		out = s.remote.Insert(ctx, schema.InsertPath, records)
	}

	outcome := InsertOutcome{
		OK:     out.OK,
		Status: out.Status,
		Body:   out.Body,
		Error:  out.Err,
	}

	state := "inserted"
	if !outcome.OK {
		state = "insert_failed"
	}
	s.recordRun(ctx, RunEntry{
		ID:          uuid.New().String(),
		Entity:      entityKey,
		Action:      "insert",
		State:       state,
		Valid:       outcome.OK,
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	})

	return outcome, nil
}

// History returns the most recent runs for an entity. With history
// disabled it returns an empty list.
func (s *Service) History(ctx context.Context, entityKey string, limit int) ([]RunEntry, error) {
	if s.history == nil {
		return []RunEntry{}, nil
	}
	return s.history.List(ctx, entityKey, limit)
}

// recordRun persists a run entry when history is enabled. Failures are
// logged, never surfaced: history is a convenience, not part of the
// pipeline contract.
func (s *Service) recordRun(ctx context.Context, entry RunEntry) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordRun(ctx, entry); err != nil {
		slog.Warn("failed to record run history", "entity", entry.Entity, "error", err)
	}
}
