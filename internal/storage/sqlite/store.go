// Package sqlite provides a SQLite-backed session store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/script"
	sqlitemigrate "github.com/backlot-sim/backlot/internal/platform/storage/sqlitemigrate"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/storage"
	"github.com/backlot-sim/backlot/internal/storage/sqlite/migrations"
	"github.com/backlot-sim/backlot/internal/telemetry"
)

// Store persists sessions and telemetry in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSession upserts one session snapshot.
func (s *Store) SaveSession(ctx context.Context, session storage.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(session.ID)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	if session.State == nil {
		return fmt.Errorf("session state is required")
	}

	savedAt := session.SavedAt.UTC()
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	stateJSON, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	triggeredJSON, err := json.Marshal(session.TriggeredEventIDs)
	if err != nil {
		return fmt.Errorf("encode triggered events: %w", err)
	}
	instancesJSON, err := json.Marshal(session.ActiveInstances)
	if err != nil {
		return fmt.Errorf("encode active instances: %w", err)
	}
	scriptsJSON, err := json.Marshal(session.Scripts)
	if err != nil {
		return fmt.Errorf("encode scripts: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (id, saved_at, seed, state_json, triggered_events_json, instances_json, scripts_json)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    saved_at = excluded.saved_at,
    seed = excluded.seed,
    state_json = excluded.state_json,
    triggered_events_json = excluded.triggered_events_json,
    instances_json = excluded.instances_json,
    scripts_json = excluded.scripts_json
`, id, toMillis(savedAt), session.Seed, string(stateJSON), string(triggeredJSON), string(instancesJSON), string(scriptsJSON))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession reads one session snapshot.
func (s *Store) LoadSession(ctx context.Context, id string) (storage.Session, error) {
	if err := ctx.Err(); err != nil {
		return storage.Session{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Session{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Session{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, saved_at, seed, state_json, triggered_events_json, instances_json, scripts_json
FROM sessions WHERE id = ?
`, id)

	var (
		savedAt                                              int64
		seed                                                 int64
		stateJSON, triggeredJSON, instancesJSON, scriptsJSON string
	)
	session := storage.Session{}
	err := row.Scan(&session.ID, &savedAt, &seed, &stateJSON, &triggeredJSON, &instancesJSON, &scriptsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Session{}, storage.ErrNotFound
		}
		return storage.Session{}, fmt.Errorf("load session: %w", err)
	}

	session.SavedAt = fromMillis(savedAt)
	session.Seed = seed
	session.State = &state.GameState{}
	if err := json.Unmarshal([]byte(stateJSON), session.State); err != nil {
		return storage.Session{}, fmt.Errorf("decode session state: %w", err)
	}
	if err := json.Unmarshal([]byte(triggeredJSON), &session.TriggeredEventIDs); err != nil {
		return storage.Session{}, fmt.Errorf("decode triggered events: %w", err)
	}
	session.ActiveInstances = []crisis.Instance{}
	if err := json.Unmarshal([]byte(instancesJSON), &session.ActiveInstances); err != nil {
		return storage.Session{}, fmt.Errorf("decode active instances: %w", err)
	}
	session.Scripts = []*script.Script{}
	if err := json.Unmarshal([]byte(scriptsJSON), &session.Scripts); err != nil {
		return storage.Session{}, fmt.Errorf("decode scripts: %w", err)
	}
	return session, nil
}

// DeleteSession removes one session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AppendTelemetryEvent implements telemetry.Sink.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt telemetry.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	timestamp := evt.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO telemetry_events (timestamp, severity, source, message)
VALUES (?, ?, ?, ?)
`, toMillis(timestamp), string(evt.Severity), evt.Source, evt.Message)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}
