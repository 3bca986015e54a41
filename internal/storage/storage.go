// Package storage defines the persistence interfaces for game
// sessions.
//
// The core runs entirely in memory; persistence is a collaborator
// concern. A Session snapshot is plain structured data with no cyclic
// references - talent and film links are by id, never by pointer - so
// any backend can serialize it. The sqlite subpackage provides the
// shipped implementation.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/script"
	"github.com/backlot-sim/backlot/internal/state"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Session is a complete persisted game session.
type Session struct {
	ID      string
	SavedAt time.Time
	Seed    int64

	State             *state.GameState
	TriggeredEventIDs []string
	ActiveInstances   []crisis.Instance
	Scripts           []*script.Script
}

// SessionStore persists game sessions.
type SessionStore interface {
	SaveSession(ctx context.Context, session Session) error
	LoadSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
}
