// Package event implements the historical events engine.
//
// Events are deterministic, date-keyed triggers. Each catalog id fires
// at most once per game session; the engine owns the triggered set so
// the catalog stays immutable and shareable across sessions.
package event

import (
	"fmt"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/effect"
	"github.com/backlot-sim/backlot/internal/present"
	"github.com/backlot-sim/backlot/internal/state"
)

// Triggered describes one event fired during a tick, with its
// presentation request already assembled.
type Triggered struct {
	Event    catalog.Event
	Modal    present.ModalRequest
	Priority present.Priority
}

// Engine evaluates the historical event catalog. One Engine instance
// belongs to one game session.
type Engine struct {
	entries   []catalog.Event
	applier   effect.Applier
	triggered map[string]bool
}

// New creates an event engine over the given catalog entries.
func New(entries []catalog.Event, applier effect.Applier) *Engine {
	return &Engine{
		entries:   entries,
		applier:   applier,
		triggered: make(map[string]bool),
	}
}

// Check fires every not-yet-triggered event matching the current
// (year, month) of gs, in catalog declaration order. Triggering and
// effect application are atomic from the caller's perspective. Returns
// nil when nothing fired.
func (e *Engine) Check(gs *state.GameState) []Triggered {
	if gs == nil {
		return nil
	}
	year := gs.CurrentDate.Year
	month := gs.CurrentDate.Month

	var fired []Triggered
	for _, entry := range e.entries {
		if entry.Year != year || entry.Month != month {
			continue
		}
		if e.triggered[entry.ID] {
			continue
		}
		e.triggered[entry.ID] = true

		e.applier.Apply(entry.Effects.List, gs, "events/"+entry.ID)
		gs.HistoricalEvents = append(gs.HistoricalEvents, state.HistoryRecord{
			ID:    entry.ID,
			Year:  entry.Year,
			Month: entry.Month,
			Title: entry.Title,
		})

		fired = append(fired, Triggered{
			Event: entry,
			Modal: present.ModalRequest{
				Title:    fmt.Sprintf("%s - %d", entry.Title, entry.Year),
				Body:     entry.Description,
				Headline: entry.Headline,
			},
			Priority: alertPriority(entry.Importance),
		})
	}
	return fired
}

// alertPriority maps event importance to an alert priority hint.
func alertPriority(importance catalog.Importance) present.Priority {
	switch importance {
	case catalog.ImportanceMajor, catalog.ImportanceCritical:
		return present.PriorityHigh
	default:
		return present.PriorityNormal
	}
}

// TriggeredIDs returns the ids fired so far, for persistence.
func (e *Engine) TriggeredIDs() []string {
	ids := make([]string, 0, len(e.triggered))
	for _, entry := range e.entries {
		if e.triggered[entry.ID] {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// RestoreTriggered marks the given ids as already fired, for loading a
// saved session.
func (e *Engine) RestoreTriggered(ids []string) {
	for _, id := range ids {
		e.triggered[id] = true
	}
}
