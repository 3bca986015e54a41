package crisis

import (
	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/state"
)

// AdvanceWeek ticks every active scandal instance: one week off the
// countdown, ongoing effects applied, maybe a follow-up headline, and
// resolution when the countdown reaches zero.
func (e *Engine) AdvanceWeek(gs *state.GameState) []Update {
	return e.advance(KindScandal, gs)
}

// AdvanceMonth ticks every active crisis instance. Crises count in
// months, scandals in weeks; the two granularities are deliberate.
func (e *Engine) AdvanceMonth(gs *state.GameState) []Update {
	return e.advance(KindCrisis, gs)
}

func (e *Engine) advance(kind Kind, gs *state.GameState) []Update {
	var updates []Update
	for _, inst := range e.active {
		if inst.Resolved || inst.Kind != kind {
			continue
		}

		scenario, ok := e.byID[inst.ScenarioID]
		if !ok {
			inst.Resolved = true
			continue
		}

		inst.TicksRemaining--
		update := Update{Instance: inst}

		if !scenario.Ongoing.IsZero() {
			e.applier.Apply(scenario.Ongoing.List, gs, "scenarios/"+scenario.ID+"/ongoing")
		}

		if len(scenario.Headlines) > 0 && e.rng.Float64() < followUpHeadlineChance {
			headline := scenario.Headlines[e.rng.Intn(len(scenario.Headlines))]
			update.Headline = interpolate(headline, inst.AffectedNames)
		}

		if inst.TicksRemaining <= 0 {
			update.Resolved = true
			e.resolveExpired(inst, scenario, gs, &update)
		}

		updates = append(updates, update)
	}

	e.collectResolved()
	return updates
}

// resolveExpired handles an instance whose countdown hit zero. A
// career-ending scandal the player never answered takes its subject
// down: the contract is dropped, and a high enough scenario blacklist
// risk puts the name on the industry blacklist.
func (e *Engine) resolveExpired(inst *Instance, scenario catalog.Scenario, gs *state.GameState, update *Update) {
	inst.Resolved = true

	if inst.Kind != KindScandal || inst.PlayerChoiceMade {
		return
	}
	if inst.Severity != catalog.SeverityCareerEnding {
		return
	}

	for i, id := range inst.AffectedIDs {
		if gs.RemoveContract(id) {
			update.RemovedTalent = append(update.RemovedTalent, inst.AffectedNames[i])
		}
		if scenario.BlacklistRisk > blacklistThreshold {
			gs.AddBlacklistedTalent(inst.AffectedNames[i])
			update.Blacklisted = append(update.Blacklisted, inst.AffectedNames[i])
		}
	}
}

// collectResolved moves resolved instances out of the active list into
// history.
func (e *Engine) collectResolved() {
	remaining := e.active[:0]
	for _, inst := range e.active {
		if inst.Resolved {
			e.history = append(e.history, inst)
			continue
		}
		remaining = append(remaining, inst)
	}
	e.active = remaining
}

// History returns the resolved instances.
func (e *Engine) History() []*Instance {
	return e.history
}

// Snapshot returns the active instances for persistence.
func (e *Engine) Snapshot() []Instance {
	snapshot := make([]Instance, 0, len(e.active))
	for _, inst := range e.active {
		snapshot = append(snapshot, *inst)
	}
	return snapshot
}

// Restore reloads active instances from a snapshot.
func (e *Engine) Restore(instances []Instance) {
	for _, inst := range instances {
		restored := inst
		e.active = append(e.active, &restored)
	}
}
