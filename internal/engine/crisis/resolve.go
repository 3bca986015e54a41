package crisis

import (
	"github.com/backlot-sim/backlot/internal/effect"
	"github.com/backlot-sim/backlot/internal/state"
)

// Outcome reports the result of a player choice resolution.
type Outcome struct {
	Instance *Instance
	ChoiceID string
	// Suppressed is set when a scandal_hidden roll succeeded and the
	// countdown was shrunk.
	Suppressed bool
}

// Resolve applies the player's choice to an active instance. Every
// failure mode is a no-op on game state: unknown ids, out-of-range
// indexes, and unaffordable choices all return an error the caller
// surfaces as an alert, never as a crash of the tick loop. An
// unaffordable choice leaves the instance active and awaiting a
// different choice.
func (e *Engine) Resolve(instanceID string, choiceIndex int, gs *state.GameState) (Outcome, error) {
	var inst *Instance
	for _, candidate := range e.active {
		if candidate.ID == instanceID {
			inst = candidate
			break
		}
	}
	if inst == nil {
		return Outcome{}, ErrUnknownInstance
	}
	if inst.Resolved {
		return Outcome{}, ErrAlreadyResolved
	}

	scenario, ok := e.byID[inst.ScenarioID]
	if !ok {
		return Outcome{}, ErrUnknownInstance
	}
	if choiceIndex < 0 || choiceIndex >= len(scenario.Choices) {
		return Outcome{}, ErrChoiceOutOfRange
	}

	choice := scenario.Choices[choiceIndex]
	if choice.RequiresCash > 0 && gs.Cash < choice.RequiresCash {
		return Outcome{}, ErrInsufficientCash
	}

	e.applier.Apply(choice.Effects.List, gs, "scenarios/"+scenario.ID+"/"+choice.ID)
	inst.ChoiceSelected = choiceIndex
	inst.PlayerChoiceMade = true

	outcome := Outcome{Instance: inst, ChoiceID: choice.ID}
	if hidden, found := choice.Effects.Find(effect.KindScandalHidden); found {
		if e.rng.Float64() < hidden.Value {
			inst.TicksRemaining = inst.TicksRemaining * 3 / 10
			outcome.Suppressed = true
			if inst.TicksRemaining <= 0 {
				inst.Resolved = true
				e.collectResolved()
			}
		}
	}

	if choice.LongTermEffect != "" {
		gs.AddLongTermEffect(choice.LongTermEffect)
	}

	return outcome, nil
}
