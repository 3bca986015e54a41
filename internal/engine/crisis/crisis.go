// Package crisis implements the crisis and scandal engine.
//
// Both catalog types share trigger guards, subject resolution, timed
// instances, and player choice resolution, but they keep two deliberate
// asymmetries from the original design: crises select first-match-wins
// in declaration order and count down in months, while scandals select
// weighted-random by probability and count down in weeks.
package crisis

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/effect"
	"github.com/backlot-sim/backlot/internal/present"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/trigger"
)

// defaultScandalGate is the per-check chance that any scandal fires at
// all. Scenario probabilities are relative weights among scandals, so
// the absolute rate needs its own gate.
const defaultScandalGate = 0.25

// followUpHeadlineChance is the per-tick chance an active instance
// emits a follow-up headline from its pool.
const followUpHeadlineChance = 0.15

// blacklistThreshold is the scenario blacklist-risk level above which
// an unresolved career-ending scandal sends its subject to the
// in-fiction blacklist.
const blacklistThreshold = 70.0

var (
	// ErrUnknownInstance indicates an instance id that is not active.
	ErrUnknownInstance = errors.New("unknown scenario instance")
	// ErrChoiceOutOfRange indicates a choice index the scenario does
	// not define.
	ErrChoiceOutOfRange = errors.New("choice index out of range")
	// ErrInsufficientCash indicates the choice costs more than the
	// studio holds. The instance stays active awaiting another choice.
	ErrInsufficientCash = errors.New("insufficient cash for choice")
	// ErrAlreadyResolved indicates a second resolution attempt.
	ErrAlreadyResolved = errors.New("scenario instance already resolved")
)

// Kind distinguishes crisis instances from scandal instances.
type Kind string

const (
	KindCrisis  Kind = "crisis"
	KindScandal Kind = "scandal"
)

// Instance is a catalog scenario's runtime occurrence.
type Instance struct {
	ID          string           `json:"id"`
	ScenarioID  string           `json:"scenario_id"`
	Kind        Kind             `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Severity    catalog.Severity `json:"severity"`

	// Affected holds the talent contracts the scenario selected, by
	// id and name. Weak references only: the contracts live in
	// GameState.
	AffectedIDs   []string `json:"affected_ids"`
	AffectedNames []string `json:"affected_names"`

	// TicksRemaining counts weeks for scandals and months for crises.
	TicksRemaining int `json:"ticks_remaining"`
	Duration       int `json:"duration"`

	Resolved         bool `json:"resolved"`
	PlayerChoiceMade bool `json:"player_choice_made"`
	ChoiceSelected   int  `json:"choice_selected"`
}

// Triggered describes a newly created instance with its presentation
// request.
type Triggered struct {
	Instance *Instance
	Choices  []catalog.Choice
	Modal    present.ModalRequest
	Alert    present.Alert
}

// Update describes one active instance's per-tick progress.
type Update struct {
	Instance *Instance
	// Headline is non-empty when the instance emitted a follow-up
	// headline this tick.
	Headline string
	// Resolved is set on the tick the countdown reaches zero.
	Resolved bool
	// RemovedTalent and Blacklisted report career-ending
	// auto-resolution fallout.
	RemovedTalent []string
	Blacklisted   []string
}

// Engine evaluates crisis and scandal catalogs for one game session.
type Engine struct {
	crises   []catalog.Scenario
	scandals []catalog.Scenario
	byID     map[string]catalog.Scenario
	applier  effect.Applier
	rng      *rand.Rand

	scandalGate float64
	active      []*Instance
	history     []*Instance
	newID       func() (string, error)
}

// New creates a crisis engine over both catalogs.
func New(crises, scandals []catalog.Scenario, applier effect.Applier, rng *rand.Rand) *Engine {
	byID := make(map[string]catalog.Scenario, len(crises)+len(scandals))
	for _, s := range crises {
		byID[s.ID] = s
	}
	for _, s := range scandals {
		byID[s.ID] = s
	}
	return &Engine{
		crises:      crises,
		scandals:    scandals,
		byID:        byID,
		applier:     applier,
		rng:         rng,
		scandalGate: defaultScandalGate,
		newID:       state.NewID,
	}
}

// Active returns the instances still counting down. Resolved instances
// disappear from this list immediately.
func (e *Engine) Active() []*Instance {
	var active []*Instance
	for _, inst := range e.active {
		if !inst.Resolved {
			active = append(active, inst)
		}
	}
	return active
}

// Check evaluates both catalogs against the current state and returns
// at most one newly triggered instance: a crisis takes precedence, then
// the scandal gate is rolled. Returns nil when nothing fires.
func (e *Engine) Check(gs *state.GameState) *Triggered {
	if gs == nil {
		return nil
	}

	if triggered := e.checkCrises(gs); triggered != nil {
		return triggered
	}
	if e.rng.Float64() < e.scandalGate {
		return e.checkScandals(gs)
	}
	return nil
}

// checkCrises walks the crisis catalog in declaration order; the first
// scenario whose guard, probability draw, and subject set all succeed
// wins.
func (e *Engine) checkCrises(gs *state.GameState) *Triggered {
	var candidates []catalog.Scenario
	for _, scenario := range e.crises {
		if e.instanceActive(scenario.ID) {
			continue
		}
		if requiresSubject(scenario.Subject) && len(e.eligibleSubjects(scenario.Subject, gs)) == 0 {
			continue
		}
		candidates = append(candidates, scenario)
	}

	scenario, ok := trigger.FirstMatch(candidates, gs, e.rng)
	if !ok {
		return nil
	}
	return e.spawn(scenario, KindCrisis, gs)
}

// checkScandals gathers condition-eligible scandals with a non-empty
// subject set and picks one weighted by probability.
func (e *Engine) checkScandals(gs *state.GameState) *Triggered {
	var candidates []catalog.Scenario
	for _, scenario := range e.scandals {
		if e.instanceActive(scenario.ID) {
			continue
		}
		if len(e.eligibleSubjects(scenario.Subject, gs)) == 0 {
			continue
		}
		candidates = append(candidates, scenario)
	}

	scenario, ok := trigger.WeightedPick(candidates, gs, e.rng)
	if !ok {
		return nil
	}
	return e.spawn(scenario, KindScandal, gs)
}

func (e *Engine) instanceActive(scenarioID string) bool {
	for _, inst := range e.active {
		if !inst.Resolved && inst.ScenarioID == scenarioID {
			return true
		}
	}
	return false
}

// requiresSubject reports whether a scenario constrains its subjects
// at all. A scenario with any requirement set, even without a kind,
// needs a non-empty eligible set; only fully unconstrained scenarios
// are studio-wide and skip the subject check.
func requiresSubject(req catalog.SubjectRequirements) bool {
	return req != (catalog.SubjectRequirements{})
}

// eligibleSubjects resolves which contracted talent qualify under the
// scenario's requirements. Absent collections are treated as empty.
func (e *Engine) eligibleSubjects(req catalog.SubjectRequirements, gs *state.GameState) []state.Contract {
	if req.Kind == catalog.SubjectFilm {
		// Film-targeted scenarios only need an active production.
		if len(gs.ActiveFilms) == 0 {
			return nil
		}
		return []state.Contract{{}}
	}

	var eligible []state.Contract
	for _, contract := range gs.ContractPlayers {
		if contract.StarPower < req.MinStarPower {
			continue
		}
		if req.Gender != "" && contract.Gender != req.Gender {
			continue
		}
		if req.InProduction && len(gs.ActiveFilms) == 0 {
			continue
		}
		eligible = append(eligible, contract)
	}
	return eligible
}

// spawn creates the runtime instance: picks distinct subjects without
// replacement, draws the duration, interpolates names, applies nothing
// yet. Effects land through player choices and ongoing ticks.
func (e *Engine) spawn(scenario catalog.Scenario, kind Kind, gs *state.GameState) *Triggered {
	subjects := e.eligibleSubjects(scenario.Subject, gs)

	count := scenario.Subject.AffectedCount
	if count < 1 {
		count = 1
	}
	if count > len(subjects) {
		count = len(subjects)
	}

	var affectedIDs, affectedNames []string
	if scenario.Subject.Kind != catalog.SubjectFilm {
		for _, idx := range e.rng.Perm(len(subjects))[:count] {
			affectedIDs = append(affectedIDs, subjects[idx].ID)
			affectedNames = append(affectedNames, subjects[idx].Name)
		}
	}

	duration := scenario.DurationMin
	if spread := scenario.DurationMax - scenario.DurationMin; spread > 0 {
		duration += e.rng.Intn(spread + 1)
	}

	id, err := e.newID()
	if err != nil {
		return nil
	}

	inst := &Instance{
		ID:             id,
		ScenarioID:     scenario.ID,
		Kind:           kind,
		Title:          interpolate(scenario.Title, affectedNames),
		Description:    interpolate(scenario.Description, affectedNames),
		Severity:       scenario.Severity,
		AffectedIDs:    affectedIDs,
		AffectedNames:  affectedNames,
		TicksRemaining: duration,
		Duration:       duration,
		ChoiceSelected: -1,
	}
	e.active = append(e.active, inst)

	record := state.HistoryRecord{
		ID:    scenario.ID,
		Year:  gs.CurrentDate.Year,
		Month: gs.CurrentDate.Month,
		Title: inst.Title,
	}
	alertType := present.AlertWarning
	if kind == KindScandal {
		gs.Scandals = append(gs.Scandals, record)
		alertType = present.AlertScandal
	} else {
		gs.Crises = append(gs.Crises, record)
	}

	return &Triggered{
		Instance: inst,
		Choices:  scenario.Choices,
		Modal: present.ModalRequest{
			Title: inst.Title,
			Body:  inst.Description,
		},
		Alert: present.Alert{
			Type:     alertType,
			Icon:     string(kind),
			Message:  inst.Title,
			Priority: present.PriorityHigh,
		},
	}
}

// interpolate substitutes [STAR] and [CO_STAR] placeholders with
// affected talent names.
func interpolate(text string, names []string) string {
	if len(names) > 0 {
		text = strings.ReplaceAll(text, "[STAR]", names[0])
	}
	if len(names) > 1 {
		text = strings.ReplaceAll(text, "[CO_STAR]", names[1])
	}
	return text
}
