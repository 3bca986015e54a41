// Package engine wires the event, crisis, and script engines into one
// session orchestrator and enforces the tick ordering the catalogs
// depend on: historical events resolve before crisis checks, which run
// before script generation, because crisis guards read era flags an
// event may have just set.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/effect"
	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/event"
	"github.com/backlot-sim/backlot/internal/engine/script"
	"github.com/backlot-sim/backlot/internal/era"
	"github.com/backlot-sim/backlot/internal/present"
	"github.com/backlot-sim/backlot/internal/random"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/storage"
)

// ErrInsufficientFunds indicates a greenlight the studio cannot afford.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Production is the collaborator that turns a greenlit script into an
// active film. The core never owns production scheduling.
type Production interface {
	StartProduction(s *script.Script, today state.Date) (*state.Film, error)
}

// Options configures a session orchestrator.
type Options struct {
	Catalog      *catalog.Catalog
	Seed         int64
	Start        state.Date
	StartingCash float64

	// Collaborators. Presenter and Alerter default to no-ops; Ledger
	// defaults to a direct cash writer; Production defaults to the
	// built-in scheduler; Eras defaults to the built-in table.
	Presenter   present.Presenter
	Alerter     present.Alerter
	Ledger      present.Ledger
	Production  Production
	Eras        era.Table
	Diagnostics effect.Diagnostics
}

// Orchestrator owns one game session.
type Orchestrator struct {
	gs         *state.GameState
	seed       int64
	rng        *rand.Rand
	events     *event.Engine
	scripts    *script.Engine
	crises     *crisis.Engine
	presenter  present.Presenter
	alerter    present.Alerter
	ledger     present.Ledger
	production Production
	tracer     trace.Tracer
}

// New constructs a session orchestrator from catalogs and
// collaborators.
func New(opts Options) (*Orchestrator, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if opts.Start == (state.Date{}) {
		opts.Start = state.Date{Year: 1933, Month: 1}
	}
	if opts.Presenter == nil {
		opts.Presenter = present.NopPresenter{}
	}
	if opts.Alerter == nil {
		opts.Alerter = present.NopAlerter{}
	}
	if opts.Eras == nil {
		opts.Eras = era.DefaultTable{}
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = effect.NopDiagnostics{}
	}

	gs := state.New(opts.Start, opts.StartingCash)
	if opts.Ledger == nil {
		opts.Ledger = directLedger{gs: gs}
	}

	applier := effect.Applier{Ledger: opts.Ledger, Diagnostics: opts.Diagnostics}
	rng := random.NewRand(opts.Seed)

	o := &Orchestrator{
		gs:         gs,
		seed:       opts.Seed,
		rng:        rng,
		events:     event.New(opts.Catalog.Events, applier),
		scripts:    script.New(opts.Catalog.Scripts, opts.Eras, rng),
		crises:     crisis.New(opts.Catalog.Crises, opts.Catalog.Scandals, applier, rng),
		presenter:  opts.Presenter,
		alerter:    opts.Alerter,
		ledger:     opts.Ledger,
		production: opts.Production,
		tracer:     otel.Tracer("backlot/engine"),
	}
	if o.production == nil {
		o.production = scheduler{}
	}

	for _, unknown := range opts.Catalog.UnknownEffectKeys {
		opts.Diagnostics.UnknownEffectKey(unknown.Source, unknown.Key)
	}
	return o, nil
}

// directLedger writes cash straight onto the state. It is the default
// when no external ledger observer is wired.
type directLedger struct {
	gs *state.GameState
}

func (l directLedger) MutateCash(delta float64) {
	l.gs.Cash += delta
}

// GameState exposes the session state to collaborators.
func (o *Orchestrator) GameState() *state.GameState {
	return o.gs
}

// ActiveInstances exposes the crisis engine's running instances.
func (o *Orchestrator) ActiveInstances() []*crisis.Instance {
	return o.crises.Active()
}

// AdvanceMonth runs one monthly simulation tick: historical events,
// then crisis checks and crisis countdowns, then script generation,
// then studio upkeep. It returns the scripts generated this month.
func (o *Orchestrator) AdvanceMonth(ctx context.Context) []*script.Script {
	ctx, span := o.tracer.Start(ctx, "engine.advance_month",
		trace.WithAttributes(
			attribute.Int("game.year", o.gs.CurrentDate.Year),
			attribute.Int("game.month", o.gs.CurrentDate.Month),
		))
	defer span.End()

	o.gs.GameYear = o.gs.CurrentDate.Year

	o.checkEvents(ctx)
	o.checkCrises(ctx)
	scripts := o.generateScripts(ctx)
	o.upkeep()

	o.gs.CurrentDate = o.gs.CurrentDate.Next()
	return scripts
}

func (o *Orchestrator) checkEvents(ctx context.Context) {
	_, span := o.tracer.Start(ctx, "engine.check_events")
	defer span.End()

	triggered := o.events.Check(o.gs)
	span.SetAttributes(attribute.Int("events.triggered", len(triggered)))
	for _, t := range triggered {
		o.presenter.PresentModal(t.Modal)
		o.alerter.PostAlert(present.Alert{
			Type:     present.AlertInfo,
			Icon:     string(t.Event.Type),
			Message:  t.Event.Headline,
			Priority: t.Priority,
		})
	}
}

func (o *Orchestrator) checkCrises(ctx context.Context) {
	_, span := o.tracer.Start(ctx, "engine.check_crises")
	defer span.End()

	for _, update := range o.crises.AdvanceMonth(o.gs) {
		o.postUpdate(update)
	}

	if triggered := o.crises.Check(o.gs); triggered != nil {
		o.presenter.PresentModal(triggered.Modal)
		o.alerter.PostAlert(triggered.Alert)
	}
}

func (o *Orchestrator) generateScripts(ctx context.Context) []*script.Script {
	_, span := o.tracer.Start(ctx, "engine.generate_scripts")
	defer span.End()

	o.scripts.ExpireOptions(o.gs.CurrentDate)
	scripts := o.scripts.GenerateMonthly(o.gs)
	span.SetAttributes(attribute.Int("scripts.generated", len(scripts)))
	return scripts
}

// upkeep advances productions, charges the monthly burn, and accrues
// loan interest.
func (o *Orchestrator) upkeep() {
	if o.gs.MonthlyBurn != 0 {
		o.ledger.MutateCash(-o.gs.MonthlyBurn)
	}
	for _, loan := range o.gs.Loans {
		o.ledger.MutateCash(-loan.MonthlyInterest())
	}

	remaining := o.gs.ActiveFilms[:0]
	for _, film := range o.gs.ActiveFilms {
		if film.DelayDays >= 30 {
			film.DelayDays -= 30
			remaining = append(remaining, film)
			continue
		}
		film.MonthsRemaining--
		if film.MonthsRemaining > 0 {
			remaining = append(remaining, film)
			continue
		}
		o.releaseFilm(film)
	}
	o.gs.ActiveFilms = remaining
}

// releaseFilm moves a finished production to the completed list and
// books its gross through the ledger.
func (o *Orchestrator) releaseFilm(film *state.Film) {
	gross := film.BoxOffice * (0.7 + o.rng.Float64()*0.6)
	film.BoxOffice = gross
	o.gs.CompletedFilms = append(o.gs.CompletedFilms, film)
	o.ledger.MutateCash(gross)
	o.alerter.PostAlert(present.Alert{
		Type:     present.AlertInfo,
		Icon:     "premiere",
		Message:  fmt.Sprintf("%s opens nationwide", film.Title),
		Priority: present.PriorityNormal,
	})
}

// AdvanceWeek runs one weekly tick: scandal countdowns, ongoing
// effects, follow-up headlines, and career-ending fallout.
func (o *Orchestrator) AdvanceWeek(ctx context.Context) {
	_, span := o.tracer.Start(ctx, "engine.advance_week")
	defer span.End()

	for _, update := range o.crises.AdvanceWeek(o.gs) {
		o.postUpdate(update)
	}
}

func (o *Orchestrator) postUpdate(update crisis.Update) {
	if update.Headline != "" {
		o.alerter.PostAlert(present.Alert{
			Type:     present.AlertScandal,
			Icon:     "headline",
			Message:  update.Headline,
			Priority: present.PriorityNormal,
		})
	}
	for _, name := range update.RemovedTalent {
		o.alerter.PostAlert(present.Alert{
			Type:     present.AlertScandal,
			Icon:     "contract",
			Message:  fmt.Sprintf("%s's contract has been terminated", name),
			Priority: present.PriorityHigh,
		})
	}
	for _, name := range update.Blacklisted {
		o.alerter.PostAlert(present.Alert{
			Type:     present.AlertWarning,
			Icon:     "blacklist",
			Message:  fmt.Sprintf("%s has been blacklisted", name),
			Priority: present.PriorityHigh,
		})
	}
}

// ResolveCrisisChoice applies a player choice. Failures are posted as
// alerts and returned; game state is untouched on any failure.
func (o *Orchestrator) ResolveCrisisChoice(instanceID string, choiceIndex int) error {
	outcome, err := o.crises.Resolve(instanceID, choiceIndex, o.gs)
	if err != nil {
		alertType := present.AlertError
		if errors.Is(err, crisis.ErrInsufficientCash) {
			alertType = present.AlertWarning
		}
		o.alerter.PostAlert(present.Alert{
			Type:     alertType,
			Icon:     "choice",
			Message:  fmt.Sprintf("cannot apply choice: %v", err),
			Priority: present.PriorityNormal,
		})
		return err
	}
	if outcome.Suppressed {
		o.alerter.PostAlert(present.Alert{
			Type:     present.AlertInfo,
			Icon:     "suppressed",
			Message:  "The story is dying down faster than expected",
			Priority: present.PriorityLow,
		})
	}
	return nil
}

// OptionScript places a generated script under a three-month option.
func (o *Orchestrator) OptionScript(scriptID string) error {
	return o.scripts.Option(scriptID, o.gs.CurrentDate)
}

// GreenlightScript pays for a script and hands it to the production
// collaborator.
func (o *Orchestrator) GreenlightScript(scriptID string) (*state.Film, error) {
	s, err := o.scripts.Lookup(scriptID)
	if err != nil {
		return nil, err
	}
	if o.gs.Cash < s.Budget {
		o.alerter.PostAlert(present.Alert{
			Type:     present.AlertWarning,
			Icon:     "budget",
			Message:  fmt.Sprintf("cannot greenlight %s: budget exceeds cash on hand", s.Title),
			Priority: present.PriorityNormal,
		})
		return nil, ErrInsufficientFunds
	}

	taken, err := o.scripts.Take(scriptID)
	if err != nil {
		return nil, err
	}
	film, err := o.production.StartProduction(taken, o.gs.CurrentDate)
	if err != nil {
		return nil, err
	}

	o.ledger.MutateCash(-taken.Budget)
	o.gs.ActiveFilms = append(o.gs.ActiveFilms, film)
	return film, nil
}

// scheduler is the built-in production collaborator.
type scheduler struct{}

// StartProduction converts a script into an active film. A shooting
// month covers roughly 22 working days.
func (scheduler) StartProduction(s *script.Script, today state.Date) (*state.Film, error) {
	id, err := state.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate film id: %w", err)
	}
	months := s.ShootingDays/22 + 1
	return &state.Film{
		ID:              id,
		Title:           s.Title,
		Genre:           s.Genre,
		Budget:          s.Budget,
		Quality:         s.Quality,
		CensorRisk:      s.CensorRisk,
		BoxOffice:       s.ProfitProjection,
		MonthsRemaining: months,
		Started:         today,
	}, nil
}

// Snapshot captures the full session for persistence.
func (o *Orchestrator) Snapshot(sessionID string) storage.Session {
	return storage.Session{
		ID:                sessionID,
		SavedAt:           time.Now().UTC(),
		Seed:              o.seed,
		State:             o.gs,
		TriggeredEventIDs: o.events.TriggeredIDs(),
		ActiveInstances:   o.crises.Snapshot(),
		Scripts:           o.scripts.Snapshot(),
	}
}

// Restore reloads a persisted session into this orchestrator. The
// orchestrator must have been constructed with the session's original
// catalogs.
func (o *Orchestrator) Restore(session storage.Session) error {
	if session.State == nil {
		return fmt.Errorf("session state is required")
	}
	*o.gs = *session.State
	o.events.RestoreTriggered(session.TriggeredEventIDs)
	o.crises.Restore(session.ActiveInstances)
	o.scripts.Restore(session.Scripts)
	return nil
}
