// Package main runs a headless studio simulation from 1933 to 2010.
//
// It is the reference implementation of every collaborator the core
// expects: modals and alerts print to stdout, the ledger writes cash,
// and the session is checkpointed to SQLite once per simulated year.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/engine"
	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/script"
	apperrors "github.com/backlot-sim/backlot/internal/errors"
	"github.com/backlot-sim/backlot/internal/platform/config"
	"github.com/backlot-sim/backlot/internal/platform/otel"
	"github.com/backlot-sim/backlot/internal/present"
	"github.com/backlot-sim/backlot/internal/random"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/storage/sqlite"
	"github.com/backlot-sim/backlot/internal/telemetry"
)

type envConfig struct {
	DBPath       string  `env:"BACKLOT_DB_PATH" envDefault:"backlot.db"`
	Seed         int64   `env:"BACKLOT_SEED" envDefault:"0"`
	SessionID    string  `env:"BACKLOT_SESSION_ID" envDefault:"default"`
	StartYear    int     `env:"BACKLOT_START_YEAR" envDefault:"1933"`
	EndYear      int     `env:"BACKLOT_END_YEAR" envDefault:"2010"`
	StartingCash float64 `env:"BACKLOT_STARTING_CASH" envDefault:"500000"`
	AutoResolve  bool    `env:"BACKLOT_AUTO_RESOLVE" envDefault:"true"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("backlot: %v", err)
	}

	shutdown, err := otel.Setup(ctx, "backlot")
	if err != nil {
		config.Exitf("backlot: otel setup: %v", err)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	if err := run(ctx, cfg); err != nil {
		config.Exitf("backlot: %v", err)
	}
}

func run(ctx context.Context, cfg envConfig) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
	}

	start, err := state.NewDate(cfg.StartYear, 1)
	if err != nil {
		return err
	}

	emitter := telemetry.NewEmitter(store)
	session, err := engine.New(engine.Options{
		Catalog:      cat,
		Seed:         seed,
		Start:        start,
		StartingCash: cfg.StartingCash,
		Presenter:    consolePresenter{},
		Alerter:      consoleAlerter{},
		Diagnostics:  telemetry.EffectDiagnostics{Emitter: emitter},
	})
	if err != nil {
		return err
	}

	seedRoster(session.GameState())
	fmt.Printf("backlot: seed %d, %d-%d\n", seed, cfg.StartYear, cfg.EndYear)

	for !session.GameState().GameComplete {
		if err := ctx.Err(); err != nil {
			break
		}
		gs := session.GameState()
		if gs.CurrentDate.Year > cfg.EndYear {
			break
		}

		scripts := session.AdvanceMonth(ctx)
		if cfg.AutoResolve {
			autoGreenlight(session, scripts)
			autoResolve(session)
		}

		// Four weekly scandal ticks per simulated month.
		for i := 0; i < 4; i++ {
			session.AdvanceWeek(ctx)
		}

		if gs.CurrentDate.Month == 1 {
			if err := store.SaveSession(ctx, session.Snapshot(cfg.SessionID)); err != nil {
				return fmt.Errorf("checkpoint session: %w", err)
			}
		}
	}

	gs := session.GameState()
	fmt.Printf("backlot: finished %d with cash %.0f, reputation %.0f, %d films released\n",
		gs.CurrentDate.Year, gs.Cash, gs.Reputation, len(gs.CompletedFilms))
	return store.SaveSession(ctx, session.Snapshot(cfg.SessionID))
}

// autoGreenlight picks the strongest affordable script each month.
func autoGreenlight(session *engine.Orchestrator, scripts []*script.Script) {
	gs := session.GameState()
	if len(gs.ActiveFilms) >= 2 {
		return
	}
	var best *script.Script
	for _, s := range scripts {
		if s.Budget > gs.Cash {
			continue
		}
		if best == nil || s.ProfitProjection > best.ProfitProjection {
			best = s
		}
	}
	if best == nil {
		return
	}
	if _, err := session.GreenlightScript(best.ID); err != nil {
		fmt.Printf("  greenlight failed [%s]: %v\n", apperrors.CodeOf(err), err)
		return
	}
	fmt.Printf("  greenlit %q (%s, budget %.0f)\n", best.Title, best.RiskAssessment, best.Budget)
}

// autoResolve answers every open choice with the first affordable
// option.
func autoResolve(session *engine.Orchestrator) {
	for _, inst := range session.ActiveInstances() {
		if inst.PlayerChoiceMade {
			continue
		}
		for idx := 0; ; idx++ {
			err := session.ResolveCrisisChoice(inst.ID, idx)
			if err == nil {
				break
			}
			if errors.Is(err, crisis.ErrInsufficientCash) {
				continue
			}
			if !errors.Is(err, crisis.ErrChoiceOutOfRange) {
				fmt.Printf("  choice failed [%s]: %v\n", apperrors.CodeOf(err), err)
			}
			break
		}
	}
}

// consolePresenter prints modal requests to stdout.
type consolePresenter struct{}

func (consolePresenter) PresentModal(req present.ModalRequest) {
	fmt.Printf("== %s ==\n%s\n", req.Title, req.Body)
}

// consoleAlerter prints alerts to stdout.
type consoleAlerter struct{}

func (consoleAlerter) PostAlert(alert present.Alert) {
	fmt.Printf("  [%s/%s] %s\n", alert.Type, alert.Priority, alert.Message)
}

// seedRoster signs an opening roster of contract players so scandal
// subject resolution has material to work with.
func seedRoster(gs *state.GameState) {
	roster := []state.Contract{
		{Name: "Vivian Marsh", Role: "actor", Gender: "female", StarPower: 85, Salary: 3500},
		{Name: "Richard Calloway", Role: "actor", Gender: "male", StarPower: 72, Salary: 2800},
		{Name: "Dolores Fontaine", Role: "actor", Gender: "female", StarPower: 64, Salary: 2100},
		{Name: "Eddie Brazos", Role: "actor", Gender: "male", StarPower: 45, Salary: 900},
		{Name: "Harold Wexler", Role: "director", Gender: "male", StarPower: 58, Salary: 1800},
		{Name: "Marguerite Olin", Role: "writer", Gender: "female", StarPower: 30, Salary: 650},
	}
	for i := range roster {
		id, err := state.NewID()
		if err != nil {
			continue
		}
		roster[i].ID = id
	}
	gs.ContractPlayers = roster
}
