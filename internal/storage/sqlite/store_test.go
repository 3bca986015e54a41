package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/engine/crisis"
	"github.com/backlot-sim/backlot/internal/engine/script"
	"github.com/backlot-sim/backlot/internal/state"
	"github.com/backlot-sim/backlot/internal/storage"
	"github.com/backlot-sim/backlot/internal/telemetry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "backlot.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func testSession(id string) storage.Session {
	gs := state.New(state.Date{Year: 1947, Month: 10}, 250000)
	gs.HUACActive = true
	gs.ContractPlayers = []state.Contract{{ID: "vivian", Name: "Vivian Marsh", StarPower: 85}}
	gs.HistoricalEvents = []state.HistoryRecord{{ID: "huac_hearings", Year: 1947, Month: 10, Title: "HUAC Opens Hearings"}}

	return storage.Session{
		ID:                id,
		SavedAt:           time.Date(1947, time.October, 20, 12, 0, 0, 0, time.UTC),
		Seed:              99,
		State:             gs,
		TriggeredEventIDs: []string{"king_kong_premiere", "huac_hearings"},
		ActiveInstances: []crisis.Instance{{
			ID:             "inst-1",
			ScenarioID:     "huac_subpoena",
			Kind:           crisis.KindCrisis,
			Title:          "The Subpoena",
			TicksRemaining: 2,
			Duration:       3,
			ChoiceSelected: -1,
		}},
		Scripts: []*script.Script{{
			ID:       "script-1",
			Category: "film_noir",
			ScriptTemplate: catalog.ScriptTemplate{
				Title:  "Night Without Mercy",
				Genre:  "noir",
				Year:   1947,
				Budget: 220000,
			},
			ProfitProjection: 286000,
			RiskAssessment:   script.RiskMedium,
			MarketAppeal:     script.AppealGood,
			Available:        true,
		}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	want := testSession("session-1")

	if err := store.SaveSession(ctx, want); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}
	got, err := store.LoadSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("LoadSession() error: %v", err)
	}

	if got.ID != want.ID || got.Seed != want.Seed {
		t.Errorf("loaded id/seed = %q/%d, want %q/%d", got.ID, got.Seed, want.ID, want.Seed)
	}
	if !got.SavedAt.Equal(want.SavedAt) {
		t.Errorf("saved at = %v, want %v", got.SavedAt, want.SavedAt)
	}
	if got.State.Cash != 250000 || !got.State.HUACActive {
		t.Errorf("state = %+v, want cash and flags preserved", got.State)
	}
	if len(got.State.ContractPlayers) != 1 || got.State.ContractPlayers[0].Name != "Vivian Marsh" {
		t.Errorf("roster = %v", got.State.ContractPlayers)
	}
	if len(got.TriggeredEventIDs) != 2 {
		t.Errorf("triggered ids = %v, want 2", got.TriggeredEventIDs)
	}
	if len(got.ActiveInstances) != 1 {
		t.Fatalf("instances = %v, want 1", got.ActiveInstances)
	}
	inst := got.ActiveInstances[0]
	if inst.ScenarioID != "huac_subpoena" || inst.TicksRemaining != 2 || inst.ChoiceSelected != -1 {
		t.Errorf("instance = %+v", inst)
	}
	if len(got.Scripts) != 1 || got.Scripts[0].Title != "Night Without Mercy" {
		t.Errorf("scripts = %v", got.Scripts)
	}
	if !got.Scripts[0].Available {
		t.Error("script availability lost in the round trip")
	}
}

func TestSaveSessionUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := testSession("session-1")
	if err := store.SaveSession(ctx, session); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}

	session.State.Cash = 100
	session.SavedAt = session.SavedAt.Add(time.Hour)
	if err := store.SaveSession(ctx, session); err != nil {
		t.Fatalf("second SaveSession() error: %v", err)
	}

	got, err := store.LoadSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("LoadSession() error: %v", err)
	}
	if got.State.Cash != 100 {
		t.Errorf("cash = %v, want the updated snapshot", got.State.Cash)
	}
}

func TestSaveSessionValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveSession(ctx, storage.Session{State: &state.GameState{}}); err == nil {
		t.Error("SaveSession() without an id succeeded")
	}
	if err := store.SaveSession(ctx, storage.Session{ID: "s"}); err == nil {
		t.Error("SaveSession() without state succeeded")
	}
}

func TestLoadSessionNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadSession(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LoadSession() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveSession(ctx, testSession("session-1")); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}
	if err := store.DeleteSession(ctx, "session-1"); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
	if _, err := store.LoadSession(ctx, "session-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LoadSession() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSession(ctx, "session-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteSession() error = %v, want ErrNotFound", err)
	}
}

func TestAppendTelemetryEvent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	emitter := telemetry.NewEmitter(store)
	err := emitter.Emit(ctx, telemetry.Event{
		Severity: telemetry.SeverityWarn,
		Source:   "events/typo",
		Message:  "unknown effect key: reputaiton",
	})
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}

	var count int
	if err := store.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM telemetry_events").Scan(&count); err != nil {
		t.Fatalf("count telemetry events: %v", err)
	}
	if count != 1 {
		t.Errorf("telemetry rows = %d, want 1", count)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open() with a blank path succeeded")
	}
}
