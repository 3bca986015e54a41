package catalog

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestLoadEmbeddedCatalogs(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(c.Events) == 0 {
		t.Error("no historical events loaded")
	}
	if len(c.Scripts.Categories) == 0 {
		t.Error("no script categories loaded")
	}
	if len(c.Crises) == 0 {
		t.Error("no crises loaded")
	}
	if len(c.Scandals) == 0 {
		t.Error("no scandals loaded")
	}
}

// Every effect key in shipped catalog data must map onto the closed
// vocabulary. A typo here would silently become a no-op at runtime, so
// it fails loudly in tests instead.
func TestShippedCatalogsUseOnlyKnownEffectKeys(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for _, unknown := range c.UnknownEffectKeys {
		t.Errorf("catalog entry %s uses unknown effect key %q", unknown.Source, unknown.Key)
	}
}

func TestShippedEventsAnchored(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	byID := make(map[string]Event, len(c.Events))
	for _, evt := range c.Events {
		byID[evt.ID] = evt
	}

	hays, ok := byID["hays_code_enforced"]
	if !ok {
		t.Fatal("hays_code_enforced missing from catalog")
	}
	if hays.Year != 1934 || hays.Month != 7 {
		t.Errorf("hays_code_enforced dated %d/%d, want 1934/7", hays.Year, hays.Month)
	}

	// December 1939 carries two premieres firing on the same check.
	var december1939 int
	for _, evt := range c.Events {
		if evt.Year == 1939 && evt.Month == 12 {
			december1939++
		}
	}
	if december1939 < 2 {
		t.Errorf("December 1939 carries %d events, want at least 2", december1939)
	}

	final, ok := byID["end_of_timeline"]
	if !ok {
		t.Fatal("end_of_timeline missing from catalog")
	}
	if final.Year != 2010 || final.Month != 12 {
		t.Errorf("end_of_timeline dated %d/%d, want 2010/12", final.Year, final.Month)
	}
}

func TestShippedScenariosResolvable(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, group := range [][]Scenario{c.Crises, c.Scandals} {
		for _, scenario := range group {
			if len(scenario.Choices) == 0 {
				t.Errorf("scenario %s has no choices", scenario.ID)
			}
			if scenario.DurationMin < 1 || scenario.DurationMax < scenario.DurationMin {
				t.Errorf("scenario %s duration range [%d, %d] invalid", scenario.ID, scenario.DurationMin, scenario.DurationMax)
			}
		}
	}
}

func TestWeightsForYear(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		year         int
		wantCategory string
	}{
		{1933, "prestige_drama"},
		{1948, "prestige_drama"},
		{2005, "action_blockbuster"},
	}
	for _, tt := range tests {
		weights := c.Scripts.WeightsForYear(tt.year)
		if _, ok := weights.CategoryChances[tt.wantCategory]; !ok {
			t.Errorf("WeightsForYear(%d) lacks category %q: %v", tt.year, tt.wantCategory, weights.CategoryChances)
		}
	}

	outside := c.Scripts.WeightsForYear(1800)
	if outside.DefaultCategory != c.Scripts.DefaultWeights.DefaultCategory {
		t.Errorf("WeightsForYear(1800) = %+v, want the default table", outside)
	}
}

func catalogFS(events, scripts, crises, scandals string) fstest.MapFS {
	return fstest.MapFS{
		"events.yaml":   {Data: []byte(events)},
		"scripts.yaml":  {Data: []byte(scripts)},
		"crises.yaml":   {Data: []byte(crises)},
		"scandals.yaml": {Data: []byte(scandals)},
	}
}

const minimalScripts = `
categories:
  b_movie:
    - title: Quickie
      genre: b_movie
      year: 1940
      budget: 50000
      quality: 40
default_weights:
  default_category: b_movie
`

func TestLoadFSValidation(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr error
	}{
		{
			name: "duplicate event id",
			fsys: catalogFS(`
events:
  - id: dup
    year: 1940
    month: 1
    title: First
  - id: dup
    year: 1941
    month: 1
    title: Second
`, minimalScripts, "crises: []", "scandals: []"),
			wantErr: ErrDuplicateID,
		},
		{
			name: "missing scenario id",
			fsys: catalogFS("events: []", minimalScripts, `
crises:
  - title: Anonymous Trouble
    duration_min: 1
    duration_max: 2
`, "scandals: []"),
			wantErr: ErrEmptyEntryID,
		},
		{
			name: "inverted duration range",
			fsys: catalogFS("events: []", minimalScripts, "crises: []", `
scandals:
  - id: bad_range
    title: Bad Range
    duration_min: 4
    duration_max: 2
`),
			wantErr: ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFS() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFSCollectsUnknownKeys(t *testing.T) {
	fsys := catalogFS(`
events:
  - id: typo_event
    year: 1940
    month: 1
    title: Typo Event
    effects:
      reputaiton: 5
`, minimalScripts, "crises: []", "scandals: []")

	c, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	if len(c.UnknownEffectKeys) != 1 {
		t.Fatalf("got %d unknown keys, want 1", len(c.UnknownEffectKeys))
	}
	got := c.UnknownEffectKeys[0]
	if got.Source != "events/typo_event" || got.Key != "reputaiton" {
		t.Errorf("unknown key = %+v, want events/typo_event reputaiton", got)
	}
}
