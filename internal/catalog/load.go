package catalog

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/backlot-sim/backlot/internal/catalog/data"
	"github.com/backlot-sim/backlot/internal/effect"
)

var (
	// ErrEmptyEntryID indicates a catalog entry without an id.
	ErrEmptyEntryID = errors.New("catalog entry id is required")
	// ErrDuplicateID indicates two catalog entries sharing an id.
	ErrDuplicateID = errors.New("catalog entry id is duplicated")
	// ErrInvalidDuration indicates a scenario duration range that is
	// empty or inverted.
	ErrInvalidDuration = errors.New("scenario duration range is invalid")
)

// UnknownKey records one unrecognized effect key found in catalog data.
type UnknownKey struct {
	Source string
	Key    string
}

// Catalog bundles all loaded content.
type Catalog struct {
	Events   []Event
	Scripts  ScriptCatalog
	Crises   []Scenario
	Scandals []Scenario

	// UnknownEffectKeys lists every effect key in the data files that
	// the vocabulary did not recognize. Loading tolerates them; the
	// caller is expected to report them through diagnostics.
	UnknownEffectKeys []UnknownKey
}

// Load decodes the embedded catalogs.
func Load() (*Catalog, error) {
	return LoadFS(data.FS)
}

// LoadFS decodes catalogs from the provided filesystem. The filesystem
// must contain events.yaml, scripts.yaml, crises.yaml, and
// scandals.yaml at its root.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var c Catalog

	var eventsFile struct {
		Events []Event `yaml:"events"`
	}
	if err := decodeFile(fsys, "events.yaml", &eventsFile); err != nil {
		return nil, err
	}
	c.Events = eventsFile.Events

	if err := decodeFile(fsys, "scripts.yaml", &c.Scripts); err != nil {
		return nil, err
	}

	var crisesFile struct {
		Crises []Scenario `yaml:"crises"`
	}
	if err := decodeFile(fsys, "crises.yaml", &crisesFile); err != nil {
		return nil, err
	}
	c.Crises = crisesFile.Crises

	var scandalsFile struct {
		Scandals []Scenario `yaml:"scandals"`
	}
	if err := decodeFile(fsys, "scandals.yaml", &scandalsFile); err != nil {
		return nil, err
	}
	c.Scandals = scandalsFile.Scandals

	if err := c.validate(); err != nil {
		return nil, err
	}
	c.collectUnknownKeys()
	return &c, nil
}

func decodeFile(fsys fs.FS, name string, target any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode catalog %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, evt := range c.Events {
		if evt.ID == "" {
			return fmt.Errorf("event %q: %w", evt.Title, ErrEmptyEntryID)
		}
		if seen[evt.ID] {
			return fmt.Errorf("event %q: %w", evt.ID, ErrDuplicateID)
		}
		seen[evt.ID] = true
		if evt.Month < 1 || evt.Month > 12 {
			return fmt.Errorf("event %q: month %d out of range", evt.ID, evt.Month)
		}
	}

	for _, group := range [][]Scenario{c.Crises, c.Scandals} {
		for _, scenario := range group {
			if scenario.ID == "" {
				return fmt.Errorf("scenario %q: %w", scenario.Title, ErrEmptyEntryID)
			}
			if seen[scenario.ID] {
				return fmt.Errorf("scenario %q: %w", scenario.ID, ErrDuplicateID)
			}
			seen[scenario.ID] = true
			if scenario.DurationMin < 1 || scenario.DurationMax < scenario.DurationMin {
				return fmt.Errorf("scenario %q: %w", scenario.ID, ErrInvalidDuration)
			}
		}
	}
	return nil
}

func (c *Catalog) collectUnknownKeys() {
	record := func(source string, list effect.List) {
		for _, key := range list.Unknown {
			c.UnknownEffectKeys = append(c.UnknownEffectKeys, UnknownKey{Source: source, Key: key})
		}
	}

	for _, evt := range c.Events {
		record("events/"+evt.ID, evt.Effects.List)
	}
	for _, group := range [][]Scenario{c.Crises, c.Scandals} {
		for _, scenario := range group {
			record("scenarios/"+scenario.ID, scenario.Ongoing.List)
			for _, choice := range scenario.Choices {
				record("scenarios/"+scenario.ID+"/"+choice.ID, choice.Effects.List)
			}
		}
	}
}
