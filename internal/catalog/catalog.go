// Package catalog defines the static content catalogs the engines
// evaluate: historical events, script templates, crises, and scandals.
//
// Catalogs are immutable after load and safe to share across game
// sessions. All content ships as embedded YAML under data/ and is
// decoded once at startup; unknown effect keys inside the data are
// collected for diagnostics instead of failing the load.
package catalog

import (
	"github.com/backlot-sim/backlot/internal/effect"
	"github.com/backlot-sim/backlot/internal/trigger"
)

// EventType classifies a historical event.
type EventType string

const (
	EventMilestone  EventType = "milestone"
	EventCensorship EventType = "censorship"
	EventIndustry   EventType = "industry"
	EventWar        EventType = "war"
	EventPolitical  EventType = "political"
	EventBusiness   EventType = "business"
	EventCultural   EventType = "cultural"
	EventRegulation EventType = "regulation"
	EventTechnology EventType = "technology"
	EventLandmark   EventType = "landmark"
)

// Importance ranks how prominently an event should surface.
type Importance string

const (
	ImportanceFlavor   Importance = "flavor"
	ImportanceMinor    Importance = "minor"
	ImportanceModerate Importance = "moderate"
	ImportanceMajor    Importance = "major"
	ImportanceCritical Importance = "critical"
)

// Event is one date-keyed historical event. Each id triggers at most
// once per game session; the triggered set lives in the event engine,
// not here.
type Event struct {
	ID          string              `yaml:"id"`
	Year        int                 `yaml:"year"`
	Month       int                 `yaml:"month"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Headline    string              `yaml:"headline"`
	Type        EventType           `yaml:"type"`
	Importance  Importance          `yaml:"importance"`
	Effects     effect.EventEffects `yaml:"effects"`
}

// ScriptTemplate is one immutable script blueprint. The script engine
// copies and jitters it into Script instances.
type ScriptTemplate struct {
	Title               string         `yaml:"title"`
	Genre               string         `yaml:"genre"`
	Year                int            `yaml:"year"`
	Budget              float64        `yaml:"budget"`
	Quality             float64        `yaml:"quality"`
	CensorRisk          float64        `yaml:"censor_risk"`
	ShootingDays        int            `yaml:"shooting_days"`
	Themes              []string       `yaml:"themes"`
	CastRequirements    map[string]int `yaml:"cast_requirements"`
	LocationNeeds       []string       `yaml:"location_needs"`
	SpecialRequirements []string       `yaml:"special_requirements"`
	GovernmentSupport   bool           `yaml:"government_support"`
	RiskWarning         string         `yaml:"risk_warning"`
	BudgetCategory      string         `yaml:"budget_category"`
}

// EraWeights holds the independent per-category probability gates for a
// span of years, plus the fallback category when no gate passes.
type EraWeights struct {
	YearMin         int                `yaml:"year_min"`
	YearMax         int                `yaml:"year_max"`
	CategoryChances map[string]float64 `yaml:"category_chances"`
	DefaultCategory string             `yaml:"default_category"`
}

// ScriptCatalog groups templates by era category and carries the
// year-keyed weighting tables.
type ScriptCatalog struct {
	Categories map[string][]ScriptTemplate `yaml:"categories"`
	EraWeights []EraWeights                `yaml:"era_weights"`
	// DefaultWeights applies when the year falls outside every
	// EraWeights range.
	DefaultWeights EraWeights `yaml:"default_weights"`
}

// WeightsForYear returns the weighting table covering the year, falling
// back to DefaultWeights outside the explicit ranges.
func (c ScriptCatalog) WeightsForYear(year int) EraWeights {
	for _, w := range c.EraWeights {
		if year >= w.YearMin && year <= w.YearMax {
			return w
		}
	}
	return c.DefaultWeights
}

// SubjectKind names what a scenario's eligible-subject query selects.
type SubjectKind string

const (
	SubjectTalent SubjectKind = "talent"
	SubjectFilm   SubjectKind = "film"
)

// SubjectRequirements narrows which contracted talent or active films
// qualify as scenario subjects. An empty eligible set makes the
// scenario ineligible regardless of its guard.
type SubjectRequirements struct {
	Kind          SubjectKind `yaml:"kind"`
	MinStarPower  float64     `yaml:"min_star_power"`
	Gender        string      `yaml:"gender"`
	InProduction  bool        `yaml:"in_production"`
	AffectedCount int         `yaml:"affected_count"`
}

// Severity ranks scandal fallout.
type Severity string

const (
	SeverityMinor        Severity = "minor"
	SeverityModerate     Severity = "moderate"
	SeverityMajor        Severity = "major"
	SeverityCareerEnding Severity = "career-ending"
)

// Choice is one player-facing branch of a scenario.
type Choice struct {
	ID             string               `yaml:"id"`
	Text           string               `yaml:"text"`
	Description    string               `yaml:"description"`
	Effects        effect.ChoiceEffects `yaml:"effects"`
	RequiresCash   float64              `yaml:"requires_cash"`
	LongTermEffect string               `yaml:"long_term_effect"`
}

// Scenario is one crisis or scandal definition.
type Scenario struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Severity    Severity            `yaml:"severity"`
	Trigger     trigger.Guard       `yaml:"trigger"`
	Subject     SubjectRequirements `yaml:"subject"`
	// DurationMin and DurationMax bound the instance duration in
	// ticks: weeks for scandals, months for crises.
	DurationMin int `yaml:"duration_min"`
	DurationMax int `yaml:"duration_max"`
	// BlacklistRisk above 70 sends unresolved career-ending scandal
	// subjects to the in-fiction blacklist.
	BlacklistRisk float64               `yaml:"blacklist_risk"`
	Ongoing       effect.OngoingEffects `yaml:"ongoing"`
	Headlines     []string              `yaml:"headlines"`
	Gossip        []string              `yaml:"gossip"`
	Choices       []Choice              `yaml:"choices"`
}

// TriggerGuard implements trigger.Entry.
func (s Scenario) TriggerGuard() trigger.Guard {
	return s.Trigger
}
