// Package script implements the script generation engine: era-weighted
// category selection, template variation, and the derived scores that
// back greenlight decisions.
package script

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/backlot-sim/backlot/internal/catalog"
	"github.com/backlot-sim/backlot/internal/era"
	"github.com/backlot-sim/backlot/internal/random"
	"github.com/backlot-sim/backlot/internal/state"
)

// ultimateFallbackCategory is the last resort when neither the gate
// rolls nor the era default yield a category with templates. B pictures
// exist in every era.
const ultimateFallbackCategory = "b_movie"

// optionTermMonths is how long a script option runs before expiring.
const optionTermMonths = 3

var (
	// ErrUnknownScript indicates a script id the engine never issued.
	ErrUnknownScript = errors.New("unknown script id")
	// ErrScriptUnavailable indicates a script no longer open to option
	// or greenlight.
	ErrScriptUnavailable = errors.New("script is not available")
)

// Risk buckets a script's production risk.
type Risk string

const (
	RiskLow     Risk = "LOW"
	RiskMedium  Risk = "MEDIUM"
	RiskHigh    Risk = "HIGH"
	RiskExtreme Risk = "EXTREME"
)

// Appeal buckets a script's projected market appeal.
type Appeal string

const (
	AppealPoor      Appeal = "POOR"
	AppealFair      Appeal = "FAIR"
	AppealGood      Appeal = "GOOD"
	AppealExcellent Appeal = "EXCELLENT"
)

// Script is a generated, mutable script instance derived from a catalog
// template.
type Script struct {
	ID       string
	Category string
	catalog.ScriptTemplate

	RecommendedBudget float64
	ProfitProjection  float64
	RiskAssessment    Risk
	MarketAppeal      Appeal

	Available    bool
	Optioned     bool
	OptionDate   state.Date
	OptionExpiry state.Date
}

// Engine generates and tracks script instances for one game session.
type Engine struct {
	catalog catalog.ScriptCatalog
	eras    era.Table
	rng     *rand.Rand
	scripts map[string]*Script
	newID   func() (string, error)
}

// New creates a script engine. The rng must be the session's shared
// generator so runs stay reproducible from one seed.
func New(cat catalog.ScriptCatalog, eras era.Table, rng *rand.Rand) *Engine {
	return &Engine{
		catalog: cat,
		eras:    eras,
		rng:     rng,
		scripts: make(map[string]*Script),
		newID:   state.NewID,
	}
}

// GenerateMonthly produces this month's candidate pool: two to four
// scripts selected by the era's category gates. An empty result is
// valid when every fallback pool is also empty.
func (e *Engine) GenerateMonthly(gs *state.GameState) []*Script {
	if gs == nil {
		return nil
	}
	year := gs.CurrentDate.Year

	slots := 2 + e.rng.Intn(3)
	scripts := make([]*Script, 0, slots)
	for i := 0; i < slots; i++ {
		script := e.generateOne(year)
		if script == nil {
			continue
		}
		scripts = append(scripts, script)
	}
	return scripts
}

// generateOne runs the full selection chain for a single slot.
func (e *Engine) generateOne(year int) *Script {
	category := e.pickCategory(year)
	if category == "" {
		return nil
	}

	tmpl, ok := e.pickTemplate(category, year)
	if !ok {
		return nil
	}

	variation := generateVariation(tmpl, year, e.eras, e.rng)
	id, err := e.newID()
	if err != nil {
		return nil
	}

	script := e.enrich(variation, category, year)
	script.ID = id
	script.Available = true
	e.scripts[id] = script
	return script
}

// pickCategory rolls every category gate for the year independently and
// picks uniformly among those that pass. The B-movie gate is always
// rolled, since that category exists in every era. When nothing passes,
// selection falls back to the era default, then to the hardcoded
// ultimate fallback.
func (e *Engine) pickCategory(year int) string {
	weights := e.catalog.WeightsForYear(year)

	// Gates roll in sorted category order. Map iteration order would
	// consume rng draws differently on every run and break seed
	// reproducibility.
	categories := make([]string, 0, len(weights.CategoryChances))
	for category := range weights.CategoryChances {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var available []string
	bMovieRolled := false
	for _, category := range categories {
		if category == ultimateFallbackCategory {
			bMovieRolled = true
		}
		if len(e.catalog.Categories[category]) == 0 {
			continue
		}
		if e.rng.Float64() < weights.CategoryChances[category] {
			available = append(available, category)
		}
	}
	if !bMovieRolled && len(e.catalog.Categories[ultimateFallbackCategory]) > 0 {
		if e.rng.Float64() < 0.3 {
			available = append(available, ultimateFallbackCategory)
		}
	}

	if len(available) > 0 {
		return available[e.rng.Intn(len(available))]
	}
	if len(e.catalog.Categories[weights.DefaultCategory]) > 0 {
		return weights.DefaultCategory
	}
	if len(e.catalog.Categories[ultimateFallbackCategory]) > 0 {
		return ultimateFallbackCategory
	}
	return ""
}

// pickTemplate selects uniformly from the category's templates within
// the year-proximity window, falling back to the full category list
// when the window is empty. The window widens after 1950 because later
// era content is sparser.
func (e *Engine) pickTemplate(category string, year int) (catalog.ScriptTemplate, bool) {
	templates := e.catalog.Categories[category]
	if len(templates) == 0 {
		return catalog.ScriptTemplate{}, false
	}

	window := 2
	if year >= 1950 {
		window = 5
	}

	var near []catalog.ScriptTemplate
	for _, tmpl := range templates {
		if tmpl.Year >= year-window && tmpl.Year <= year+window {
			near = append(near, tmpl)
		}
	}
	if len(near) == 0 {
		near = templates
	}
	return near[e.rng.Intn(len(near))], true
}

// generateVariation copies the template into the given year and jitters
// its numbers: budget by a uniform factor in [0.8, 1.2], quality by a
// uniform offset in [-15, +15] clamped to [30, 95], and censor risk by
// the era adjustment clamped to [5, 95].
func generateVariation(tmpl catalog.ScriptTemplate, year int, eras era.Table, rng *rand.Rand) catalog.ScriptTemplate {
	variation := tmpl
	variation.Year = year
	variation.Budget = tmpl.Budget * (0.8 + rng.Float64()*0.4)
	variation.Quality = state.Clamp(tmpl.Quality+(rng.Float64()*30-15), 30, 95)
	variation.CensorRisk = state.Clamp(tmpl.CensorRisk+eras.CensorAdjustment(year), 5, 95)
	return variation
}

// GenerateForYear is the deterministic form of variation generation:
// for a fixed seed it is a pure function of (template, year, seed).
func GenerateForYear(tmpl catalog.ScriptTemplate, year int, seed int64, eras era.Table) catalog.ScriptTemplate {
	return generateVariation(tmpl, year, eras, random.NewRand(seed))
}

// enrich computes the derived decision-support fields.
func (e *Engine) enrich(tmpl catalog.ScriptTemplate, category string, year int) *Script {
	genreModifier := e.eras.GenreModifier(tmpl.Genre, year)
	return &Script{
		Category:          category,
		ScriptTemplate:    tmpl,
		RecommendedBudget: RecommendedBudget(tmpl),
		ProfitProjection:  ProfitProjection(tmpl.Budget, tmpl.Quality, tmpl.CensorRisk, genreModifier),
		RiskAssessment:    AssessRisk(tmpl),
		MarketAppeal:      AssessAppeal(tmpl, genreModifier, category),
	}
}

// Lookup returns a generated script by id.
func (e *Engine) Lookup(id string) (*Script, error) {
	script, ok := e.scripts[id]
	if !ok {
		return nil, ErrUnknownScript
	}
	return script, nil
}

// Option places a script under option until the expiry date.
func (e *Engine) Option(id string, today state.Date) error {
	script, err := e.Lookup(id)
	if err != nil {
		return err
	}
	if !script.Available {
		return ErrScriptUnavailable
	}
	script.Optioned = true
	script.OptionDate = today
	expiry := today
	for i := 0; i < optionTermMonths; i++ {
		expiry = expiry.Next()
	}
	script.OptionExpiry = expiry
	return nil
}

// ExpireOptions releases every option whose expiry has passed.
func (e *Engine) ExpireOptions(today state.Date) {
	for _, script := range e.scripts {
		if script.Optioned && script.OptionExpiry.Before(today) {
			script.Optioned = false
			script.OptionDate = state.Date{}
			script.OptionExpiry = state.Date{}
		}
	}
}

// Take removes a script from circulation for greenlighting. The caller
// hands it to the production collaborator.
func (e *Engine) Take(id string) (*Script, error) {
	script, err := e.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !script.Available {
		return nil, ErrScriptUnavailable
	}
	script.Available = false
	script.Optioned = false
	return script, nil
}

// Snapshot returns all issued scripts, for persistence.
func (e *Engine) Snapshot() []*Script {
	scripts := make([]*Script, 0, len(e.scripts))
	for _, script := range e.scripts {
		scripts = append(scripts, script)
	}
	return scripts
}

// Restore reloads issued scripts from a snapshot.
func (e *Engine) Restore(scripts []*Script) {
	for _, script := range scripts {
		e.scripts[script.ID] = script
	}
}
