// Package trigger evaluates catalog guard conditions against game
// state.
//
// A Guard is an ordered conjunction: every declared condition must hold
// for the entry to be eligible. The probabilistic condition is re-drawn
// on every evaluation tick, so an entry skipped this tick gets a fresh
// independent draw next tick. Guards that reference collections treat
// absence as empty and never fail on it.
package trigger

import (
	"math/rand"

	"github.com/backlot-sim/backlot/internal/state"
)

// Guard is the declarative trigger condition attached to a crisis or
// scandal scenario.
type Guard struct {
	// Probability gates the entry on a uniform draw in [0, 1). Zero
	// means the entry never fires probabilistically; values >= 1 always
	// pass.
	Probability float64 `yaml:"probability"`

	// YearMin and YearMax bound the calendar year, inclusive. Zero
	// means unbounded on that side.
	YearMin int `yaml:"year_min"`
	YearMax int `yaml:"year_max"`

	RequiresCensorship *bool `yaml:"requires_censorship"`
	RequiresWar        *bool `yaml:"requires_war"`
	RequiresHUAC       *bool `yaml:"requires_huac"`
	RequiresBlacklist  *bool `yaml:"requires_blacklist"`

	RequiresActiveFilm    bool `yaml:"requires_active_film"`
	RequiresCompletedFilm bool `yaml:"requires_completed_film"`

	// CashThreshold makes the entry eligible only while cash is at or
	// below the threshold.
	CashThreshold *float64 `yaml:"cash_threshold"`
	// MinReputation makes the entry eligible only while reputation is
	// at or above the threshold.
	MinReputation *float64 `yaml:"min_reputation"`
}

// Conditions reports whether every non-probabilistic guard condition
// holds for the given state.
func (g Guard) Conditions(gs *state.GameState) bool {
	if gs == nil {
		return false
	}

	year := gs.CurrentDate.Year
	if g.YearMin != 0 && year < g.YearMin {
		return false
	}
	if g.YearMax != 0 && year > g.YearMax {
		return false
	}

	if g.RequiresCensorship != nil && gs.CensorshipActive != *g.RequiresCensorship {
		return false
	}
	if g.RequiresWar != nil && gs.WarActive != *g.RequiresWar {
		return false
	}
	if g.RequiresHUAC != nil && gs.HUACActive != *g.RequiresHUAC {
		return false
	}
	if g.RequiresBlacklist != nil && gs.BlacklistActive != *g.RequiresBlacklist {
		return false
	}

	if g.RequiresActiveFilm && len(gs.ActiveFilms) == 0 {
		return false
	}
	if g.RequiresCompletedFilm && len(gs.CompletedFilms) == 0 {
		return false
	}

	if g.CashThreshold != nil && gs.Cash > *g.CashThreshold {
		return false
	}
	if g.MinReputation != nil && gs.Reputation < *g.MinReputation {
		return false
	}

	return true
}

// Eligible reports whether the full guard holds, including the
// probability draw.
func (g Guard) Eligible(gs *state.GameState, rng *rand.Rand) bool {
	if !g.Conditions(gs) {
		return false
	}
	return rng.Float64() < g.Probability
}

// Entry is any catalog entry carrying a trigger guard.
type Entry interface {
	TriggerGuard() Guard
}

// FirstMatch walks entries in declaration order and returns the first
// whose full guard (conditions and probability draw) holds. This is the
// crisis catalog's single-trigger-per-tick policy.
func FirstMatch[T Entry](entries []T, gs *state.GameState, rng *rand.Rand) (T, bool) {
	for _, entry := range entries {
		if entry.TriggerGuard().Eligible(gs, rng) {
			return entry, true
		}
	}
	var zero T
	return zero, false
}

// WeightedPick gathers entries whose guard conditions hold and picks
// one at random, weighting each by its probability field treated as a
// relative weight. This is the scandal catalog's policy; it differs
// deliberately from FirstMatch.
func WeightedPick[T Entry](entries []T, gs *state.GameState, rng *rand.Rand) (T, bool) {
	var zero T

	var eligible []T
	total := 0.0
	for _, entry := range entries {
		guard := entry.TriggerGuard()
		if guard.Probability <= 0 {
			continue
		}
		if !guard.Conditions(gs) {
			continue
		}
		eligible = append(eligible, entry)
		total += guard.Probability
	}
	if len(eligible) == 0 || total <= 0 {
		return zero, false
	}

	draw := rng.Float64() * total
	for _, entry := range eligible {
		draw -= entry.TriggerGuard().Probability
		if draw < 0 {
			return entry, true
		}
	}
	return eligible[len(eligible)-1], true
}
