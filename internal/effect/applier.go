package effect

import (
	"github.com/backlot-sim/backlot/internal/present"
	"github.com/backlot-sim/backlot/internal/state"
)

// Diagnostics receives reports about effect keys the vocabulary did not
// recognize. Catalog authors use the channel to catch typos; the engine
// never fails on them.
type Diagnostics interface {
	UnknownEffectKey(source, key string)
}

// NopDiagnostics discards diagnostic reports.
type NopDiagnostics struct{}

// UnknownEffectKey implements Diagnostics.
func (NopDiagnostics) UnknownEffectKey(string, string) {}

// CountingDiagnostics tallies unknown keys per source. Zero value is
// ready to use.
type CountingDiagnostics struct {
	Counts map[string]int
}

// UnknownEffectKey implements Diagnostics.
func (d *CountingDiagnostics) UnknownEffectKey(source, key string) {
	if d.Counts == nil {
		d.Counts = make(map[string]int)
	}
	d.Counts[source+"/"+key]++
}

// Applier interprets effect lists against a game state. Cash mutations
// route through the ledger collaborator so external observers stay
// consistent.
type Applier struct {
	Ledger      present.Ledger
	Diagnostics Diagnostics
}

// Apply performs every mutation in the list against gs. The source
// string identifies the catalog entry for diagnostics. Application is
// synchronous and single threaded; from the caller's perspective an
// entry's effects land atomically.
func (a Applier) Apply(list List, gs *state.GameState, source string) {
	for _, key := range list.Unknown {
		a.reportUnknown(source, key)
	}

	for _, eff := range list.Effects {
		switch eff.Kind {
		case KindReputation:
			gs.Reputation = state.Clamp(gs.Reputation+eff.Value, 0, 100)
		case KindQualityAll:
			for _, film := range gs.ActiveFilms {
				film.Quality = state.Clamp(film.Quality+eff.Value, 0, 100)
			}
		case KindQualityLatest:
			if film := gs.LatestFilm(); film != nil {
				film.Quality = state.Clamp(film.Quality+eff.Value, 0, 100)
			}
		case KindPoliticalRisk:
			gs.PoliticalRisk += eff.Value
		case KindHUACRisk:
			gs.HUACRisk += eff.Value
		case KindBlacklistRisk:
			gs.BlacklistRisk += eff.Value
		case KindMonthlyBurn:
			gs.MonthlyBurn += eff.Value
		case KindCensorship:
			gs.CensorshipActive = eff.Flag
		case KindWar:
			gs.WarActive = eff.Flag
		case KindHUAC:
			gs.HUACActive = eff.Flag
		case KindBlacklist:
			gs.BlacklistActive = eff.Flag
		case KindGameComplete:
			gs.GameComplete = eff.Flag
		case KindCash:
			if a.Ledger != nil {
				a.Ledger.MutateCash(eff.Value)
			}
		case KindBoxOffice:
			for _, film := range gs.ActiveFilms {
				film.BoxOffice *= eff.Value
			}
		case KindProductionDelay:
			for _, film := range gs.ActiveFilms {
				film.DelayDays += int(eff.Value)
			}
		case KindLoan:
			if eff.Loan != nil {
				gs.Loans = append(gs.Loans, *eff.Loan)
			}
		case KindScandalHidden:
			// Interpreted by the crisis engine during choice
			// resolution, never as a state mutation.
		default:
			a.reportUnknown(source, eff.Kind.String())
		}
	}
}

func (a Applier) reportUnknown(source, key string) {
	if a.Diagnostics != nil {
		a.Diagnostics.UnknownEffectKey(source, key)
	}
}
