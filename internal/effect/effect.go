// Package effect defines the closed effect vocabulary shared by every
// catalog and the applier that interprets it.
//
// Catalog data declares effects as named key -> magnitude mappings.
// Decoding maps each known key onto a Kind; unknown keys are kept
// aside and counted through Diagnostics rather than failing the load,
// so a typo in catalog data degrades to a visible no-op instead of a
// crash. Adding a new kind means extending the enum and the switch in
// Applier.Apply, which the compiler and the vocabulary tests keep
// honest.
package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/backlot-sim/backlot/internal/state"
)

// Kind identifies one named game-state mutation.
type Kind int

const (
	// KindUnspecified represents an invalid effect kind value.
	KindUnspecified Kind = iota
	// KindReputation adds to studio reputation, clamped to [0, 100].
	KindReputation
	// KindQualityAll adds to the quality of every active film, clamped
	// to [0, 100] per film.
	KindQualityAll
	// KindQualityLatest adds to the quality of the most recently
	// greenlit film only, clamped to [0, 100].
	KindQualityLatest
	// KindPoliticalRisk adds to the unbounded political risk
	// accumulator.
	KindPoliticalRisk
	// KindHUACRisk adds to the unbounded HUAC risk accumulator.
	KindHUACRisk
	// KindBlacklistRisk adds to the unbounded blacklist risk
	// accumulator.
	KindBlacklistRisk
	// KindMonthlyBurn adds to the monthly burn rate.
	KindMonthlyBurn
	// KindCensorship sets the censorship era flag.
	KindCensorship
	// KindWar sets the wartime era flag.
	KindWar
	// KindHUAC sets the HUAC era flag.
	KindHUAC
	// KindBlacklist sets the blacklist era flag.
	KindBlacklist
	// KindGameComplete sets the game-complete flag.
	KindGameComplete
	// KindCash mutates cash through the ledger collaborator.
	KindCash
	// KindBoxOffice multiplies the projected box office of every
	// active film.
	KindBoxOffice
	// KindProductionDelay adds shooting delay days to every active
	// film.
	KindProductionDelay
	// KindLoan appends a loan record to the session.
	KindLoan
	// KindScandalHidden is a choice-only suppression probability. The
	// applier ignores it; the crisis engine rolls it during choice
	// resolution.
	KindScandalHidden
)

// String returns the catalog key for the kind.
func (k Kind) String() string {
	switch k {
	case KindReputation:
		return "reputation"
	case KindQualityAll, KindQualityLatest:
		return "quality"
	case KindPoliticalRisk:
		return "political_risk"
	case KindHUACRisk:
		return "huac_risk"
	case KindBlacklistRisk:
		return "blacklist_risk"
	case KindMonthlyBurn:
		return "monthly_burn"
	case KindCensorship:
		return "censorship_active"
	case KindWar:
		return "war_active"
	case KindHUAC:
		return "huac_active"
	case KindBlacklist:
		return "blacklist_active"
	case KindGameComplete:
		return "game_complete"
	case KindCash:
		return "cash"
	case KindBoxOffice:
		return "box_office"
	case KindProductionDelay:
		return "production_delay"
	case KindLoan:
		return "loan"
	case KindScandalHidden:
		return "scandal_hidden"
	default:
		return "unspecified"
	}
}

// boolKind reports whether the kind carries a flag rather than a
// magnitude.
func boolKind(k Kind) bool {
	switch k {
	case KindCensorship, KindWar, KindHUAC, KindBlacklist, KindGameComplete:
		return true
	default:
		return false
	}
}

// Effect is one decoded mutation instruction.
type Effect struct {
	Kind  Kind
	Value float64
	Flag  bool
	Loan  *state.Loan
}

// List is an ordered set of effects decoded from one catalog entry,
// plus any keys the vocabulary did not recognize.
type List struct {
	Effects []Effect
	Unknown []string
}

// IsZero reports whether the list carries no effects at all.
func (l List) IsZero() bool {
	return len(l.Effects) == 0 && len(l.Unknown) == 0
}

// Find returns the first effect of the given kind.
func (l List) Find(kind Kind) (Effect, bool) {
	for _, e := range l.Effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

// vocabulary maps catalog keys to effect kinds. Each catalog type gets
// its own vocabulary so the "quality" key can mean all-films for
// historical events but latest-film for crisis choices.
type vocabulary map[string]Kind

var eventVocabulary = vocabulary{
	"reputation":        KindReputation,
	"quality":           KindQualityAll,
	"political_risk":    KindPoliticalRisk,
	"huac_risk":         KindHUACRisk,
	"blacklist_risk":    KindBlacklistRisk,
	"monthly_burn":      KindMonthlyBurn,
	"censorship_active": KindCensorship,
	"war_active":        KindWar,
	"huac_active":       KindHUAC,
	"blacklist_active":  KindBlacklist,
	"game_complete":     KindGameComplete,
	"cash":              KindCash,
	"box_office":        KindBoxOffice,
	"production_delay":  KindProductionDelay,
}

var choiceVocabulary = vocabulary{
	"reputation":        KindReputation,
	"quality":           KindQualityLatest,
	"political_risk":    KindPoliticalRisk,
	"huac_risk":         KindHUACRisk,
	"blacklist_risk":    KindBlacklistRisk,
	"monthly_burn":      KindMonthlyBurn,
	"censorship_active": KindCensorship,
	"war_active":        KindWar,
	"huac_active":       KindHUAC,
	"blacklist_active":  KindBlacklist,
	"game_complete":     KindGameComplete,
	"cash":              KindCash,
	"box_office":        KindBoxOffice,
	"production_delay":  KindProductionDelay,
	"loan":              KindLoan,
	"scandal_hidden":    KindScandalHidden,
}

var ongoingVocabulary = vocabulary{
	"reputation":       KindReputation,
	"quality":          KindQualityLatest,
	"political_risk":   KindPoliticalRisk,
	"huac_risk":        KindHUACRisk,
	"blacklist_risk":   KindBlacklistRisk,
	"monthly_burn":     KindMonthlyBurn,
	"cash":             KindCash,
	"box_office":       KindBoxOffice,
	"production_delay": KindProductionDelay,
}

// EventEffects is the effect vocabulary historical events may declare.
type EventEffects struct{ List }

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *EventEffects) UnmarshalYAML(node *yaml.Node) error {
	list, err := decodeList(node, eventVocabulary)
	if err != nil {
		return err
	}
	e.List = list
	return nil
}

// ChoiceEffects is the effect vocabulary crisis and scandal choices may
// declare.
type ChoiceEffects struct{ List }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ChoiceEffects) UnmarshalYAML(node *yaml.Node) error {
	list, err := decodeList(node, choiceVocabulary)
	if err != nil {
		return err
	}
	c.List = list
	return nil
}

// OngoingEffects is the per-tick effect vocabulary active scenarios may
// declare.
type OngoingEffects struct{ List }

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *OngoingEffects) UnmarshalYAML(node *yaml.Node) error {
	list, err := decodeList(node, ongoingVocabulary)
	if err != nil {
		return err
	}
	o.List = list
	return nil
}

func decodeList(node *yaml.Node, vocab vocabulary) (List, error) {
	if node.Kind != yaml.MappingNode {
		return List{}, fmt.Errorf("effects must be a mapping, got %v", node.Kind)
	}

	var list List
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		kind, ok := vocab[keyNode.Value]
		if !ok {
			list.Unknown = append(list.Unknown, keyNode.Value)
			continue
		}

		eff := Effect{Kind: kind}
		switch {
		case kind == KindLoan:
			var loan state.Loan
			if err := valueNode.Decode(&loan); err != nil {
				return List{}, fmt.Errorf("decode loan effect: %w", err)
			}
			eff.Loan = &loan
		case boolKind(kind):
			if err := valueNode.Decode(&eff.Flag); err != nil {
				return List{}, fmt.Errorf("decode %s effect: %w", keyNode.Value, err)
			}
		default:
			if err := valueNode.Decode(&eff.Value); err != nil {
				return List{}, fmt.Errorf("decode %s effect: %w", keyNode.Value, err)
			}
		}
		list.Effects = append(list.Effects, eff)
	}
	return list, nil
}
