package script

import "github.com/backlot-sim/backlot/internal/catalog"

// RecommendedBudget scales the base budget up for special requirements
// and large casts: Technicolor x1.5, elaborate sets x1.3, stunt or
// animal work x1.2 each, plus ten percent when the total cast tops ten.
func RecommendedBudget(tmpl catalog.ScriptTemplate) float64 {
	budget := tmpl.Budget
	for _, req := range tmpl.SpecialRequirements {
		switch req {
		case "technicolor":
			budget *= 1.5
		case "elaborate_sets":
			budget *= 1.3
		case "stunt_coordination", "animal_handling":
			budget *= 1.2
		}
	}
	if totalCast(tmpl) > 10 {
		budget *= 1.1
	}
	return budget
}

// ProfitProjection estimates gross profit: budget x1.3, scaled by a
// quality tier, the era genre modifier, and a censor-risk penalty.
func ProfitProjection(budget, quality, censorRisk, genreModifier float64) float64 {
	projection := budget * 1.3

	switch {
	case quality > 80:
		projection *= 1.5
	case quality > 70:
		projection *= 1.2
	}

	projection *= genreModifier

	switch {
	case censorRisk > 70:
		projection *= 0.8
	case censorRisk > 50:
		projection *= 0.9
	}

	return projection
}

// AssessRisk buckets a weighted risk score built from budget tier,
// censor risk, special requirements, schedule length, and quality
// deficit.
func AssessRisk(tmpl catalog.ScriptTemplate) Risk {
	score := budgetRiskTier(tmpl.Budget)
	score += tmpl.CensorRisk / 3
	score += float64(len(tmpl.SpecialRequirements)) * 5
	score += shootingDaysTier(tmpl.ShootingDays)
	score += qualityDeficitTier(tmpl.Quality)

	switch {
	case score <= 20:
		return RiskLow
	case score <= 40:
		return RiskMedium
	case score <= 60:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

func budgetRiskTier(budget float64) float64 {
	switch {
	case budget >= 20_000_000:
		return 25
	case budget >= 5_000_000:
		return 20
	case budget >= 1_000_000:
		return 15
	case budget >= 400_000:
		return 10
	default:
		return 5
	}
}

func shootingDaysTier(days int) float64 {
	switch {
	case days > 90:
		return 15
	case days > 60:
		return 10
	case days > 30:
		return 5
	default:
		return 0
	}
}

func qualityDeficitTier(quality float64) float64 {
	switch {
	case quality < 50:
		return 15
	case quality < 60:
		return 10
	case quality < 70:
		return 5
	default:
		return 0
	}
}

// AssessAppeal buckets market appeal: quality, plus a genre-heat bonus,
// minus a censor-risk drag, plus a government-support bonus, minus a
// flat B-picture penalty.
func AssessAppeal(tmpl catalog.ScriptTemplate, genreModifier float64, category string) Appeal {
	score := tmpl.Quality
	score += (genreModifier - 1) * 50
	score -= tmpl.CensorRisk / 4
	if tmpl.GovernmentSupport {
		score += 10
	}
	if category == ultimateFallbackCategory {
		score -= 15
	}

	switch {
	case score < 60:
		return AppealPoor
	case score < 70:
		return AppealFair
	case score < 80:
		return AppealGood
	default:
		return AppealExcellent
	}
}

func totalCast(tmpl catalog.ScriptTemplate) int {
	total := 0
	for role, count := range tmpl.CastRequirements {
		if role == "extras" {
			continue
		}
		total += count
	}
	return total
}
