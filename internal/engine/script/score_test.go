package script

import (
	"math"
	"testing"

	"github.com/backlot-sim/backlot/internal/catalog"
)

func TestProfitProjection(t *testing.T) {
	tests := []struct {
		name          string
		budget        float64
		quality       float64
		censorRisk    float64
		genreModifier float64
		want          float64
	}{
		{
			// 100000 x 1.3 x 1.5 (quality > 80) x 1.1 x 0.8 (risk > 70).
			name:          "high quality hot genre risky",
			budget:        100000,
			quality:       85,
			censorRisk:    80,
			genreModifier: 1.1,
			want:          171600,
		},
		{
			name:          "plain midrange",
			budget:        100000,
			quality:       65,
			censorRisk:    40,
			genreModifier: 1.0,
			want:          130000,
		},
		{
			name:          "quality tier boundary 70 is exclusive",
			budget:        100000,
			quality:       70,
			censorRisk:    0,
			genreModifier: 1.0,
			want:          130000,
		},
		{
			name:          "quality just above 70",
			budget:        100000,
			quality:       71,
			censorRisk:    0,
			genreModifier: 1.0,
			want:          156000,
		},
		{
			name:          "censor tier boundary 50 is exclusive",
			budget:        100000,
			quality:       50,
			censorRisk:    50,
			genreModifier: 1.0,
			want:          130000,
		},
		{
			name:          "moderate censor drag",
			budget:        100000,
			quality:       50,
			censorRisk:    60,
			genreModifier: 1.0,
			want:          117000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfitProjection(tt.budget, tt.quality, tt.censorRisk, tt.genreModifier)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ProfitProjection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendedBudget(t *testing.T) {
	tests := []struct {
		name string
		tmpl catalog.ScriptTemplate
		want float64
	}{
		{
			name: "no multipliers",
			tmpl: catalog.ScriptTemplate{Budget: 100000},
			want: 100000,
		},
		{
			name: "technicolor",
			tmpl: catalog.ScriptTemplate{
				Budget:              100000,
				SpecialRequirements: []string{"technicolor"},
			},
			want: 150000,
		},
		{
			name: "stacked requirements",
			tmpl: catalog.ScriptTemplate{
				Budget:              100000,
				SpecialRequirements: []string{"technicolor", "elaborate_sets", "stunt_coordination"},
			},
			want: 234000,
		},
		{
			name: "large cast surcharge",
			tmpl: catalog.ScriptTemplate{
				Budget:           100000,
				CastRequirements: map[string]int{"lead": 3, "supporting": 8},
			},
			want: 110000,
		},
		{
			name: "extras do not count toward cast",
			tmpl: catalog.ScriptTemplate{
				Budget:           100000,
				CastRequirements: map[string]int{"lead": 2, "extras": 200},
			},
			want: 100000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendedBudget(tt.tmpl)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("RecommendedBudget() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name string
		tmpl catalog.ScriptTemplate
		want Risk
	}{
		{
			// 5 (small budget) + 0 + 0 + 0 + 0 = 5.
			name: "cheap safe quickie",
			tmpl: catalog.ScriptTemplate{Budget: 100000, Quality: 75, ShootingDays: 20},
			want: RiskLow,
		},
		{
			// 10 + 60/3 + 0 + 5 + 5 = 40, inclusive medium ceiling.
			name: "midrange picture at medium ceiling",
			tmpl: catalog.ScriptTemplate{Budget: 500000, Quality: 65, CensorRisk: 60, ShootingDays: 45},
			want: RiskMedium,
		},
		{
			// 20 + 30/3 + 10 + 10 + 0 = 50.
			name: "big production",
			tmpl: catalog.ScriptTemplate{
				Budget:              6_000_000,
				Quality:             80,
				CensorRisk:          30,
				ShootingDays:        75,
				SpecialRequirements: []string{"technicolor", "elaborate_sets"},
			},
			want: RiskHigh,
		},
		{
			// 25 + 90/3 + 15 + 15 + 15 = 115.
			name: "doomed epic",
			tmpl: catalog.ScriptTemplate{
				Budget:              25_000_000,
				Quality:             45,
				CensorRisk:          90,
				ShootingDays:        120,
				SpecialRequirements: []string{"technicolor", "elaborate_sets", "stunt_coordination"},
			},
			want: RiskExtreme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessRisk(tt.tmpl); got != tt.want {
				t.Errorf("AssessRisk() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAssessAppeal(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     catalog.ScriptTemplate
		modifier float64
		category string
		want     Appeal
	}{
		{
			// 85 + 0.1*50 - 0 = 90.
			name:     "hot prestige picture",
			tmpl:     catalog.ScriptTemplate{Quality: 85},
			modifier: 1.1,
			category: "prestige_drama",
			want:     AppealExcellent,
		},
		{
			// 65 + 0 - 40/4 = 55.
			name:     "risky midrange",
			tmpl:     catalog.ScriptTemplate{Quality: 65, CensorRisk: 40},
			modifier: 1.0,
			category: "comedy",
			want:     AppealPoor,
		},
		{
			// 60 + 0 - 0 + 10 = 70, inclusive good floor.
			name:     "government support lift",
			tmpl:     catalog.ScriptTemplate{Quality: 60, GovernmentSupport: true},
			modifier: 1.0,
			category: "war_film",
			want:     AppealGood,
		},
		{
			// 80 - 15 = 65.
			name:     "b picture penalty",
			tmpl:     catalog.ScriptTemplate{Quality: 80},
			modifier: 1.0,
			category: "b_movie",
			want:     AppealFair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessAppeal(tt.tmpl, tt.modifier, tt.category); got != tt.want {
				t.Errorf("AssessAppeal() = %s, want %s", got, tt.want)
			}
		})
	}
}
