package scoring

import (
	"errors"
	"testing"

	"github.com/nao1215/trustguard/internal/model"
)

func allRules() model.RuleFindings {
	return model.RuleFindings{
		DomainMismatch:     true,
		MessagingApps:      true,
		HiddenFees:         true,
		LowHoursHighPay:    true,
		VagueDescription:   true,
		MissingManagerName: true,
	}
}

func TestCombinerCombine(t *testing.T) {
	t.Parallel()

	c := NewCombiner(nil)

	tests := []struct {
		name      string
		rules     model.RuleFindings
		semantic  model.SemanticFinding
		domain    int
		wantRisk  int
		wantRule  int
		wantLevel model.RiskLevel
	}{
		{
			name:      "zero case",
			wantRisk:  0,
			wantLevel: model.RiskLevelLikelySafe,
		},
		{
			name:      "everything true clamps at 100",
			rules:     allRules(),
			semantic:  model.SemanticFinding{LLMScore: 80},
			wantRisk:  100,
			wantRule:  125,
			wantLevel: model.RiskLevelLikelyScam,
		},
		{
			name:      "hidden fees with medium model score",
			rules:     model.RuleFindings{HiddenFees: true},
			semantic:  model.SemanticFinding{LLMScore: 50},
			wantRisk:  90,
			wantRule:  40,
			wantLevel: model.RiskLevelLikelyScam,
		},
		{
			name:      "phishing adds its weight to the rule score",
			semantic:  model.SemanticFinding{PhishingAttempt: true},
			wantRisk:  100,
			wantRule:  100,
			wantLevel: model.RiskLevelLikelyScam,
		},
		{
			name:      "domain deduction alone",
			domain:    30,
			wantRisk:  30,
			wantLevel: model.RiskLevelSuspicious,
		},
		{
			name:      "just below suspicious",
			rules:     model.RuleFindings{VagueDescription: true, MissingManagerName: true},
			semantic:  model.SemanticFinding{LLMScore: 14},
			wantRisk:  29,
			wantRule:  15,
			wantLevel: model.RiskLevelLikelySafe,
		},
		{
			name:      "exactly likely scam",
			rules:     model.RuleFindings{HiddenFees: true, LowHoursHighPay: true},
			wantRisk:  60,
			wantRule:  60,
			wantLevel: model.RiskLevelLikelyScam,
		},
		{
			name:      "out of range model score is clamped",
			semantic:  model.SemanticFinding{LLMScore: -20},
			domain:    -5,
			wantRisk:  0,
			wantLevel: model.RiskLevelLikelySafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Combine(tt.rules, tt.semantic, tt.domain)
			if got.RiskScore != tt.wantRisk {
				t.Errorf("RiskScore = %d, want %d", got.RiskScore, tt.wantRisk)
			}
			if got.RuleScore != tt.wantRule {
				t.Errorf("RuleScore = %d, want %d", got.RuleScore, tt.wantRule)
			}
			if got.TrustScore+got.RiskScore != 100 {
				t.Errorf("TrustScore + RiskScore = %d, want 100", got.TrustScore+got.RiskScore)
			}
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("RiskLevel = %v, want %v", got.RiskLevel, tt.wantLevel)
			}
		})
	}
}

func TestCombinerIsPure(t *testing.T) {
	t.Parallel()

	c := NewCombiner(nil)
	rules := model.RuleFindings{MessagingApps: true}
	semantic := model.SemanticFinding{LLMScore: 33, VagueRole: true}

	first := c.Combine(rules, semantic, 20)
	second := c.Combine(rules, semantic, 20)
	if first != second {
		t.Errorf("Combine is not deterministic: %+v != %+v", first, second)
	}
}

func TestCombinerMonotonic(t *testing.T) {
	t.Parallel()

	c := NewCombiner(nil)
	semantic := model.SemanticFinding{LLMScore: 10}
	base := c.Combine(model.RuleFindings{}, semantic, 0)

	setters := map[string]func(*model.RuleFindings){
		model.KeyDomainMismatch:     func(r *model.RuleFindings) { r.DomainMismatch = true },
		model.KeyMessagingApps:      func(r *model.RuleFindings) { r.MessagingApps = true },
		model.KeyHiddenFees:         func(r *model.RuleFindings) { r.HiddenFees = true },
		model.KeyLowHoursHighPay:    func(r *model.RuleFindings) { r.LowHoursHighPay = true },
		model.KeyVagueDescription:   func(r *model.RuleFindings) { r.VagueDescription = true },
		model.KeyMissingManagerName: func(r *model.RuleFindings) { r.MissingManagerName = true },
	}

	for key, set := range setters {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			var rules model.RuleFindings
			set(&rules)
			got := c.Combine(rules, semantic, 0)
			if got.RiskScore < base.RiskScore {
				t.Errorf("flipping %s lowered risk from %d to %d", key, base.RiskScore, got.RiskScore)
			}
		})
	}

	t.Run("semantic flags never lower risk", func(t *testing.T) {
		t.Parallel()

		flagged := semantic
		flagged.HiddenFees = true
		flagged.CompanyUnclear = true
		if got := c.Combine(model.RuleFindings{}, flagged, 0); got.RiskScore < base.RiskScore {
			t.Errorf("semantic flags lowered risk from %d to %d", base.RiskScore, got.RiskScore)
		}
	})
}

func TestCombinerCustomWeights(t *testing.T) {
	t.Parallel()

	w, err := DefaultWeights().WithOverrides(map[string]int{model.KeyMissingManagerName: 30})
	if err != nil {
		t.Fatalf("WithOverrides() error = %v", err)
	}
	c := NewCombiner(w)

	got := c.Combine(model.RuleFindings{MissingManagerName: true}, model.SemanticFinding{}, 0)
	if got.RiskScore != 30 {
		t.Errorf("RiskScore = %d, want 30", got.RiskScore)
	}
	if got.RiskLevel != model.RiskLevelSuspicious {
		t.Errorf("RiskLevel = %v, want Suspicious", got.RiskLevel)
	}

	// the combiner keeps its own copy
	w[model.KeyMissingManagerName] = 0
	got = c.Combine(model.RuleFindings{MissingManagerName: true}, model.SemanticFinding{}, 0)
	if got.RiskScore != 30 {
		t.Errorf("RiskScore after mutating the input table = %d, want 30", got.RiskScore)
	}
}

func TestWeightsWithOverrides(t *testing.T) {
	t.Parallel()

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := DefaultWeights().WithOverrides(map[string]int{"typo": 1})
		if !errors.Is(err, ErrUnknownWeight) {
			t.Errorf("expected ErrUnknownWeight, got %v", err)
		}
	})

	t.Run("negative weight", func(t *testing.T) {
		t.Parallel()
		_, err := DefaultWeights().WithOverrides(map[string]int{model.KeyHiddenFees: -1})
		if !errors.Is(err, ErrNegativeWeight) {
			t.Errorf("expected ErrNegativeWeight, got %v", err)
		}
	})

	t.Run("defaults are untouched", func(t *testing.T) {
		t.Parallel()
		base := DefaultWeights()
		if _, err := base.WithOverrides(map[string]int{model.KeyHiddenFees: 1}); err != nil {
			t.Fatalf("WithOverrides() error = %v", err)
		}
		if base[model.KeyHiddenFees] != 40 {
			t.Errorf("base table modified: %d", base[model.KeyHiddenFees])
		}
	})
}

func TestCombinerBlend(t *testing.T) {
	t.Parallel()

	c := NewCombiner(nil)

	tests := []struct {
		name         string
		jobTrust     int
		companyTrust int
		want         int
		wantLabel    model.VerifiedLabel
	}{
		{"reference case", 80, 40, 64, model.VerifiedMediumRisk},
		{"both perfect", 100, 100, 100, model.VerifiedLowRisk},
		{"both zero", 0, 0, 0, model.VerifiedCriticalRisk},
		{"fraction rounds to nearest", 51, 50, 51, model.VerifiedMediumRisk},
		{"exactly seventy", 70, 70, 70, model.VerifiedLowRisk},
		{"high risk band", 40, 30, 36, model.VerifiedHighRisk},
		{"out of range company is clamped", 50, 150, 70, model.VerifiedLowRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := model.ScoreResult{TrustScore: tt.jobTrust, RiskScore: 100 - tt.jobTrust}
			got := c.Blend(job, tt.companyTrust)
			if got.CombinedTrustScore != tt.want {
				t.Errorf("CombinedTrustScore = %d, want %d", got.CombinedTrustScore, tt.want)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %v, want %v", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestRecommendedAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		score    model.ScoreResult
		combined *model.CombinedResult
		want     string
	}{
		{"single entity above threshold", model.ScoreResult{TrustScore: 61}, nil, ActionProceed},
		{"single entity at threshold", model.ScoreResult{TrustScore: 60}, nil, ActionWarn},
		{"blended at threshold", model.ScoreResult{TrustScore: 10}, &model.CombinedResult{CombinedTrustScore: 60}, ActionProceed},
		{"blended below threshold", model.ScoreResult{TrustScore: 90}, &model.CombinedResult{CombinedTrustScore: 59}, ActionWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RecommendedAction(tt.score, tt.combined); got != tt.want {
				t.Errorf("RecommendedAction() = %q, want %q", got, tt.want)
			}
		})
	}
}
