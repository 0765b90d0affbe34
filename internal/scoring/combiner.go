package scoring

import (
	"maps"

	"github.com/nao1215/trustguard/internal/model"
)

// Score bounds and label thresholds.
const (
	MaxScore = 100

	likelyScamThreshold = 60
	suspiciousThreshold = 30

	lowRiskThreshold    = 70
	mediumRiskThreshold = 50
	highRiskThreshold   = 30

	// proceedThreshold is the trust score at which applicants are told
	// they may proceed.
	proceedThreshold = 60

	jobBlendWeight     = 6
	companyBlendWeight = 4
	blendDivisor       = jobBlendWeight + companyBlendWeight
)

// Recommended actions.
const (
	ActionProceed = "Proceed with caution."
	ActionWarn    = "Do NOT pay or share personal details."
)

// Combiner turns findings into scores. It only reads its weight table,
// so a single Combiner can serve concurrent analyses.
type Combiner struct {
	weights Weights
}

// NewCombiner creates a Combiner with the given weights.
// A nil table selects DefaultWeights.
func NewCombiner(weights Weights) *Combiner {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Combiner{weights: maps.Clone(weights)}
}

// Combine scores a single job posting.
func (c *Combiner) Combine(rules model.RuleFindings, semantic model.SemanticFinding, domainDeduction int) model.ScoreResult {
	ruleScore := 0
	for key, hit := range rules.Flags() {
		if hit {
			ruleScore += c.weights[key]
		}
	}
	if semantic.PhishingAttempt {
		ruleScore += c.weights[model.KeyPhishingAttempt]
	}

	llmScore := clamp(semantic.LLMScore)
	domainDeduction = max(domainDeduction, 0)

	risk := min(ruleScore+llmScore+domainDeduction, MaxScore)
	return model.ScoreResult{
		RuleScore:       ruleScore,
		LLMScore:        llmScore,
		DomainDeduction: domainDeduction,
		RiskScore:       risk,
		TrustScore:      MaxScore - risk,
		RiskLevel:       RiskLevelFor(risk),
	}
}

// Blend mixes a job score with its company's trust score at 60/40.
// The result is rounded to the nearest integer.
func (c *Combiner) Blend(job model.ScoreResult, companyTrust int) model.CombinedResult {
	jobTrust := clamp(job.TrustScore)
	companyTrust = clamp(companyTrust)

	combined := (jobTrust*jobBlendWeight + companyTrust*companyBlendWeight + blendDivisor/2) / blendDivisor
	combined = clamp(combined)

	return model.CombinedResult{
		JobTrustScore:      jobTrust,
		CompanyTrustScore:  companyTrust,
		CombinedTrustScore: combined,
		Label:              VerifiedLabelFor(combined),
	}
}

// RiskLevelFor labels a single-entity risk score.
func RiskLevelFor(risk int) model.RiskLevel {
	switch {
	case risk >= likelyScamThreshold:
		return model.RiskLevelLikelyScam
	case risk >= suspiciousThreshold:
		return model.RiskLevelSuspicious
	default:
		return model.RiskLevelLikelySafe
	}
}

// VerifiedLabelFor labels a blended trust score.
func VerifiedLabelFor(combined int) model.VerifiedLabel {
	switch {
	case combined >= lowRiskThreshold:
		return model.VerifiedLowRisk
	case combined >= mediumRiskThreshold:
		return model.VerifiedMediumRisk
	case combined >= highRiskThreshold:
		return model.VerifiedHighRisk
	default:
		return model.VerifiedCriticalRisk
	}
}

// RecommendedAction picks the advice for an analysis. A blended score
// passes at 60 or above; a single-entity trust score must exceed 60.
func RecommendedAction(score model.ScoreResult, combined *model.CombinedResult) string {
	if combined != nil {
		if combined.CombinedTrustScore >= proceedThreshold {
			return ActionProceed
		}
		return ActionWarn
	}
	if score.TrustScore > proceedThreshold {
		return ActionProceed
	}
	return ActionWarn
}

func clamp(v int) int {
	return min(max(v, 0), MaxScore)
}
