package model

// ScoreResult is the bounded score of a single job posting.
// TrustScore + RiskScore is always 100.
type ScoreResult struct {
	RuleScore       int       `json:"rule_score"`
	LLMScore        int       `json:"llm_score"`
	DomainDeduction int       `json:"domain_deduction"`
	RiskScore       int       `json:"risk_score"`
	TrustScore      int       `json:"trust_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
}

// CombinedResult is the blend of a job score and its company's score.
type CombinedResult struct {
	JobTrustScore      int           `json:"job_trust_score"`
	CompanyTrustScore  int           `json:"company_trust_score"`
	CombinedTrustScore int           `json:"combined_trust_score"`
	Label              VerifiedLabel `json:"label"`
}
