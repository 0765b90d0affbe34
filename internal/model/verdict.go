package model

import "time"

// Verdict is the summarized answer returned to the caller.
// Company fields are populated only when company verification ran.
type Verdict struct {
	ID                 string    `json:"id"`
	DateAnalyzed       time.Time `json:"date_analyzed"`
	URL                string    `json:"url,omitempty"`
	TrustScore         int       `json:"trust_score"`
	Label              string    `json:"label"`
	Reasons            []string  `json:"reasons"`
	RecommendedAction  string    `json:"recommended_action"`
	CompanyVerified    bool      `json:"company_verified"`
	CompanyTrustScore  *int      `json:"company_trust_score,omitempty"`
	CompanyName        string    `json:"company_name,omitempty"`
	CompanyRiskFactors []string  `json:"company_risk_factors,omitempty"`
	CombinedTrustScore *int      `json:"combined_trust_score,omitempty"`
}

// NewVerdict builds the summarized view of an analysis.
func NewVerdict(a *Analysis) *Verdict {
	v := &Verdict{
		ID:                a.ID,
		DateAnalyzed:      a.DateAnalyzed,
		URL:               a.Request.URL,
		TrustScore:        a.Score.TrustScore,
		Label:             a.Label(),
		Reasons:           append([]string{}, a.Reasons...),
		RecommendedAction: a.RecommendedAction,
		CompanyVerified:   a.CompanyVerified(),
	}

	if a.Company != nil {
		score := a.Company.TrustScore
		v.CompanyTrustScore = &score
		v.CompanyName = a.Company.Name
		v.CompanyRiskFactors = append([]string{}, a.Company.RiskFactors...)
	}
	if a.Combined != nil {
		combined := a.Combined.CombinedTrustScore
		v.CombinedTrustScore = &combined
	}

	return v
}

// DisplayScore is the score shown next to the label: the combined
// score when the company was verified, otherwise the job trust score.
func (v *Verdict) DisplayScore() int {
	if v.CombinedTrustScore != nil {
		return *v.CombinedTrustScore
	}
	return v.TrustScore
}
