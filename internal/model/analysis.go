package model

import (
	"time"

	"github.com/google/uuid"
)

// Request is one job posting submitted for analysis.
type Request struct {
	// URL is the address the posting was found at or the application link.
	// It feeds the domain reputation checks and may be empty.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Text is the posting body.
	Text string `json:"text" yaml:"text"`

	// CompanyURL is the hiring company's website. Company verification
	// is skipped when it is empty.
	CompanyURL string `json:"company_url,omitempty" yaml:"companyURL,omitempty"`

	// Context is optional background handed to the language model,
	// such as the applicant's profile.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Analysis is the complete record of one analysis run.
// It is produced by the pipeline, persisted to the history database
// and rendered by the report writers.
type Analysis struct {
	// ID uniquely identifies the analysis.
	ID string `json:"id"`

	// DateAnalyzed is when the analysis started.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Request is the input that was analyzed, after normalization.
	Request Request `json:"request"`

	// PostingHash fingerprints the normalized posting text.
	PostingHash string `json:"posting_hash"`

	// Rules, Domain and Semantic are the per-signal findings.
	Rules    RuleFindings    `json:"rules"`
	Domain   DomainFinding   `json:"domain"`
	Semantic SemanticFinding `json:"semantic"`

	// Company is set when company verification succeeded.
	Company *CompanyFinding `json:"company,omitempty"`

	// CompanyError records why company verification failed.
	CompanyError string `json:"company_error,omitempty"`

	// Score is the single-entity score of the posting.
	Score ScoreResult `json:"score"`

	// Combined is set only when Company is set.
	Combined *CombinedResult `json:"combined,omitempty"`

	// Reasons is the deduplicated explanation list in insertion order.
	Reasons []string `json:"reasons"`

	// RecommendedAction is the advice shown to the applicant.
	RecommendedAction string `json:"recommended_action"`

	// Steps lists the pipeline steps that ran, in order.
	Steps []string `json:"steps,omitempty"`

	// Error holds the last step failure, if any.
	Error string `json:"error,omitempty"`
}

// NewAnalysis creates an Analysis for the given request with a fresh ID.
func NewAnalysis(req Request) *Analysis {
	return &Analysis{
		ID:           uuid.NewString(),
		DateAnalyzed: time.Now().UTC(),
		Request:      req,
		Reasons:      make([]string, 0),
	}
}

// CompanyVerified reports whether company verification succeeded.
func (a *Analysis) CompanyVerified() bool {
	return a.Company != nil
}

// Label returns the label shown to users. A verified label takes
// precedence over the single-entity risk level.
func (a *Analysis) Label() string {
	if a.Combined != nil {
		return a.Combined.Label.String()
	}
	return a.Score.RiskLevel.String()
}
