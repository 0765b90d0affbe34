package model

// Finding keys shared by the rule evaluator, the semantic evaluator and the
// weight table. The keys double as YAML keys in the configuration file.
const (
	KeyDomainMismatch     = "domain_mismatch"
	KeyMessagingApps      = "messaging_apps"
	KeyHiddenFees         = "hidden_fees"
	KeyLowHoursHighPay    = "low_hours_high_pay"
	KeyVagueDescription   = "vague_description"
	KeyMissingManagerName = "missing_manager_name"
	KeyPhishingAttempt    = "phishing_attempt"
	KeyUnrealisticSalary  = "unrealistic_salary"
	KeyVagueRole          = "vague_role"
	KeyCompanyUnclear     = "company_unclear"
)

// RuleKeys lists the rule finding keys in their canonical order.
// Reason aggregation and reporting iterate in this order.
var RuleKeys = []string{
	KeyDomainMismatch,
	KeyMessagingApps,
	KeyHiddenFees,
	KeyLowHoursHighPay,
	KeyVagueDescription,
	KeyMissingManagerName,
}

// RuleFindings holds the six boolean results of the deterministic text checks.
type RuleFindings struct {
	DomainMismatch     bool `json:"domain_mismatch"`
	MessagingApps      bool `json:"messaging_apps"`
	HiddenFees         bool `json:"hidden_fees"`
	LowHoursHighPay    bool `json:"low_hours_high_pay"`
	VagueDescription   bool `json:"vague_description"`
	MissingManagerName bool `json:"missing_manager_name"`
}

// Flags returns the findings keyed by their finding key.
func (r RuleFindings) Flags() map[string]bool {
	return map[string]bool{
		KeyDomainMismatch:     r.DomainMismatch,
		KeyMessagingApps:      r.MessagingApps,
		KeyHiddenFees:         r.HiddenFees,
		KeyLowHoursHighPay:    r.LowHoursHighPay,
		KeyVagueDescription:   r.VagueDescription,
		KeyMissingManagerName: r.MissingManagerName,
	}
}

// Count returns the number of findings that are true.
func (r RuleFindings) Count() int {
	n := 0
	for _, v := range r.Flags() {
		if v {
			n++
		}
	}
	return n
}

// DomainFinding is the output of the domain reputation checks.
// Deduction is a risk magnitude: larger means riskier.
type DomainFinding struct {
	Deduction int      `json:"deduction"`
	Reasons   []string `json:"reasons,omitempty"`
}

// SemanticKeys lists the semantic flag keys in their canonical order.
var SemanticKeys = []string{
	KeyPhishingAttempt,
	KeyHiddenFees,
	KeyDomainMismatch,
	KeyMessagingApps,
	KeyUnrealisticSalary,
	KeyVagueRole,
	KeyCompanyUnclear,
}

// SemanticFinding is the structured judgment returned by the language model.
// Every field defaults to its zero value when the model omits it.
type SemanticFinding struct {
	PhishingAttempt   bool   `json:"phishing_attempt"`
	HiddenFees        bool   `json:"hidden_fees"`
	DomainMismatch    bool   `json:"domain_mismatch"`
	MessagingApps     bool   `json:"messaging_apps"`
	UnrealisticSalary bool   `json:"unrealistic_salary"`
	VagueRole         bool   `json:"vague_role"`
	CompanyUnclear    bool   `json:"company_unclear"`
	LLMScore          int    `json:"llm_score"`
	Error             string `json:"error,omitempty"`
}

// Flags returns the semantic booleans keyed by their finding key.
func (s SemanticFinding) Flags() map[string]bool {
	return map[string]bool{
		KeyPhishingAttempt:   s.PhishingAttempt,
		KeyHiddenFees:        s.HiddenFees,
		KeyDomainMismatch:    s.DomainMismatch,
		KeyMessagingApps:     s.MessagingApps,
		KeyUnrealisticSalary: s.UnrealisticSalary,
		KeyVagueRole:         s.VagueRole,
		KeyCompanyUnclear:    s.CompanyUnclear,
	}
}

// Failed reports whether the semantic stage fell back to its neutral default.
func (s SemanticFinding) Failed() bool {
	return s.Error != ""
}

// CompanyFinding is the result of evaluating a company website.
type CompanyFinding struct {
	// Name is the company name derived from the website.
	Name string `json:"name"`

	// URL is the address that was evaluated.
	URL string `json:"url"`

	// TrustScore is the 0..100 legitimacy score of the website.
	TrustScore int `json:"trust_score"`

	// Indicators maps named checks such as has_ssl to their outcome.
	Indicators map[string]bool `json:"indicators,omitempty"`

	// RiskFactors lists human-readable problems found on the website.
	RiskFactors []string `json:"risk_factors,omitempty"`
}

// LegitimacyJudgment is the language model's opinion of a company website.
type LegitimacyJudgment struct {
	AppearsLegitimate bool     `json:"appears_legitimate"`
	AppearsFraudulent bool     `json:"appears_fraudulent"`
	HasRedFlags       bool     `json:"has_red_flags"`
	ProvidesClearInfo bool     `json:"provides_clear_info"`
	LegitimacyScore   int      `json:"legitimacy_score"`
	KeyObservations   []string `json:"key_observations,omitempty"`
}

// NeutralLegitimacyScore is used when no legitimacy judgment is available.
const NeutralLegitimacyScore = 50

// NeutralJudgment returns the judgment used when the model is unavailable.
func NeutralJudgment() LegitimacyJudgment {
	return LegitimacyJudgment{LegitimacyScore: NeutralLegitimacyScore}
}
