package reason

import (
	"github.com/nao1215/trustguard/internal/model"
)

// SemanticUnavailable is added when the language model could not be consulted.
const SemanticUnavailable = "⚠️ AI Analysis Failed: Could not connect to local model. Results are based on rules only."

// companyFailurePrefix starts the reason added when company verification fails.
const companyFailurePrefix = "Company verification failed: "

var ruleReasons = map[string]string{
	model.KeyDomainMismatch:     "Application link does not match company domain",
	model.KeyMessagingApps:      "Uses Telegram/WhatsApp for hiring",
	model.KeyHiddenFees:         "Mentions hidden fees or deposits",
	model.KeyLowHoursHighPay:    "Unrealistic high pay for low hours",
	model.KeyVagueDescription:   "Vague job description",
	model.KeyMissingManagerName: "No hiring manager or recruiter name",
}

var semanticReasons = map[string]string{
	model.KeyPhishingAttempt:   "AI detected PHISHING attempt (Security Alert Scam)",
	model.KeyHiddenFees:        "AI detected hidden fees",
	model.KeyDomainMismatch:    "AI detected mismatched application domain",
	model.KeyMessagingApps:     "AI detected off-platform messaging",
	model.KeyUnrealisticSalary: "AI detected unrealistic salary",
	model.KeyVagueRole:         "AI detected vague role description",
	model.KeyCompanyUnclear:    "AI detected unclear company identity",
}

// ForRules returns the reason for each true rule finding.
func ForRules(r model.RuleFindings) []string {
	return lookup(model.RuleKeys, r.Flags(), ruleReasons)
}

// ForSemantic returns the reason for each true semantic flag.
func ForSemantic(s model.SemanticFinding) []string {
	return lookup(model.SemanticKeys, s.Flags(), semanticReasons)
}

// CompanyVerificationFailed formats the reason for a failed company check.
func CompanyVerificationFailed(errMsg string) string {
	if errMsg == "" {
		errMsg = "unknown error"
	}
	return companyFailurePrefix + errMsg
}

func lookup(keys []string, flags map[string]bool, table map[string]string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if flags[key] {
			out = append(out, table[key])
		}
	}
	return out
}

// Input gathers everything that can contribute a reason.
type Input struct {
	Rules        model.RuleFindings
	Domain       model.DomainFinding
	Semantic     model.SemanticFinding
	Company      *model.CompanyFinding
	CompanyError string
}

// Aggregate builds the final reason list. Domain reasons come first,
// then rule reasons, the degraded-analysis notice, semantic reasons and
// finally company findings.
func Aggregate(in Input) []string {
	s := NewSet(in.Domain.Reasons...)
	s.Add(ForRules(in.Rules)...)
	if in.Semantic.Failed() {
		s.Add(SemanticUnavailable)
	}
	s.Add(ForSemantic(in.Semantic)...)
	if in.Company != nil {
		s.Add(in.Company.RiskFactors...)
	}
	if in.CompanyError != "" {
		s.Add(CompanyVerificationFailed(in.CompanyError))
	}
	return s.List()
}
