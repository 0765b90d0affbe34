package rules

import (
	"strings"

	"github.com/nao1215/trustguard/internal/model"
)

// Evaluator runs the rule checks. Its phrase tables are fixed at
// construction, so one Evaluator can be shared across goroutines.
type Evaluator struct {
	hiddenFeePhrases []string
	vagueTerms       []string
	managerTerms     []string
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithExtraHiddenFeePhrases adds phrases to the hidden fee check.
func WithExtraHiddenFeePhrases(phrases []string) Option {
	return func(e *Evaluator) {
		for _, p := range phrases {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				e.hiddenFeePhrases = append(e.hiddenFeePhrases, p)
			}
		}
	}
}

// NewEvaluator creates an Evaluator with the default phrase tables.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		hiddenFeePhrases: append([]string{}, DefaultHiddenFeePhrases...),
		vagueTerms:       append([]string{}, DefaultVagueTerms...),
		managerTerms:     append([]string{}, DefaultManagerTerms...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs every check against text.
func (e *Evaluator) Evaluate(text string) model.RuleFindings {
	if strings.TrimSpace(text) == "" {
		return model.RuleFindings{}
	}

	lower := strings.ToLower(text)
	return model.RuleFindings{
		DomainMismatch:     hasDomainMismatch(text),
		MessagingApps:      mentionsMessagingApps(text),
		HiddenFees:         containsAny(lower, e.hiddenFeePhrases),
		LowHoursHighPay:    hasLowHoursHighPay(text),
		VagueDescription:   countContained(lower, e.vagueTerms) >= minVagueTerms,
		MissingManagerName: !containsAny(lower, e.managerTerms),
	}
}
