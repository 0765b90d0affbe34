package reputation

import (
	"fmt"
	"strings"

	"github.com/nao1215/trustguard/internal/model"
)

// Risk points added by each check.
const (
	InsecureSchemePoints = 20
	SuspiciousTLDPoints  = 10
	FreeHostingPoints    = 25
)

// Reasons reported by the checks.
const (
	ReasonInsecureScheme = "Not using HTTPS"
	ReasonFreeHosting    = "Hosted on free platform (often used by scammers)"
)

// DefaultSuspiciousTLDs are TLDs frequently used for throwaway scam sites.
var DefaultSuspiciousTLDs = []string{
	".xyz", ".top", ".club", ".info", ".biz", ".gq", ".cf", ".tk", ".ml", ".ga",
}

// DefaultFreeHosts are website builders that allow anonymous free sites.
var DefaultFreeHosts = []string{
	"blogspot.com", "wordpress.com", "wixsite.com", "weebly.com",
	"github.io", "netlify.app", "herokuapp.com",
}

// Evaluator runs the domain reputation checks. It holds only read-only
// tables and is safe for concurrent use.
type Evaluator struct {
	suspiciousTLDs map[string]struct{}
	freeHosts      []string
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSuspiciousTLDs replaces the suspicious TLD set.
// Entries are accepted with or without a leading dot.
func WithSuspiciousTLDs(tlds []string) Option {
	return func(e *Evaluator) {
		e.suspiciousTLDs = make(map[string]struct{}, len(tlds))
		for _, tld := range tlds {
			tld = strings.ToLower(strings.TrimSpace(tld))
			if tld == "" {
				continue
			}
			if !strings.HasPrefix(tld, ".") {
				tld = "." + tld
			}
			e.suspiciousTLDs[tld] = struct{}{}
		}
	}
}

// WithFreeHosts replaces the free hosting provider set.
func WithFreeHosts(hosts []string) Option {
	return func(e *Evaluator) {
		e.freeHosts = make([]string, 0, len(hosts))
		for _, h := range hosts {
			h = strings.Trim(strings.ToLower(strings.TrimSpace(h)), ".")
			if h != "" {
				e.freeHosts = append(e.freeHosts, h)
			}
		}
	}
}

// NewEvaluator creates an Evaluator with the default tables.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	WithSuspiciousTLDs(DefaultSuspiciousTLDs)(e)
	WithFreeHosts(DefaultFreeHosts)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate checks a single URL. An empty URL yields a zero finding.
func (e *Evaluator) Evaluate(rawURL string) model.DomainFinding {
	var finding model.DomainFinding
	if strings.TrimSpace(rawURL) == "" {
		return finding
	}

	if !IsSecure(rawURL) {
		finding.Deduction += InsecureSchemePoints
		finding.Reasons = append(finding.Reasons, ReasonInsecureScheme)
	}

	host := Hostname(rawURL)
	if host == "" {
		return finding
	}

	if tld := TLD(host); tld != "" {
		if _, ok := e.suspiciousTLDs[tld]; ok {
			finding.Deduction += SuspiciousTLDPoints
			finding.Reasons = append(finding.Reasons, fmt.Sprintf("Suspicious top-level domain: %s", tld))
		}
	}

	if e.isFreeHost(host) {
		finding.Deduction += FreeHostingPoints
		finding.Reasons = append(finding.Reasons, ReasonFreeHosting)
	}

	return finding
}

func (e *Evaluator) isFreeHost(host string) bool {
	for _, fh := range e.freeHosts {
		if host == fh || strings.HasSuffix(host, "."+fh) {
			return true
		}
	}
	return false
}
