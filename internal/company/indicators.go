package company

import (
	"regexp"
	"strings"

	"github.com/nao1215/trustguard/internal/fetch"
)

// Indicator names used in CompanyFinding.Indicators.
const (
	IndicatorSSL               = "has_ssl"
	IndicatorAboutPage         = "has_about_page"
	IndicatorContactPage       = "has_contact_page"
	IndicatorCareersPage       = "has_careers_page"
	IndicatorPrivacyPolicy     = "has_privacy_policy"
	IndicatorTermsOfService    = "has_terms_of_service"
	IndicatorLegalInfo         = "has_legal_info"
	IndicatorSufficientContent = "sufficient_content"
	IndicatorSpamLanguage      = "has_spam_language"
)

// minContentLength is the amount of visible text a real company site exceeds.
const minContentLength = 500

var (
	aboutPattern   = regexp.MustCompile(`\babout\s+(?:us|page|company)\b|\bour\s+story\b`)
	contactPattern = regexp.MustCompile(`\bcontact\s+(?:us|page)\b`)
	careersPattern = regexp.MustCompile(`\bcareers?\b|\bjobs?\b`)
	privacyPattern = regexp.MustCompile(`\bprivacy\s+policy\b`)
	termsPattern   = regexp.MustCompile(`\bterms\s+(?:of\s+service|and\s+conditions)\b`)
	legalPattern   = regexp.MustCompile(`\b(?:registered|incorporated|llc|ltd|inc|corporation)\b`)
)

// spamPhrases are get-rich-quick phrases legitimate employers avoid.
var spamPhrases = []string{
	"earn money fast",
	"work from home easy",
	"guaranteed income",
	"no experience needed",
	"get rich quick",
	"limited time offer",
}

// Indicators are the legitimacy checks derived from a website.
type Indicators struct {
	SSL               bool
	AboutPage         bool
	ContactPage       bool
	CareersPage       bool
	PrivacyPolicy     bool
	TermsOfService    bool
	LegalInfo         bool
	SufficientContent bool
	SpamLanguage      bool
}

// Map returns the indicators keyed by name.
func (i Indicators) Map() map[string]bool {
	return map[string]bool{
		IndicatorSSL:               i.SSL,
		IndicatorAboutPage:         i.AboutPage,
		IndicatorContactPage:       i.ContactPage,
		IndicatorCareersPage:       i.CareersPage,
		IndicatorPrivacyPolicy:     i.PrivacyPolicy,
		IndicatorTermsOfService:    i.TermsOfService,
		IndicatorLegalInfo:         i.LegalInfo,
		IndicatorSufficientContent: i.SufficientContent,
		IndicatorSpamLanguage:      i.SpamLanguage,
	}
}

// DetectIndicators inspects the visible text and the link targets of a page.
func DetectIndicators(page *fetch.Page) Indicators {
	var text string
	var links []string
	var hasEmail bool
	if page.ParseResult != nil {
		text = page.Text
		links = page.Links
		hasEmail = len(page.Emails) > 0
	}
	content := strings.ToLower(text + " " + strings.Join(links, " "))

	return Indicators{
		SSL:               page.Secure,
		AboutPage:         aboutPattern.MatchString(content) || strings.Contains(content, "/about"),
		ContactPage:       contactPattern.MatchString(content) || strings.Contains(content, "/contact") || hasEmail,
		CareersPage:       careersPattern.MatchString(content) || strings.Contains(content, "/careers") || strings.Contains(content, "/jobs"),
		PrivacyPolicy:     privacyPattern.MatchString(content) || strings.Contains(content, "/privacy"),
		TermsOfService:    termsPattern.MatchString(content) || strings.Contains(content, "/terms"),
		LegalInfo:         legalPattern.MatchString(content),
		SufficientContent: len(text) > minContentLength,
		SpamLanguage:      containsAny(content, spamPhrases),
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
