package rules

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nao1215/trustguard/internal/reputation"
)

var (
	urlPattern       = regexp.MustCompile(`(?i)https?://\S+`)
	messagingPattern = regexp.MustCompile(`(?i)\b(?:telegram|whatsapp|signal|dm me|contact on)\b`)
	lowHoursPattern  = regexp.MustCompile(`(?i)\b[1-3]\s*(?:hours?|hrs?)\b`)

	// currencyPrefixPattern matches "Rs. 25,000", "INR 5000" and "$1,500".
	currencyPrefixPattern = regexp.MustCompile(`(?i)(?:\b(?:rs\.?|inr|usd|eur|gbp)|[$€£])\s*(\d[\d,]*)`)

	// currencySuffixPattern matches "25000 INR" and "5,000 rupees".
	currencySuffixPattern = regexp.MustCompile(`(?i)\b(\d[\d,]*)\s*(?:inr|usd|eur|gbp|rupees|dollars)\b`)
)

// DefaultHiddenFeePhrases are phrases that ask the applicant for money.
var DefaultHiddenFeePhrases = []string{
	"refundable",
	"processing fee",
	"charges may apply",
	"orientation fee",
	"verification charge",
	"deposit",
	"registration fee",
	"security deposit",
	"pay first",
	"activation fee",
}

// DefaultVagueTerms are generic duty phrases typical of fake postings.
var DefaultVagueTerms = []string{
	"update logs",
	"verify documents",
	"coordinate tasks",
	"daily reports",
	"simple tasks",
	"basic responsibilities",
}

// DefaultManagerTerms indicate the posting names a real contact person.
var DefaultManagerTerms = []string{
	"hiring manager",
	"recruiter",
	"manager:",
	"report to",
}

// minVagueTerms is how many vague terms must appear to flag a description.
const minVagueTerms = 2

// minPayDigits is the number of digits a payment needs to count as high pay.
const minPayDigits = 4

// hasDomainMismatch reports whether any link in text points away from the
// company named in the posting.
func hasDomainMismatch(text string) bool {
	company := strings.ToLower(strings.Join(strings.Fields(ExtractCompany(text)), ""))
	if company == "" {
		return false
	}

	for _, link := range urlPattern.FindAllString(text, -1) {
		link = strings.TrimRight(link, `.,;:!?)]}'"`)
		label := reputation.RegistrableLabel(reputation.Hostname(link))
		if !strings.Contains(label, company) {
			return true
		}
	}
	return false
}

func mentionsMessagingApps(text string) bool {
	return messagingPattern.MatchString(text)
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func countContained(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}

// hasLowHoursHighPay reports whether the text promises a large payment
// for one to three hours of work.
func hasLowHoursHighPay(text string) bool {
	if !lowHoursPattern.MatchString(text) {
		return false
	}
	for _, p := range []*regexp.Regexp{currencyPrefixPattern, currencySuffixPattern} {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if countDigits(m[1]) >= minPayDigits {
				return true
			}
		}
	}
	return false
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
