package rules

import (
	"regexp"
	"strings"
)

var companyLinePattern = regexp.MustCompile(`(?i)company[:\s]+(.+)`)

// ExtractCompany returns the company named on the first "Company: <name>"
// line of the text. A parenthesized suffix is dropped, so
// "Company: Acme Corp (Remote)" yields "Acme Corp".
// It returns an empty string when no such line exists.
func ExtractCompany(text string) string {
	m := companyLinePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	name, _, _ := strings.Cut(m[1], "(")
	return strings.TrimSpace(name)
}
