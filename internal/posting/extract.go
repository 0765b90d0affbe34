package posting

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const (
	// minLineLength drops menu entries and buttons.
	minLineLength = 10

	// minDescriptionLength is the shortest filtered description kept.
	// Anything shorter means the filter removed the posting itself.
	minDescriptionLength = 100

	// maxDescriptionLength caps the description in characters.
	maxDescriptionLength = 10000
)

// boilerplatePatterns match lines that belong to the site, not the posting.
// "register" is matched as a word so "registration fee" survives.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`sign\s+in`),
	regexp.MustCompile(`log\s+in`),
	regexp.MustCompile(`\bregister\b`),
	regexp.MustCompile(`cookie`),
	regexp.MustCompile(`privacy\s+policy`),
	regexp.MustCompile(`terms\s+of\s+service`),
	regexp.MustCompile(`copyright`),
	regexp.MustCompile(`all\s+rights\s+reserved`),
	regexp.MustCompile(`follow\s+us`),
	regexp.MustCompile(`social\s+media`),
}

// Description returns the posting text from the visible lines of its
// page. Short lines and site boilerplate are dropped; when that leaves
// almost nothing, every line is kept instead.
func Description(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(strings.TrimSpace(line)) < minLineLength || isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}

	desc := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(desc) < minDescriptionLength {
		desc = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return truncate(desc, maxDescriptionLength)
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, re := range boilerplatePatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var (
	companyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)Company:[ \t]*([A-Z][A-Za-z0-9 \t&,.]+?)[ \t]*$`),
		regexp.MustCompile(`(?m)Employer:[ \t]*([A-Z][A-Za-z0-9 \t&,.]+?)[ \t]*$`),
		regexp.MustCompile(`(?m)Organization:[ \t]*([A-Z][A-Za-z0-9 \t&,.]+?)[ \t]*$`),
		regexp.MustCompile(`\bat\s+([A-Z][A-Za-z0-9 &,.]{2,30}?)\s+(?:is|seeks|looking)\b`),
	}

	trailingPunctuation = regexp.MustCompile(`[,.\s]+$`)
	legalSuffix         = regexp.MustCompile(`,?\s+(Inc\.?|LLC|Ltd\.?|Corporation|Corp\.?)$`)
)

// maxCompanyNameLength is the length above which a legal suffix is dropped.
const maxCompanyNameLength = 50

// CompanyName detects the employer from the page title or content.
// Titles shaped like "Role at Company | Site" or "Role - Company" are
// tried first, then labelled lines such as "Company: Acme". It returns an
// empty string when no name is found.
func CompanyName(title, content string) string {
	name := companyFromTitle(title)
	if name == "" {
		for _, re := range companyNamePatterns {
			if m := re.FindStringSubmatch(content); m != nil {
				name = strings.TrimSpace(m[1])
				break
			}
		}
	}

	name = trailingPunctuation.ReplaceAllString(name, "")
	if len(name) > maxCompanyNameLength {
		name = legalSuffix.ReplaceAllString(name, "")
	}
	return name
}

func companyFromTitle(title string) string {
	if _, after, ok := strings.Cut(title, " at "); ok {
		name, _, _ := strings.Cut(after, " at ")
		name, _, _ = strings.Cut(name, "|")
		return strings.TrimSpace(name)
	}
	if _, after, ok := strings.Cut(title, " - "); ok {
		name, _, _ := strings.Cut(after, " - ")
		return strings.TrimSpace(name)
	}
	return ""
}

// excludedSites never identify the hiring company.
var excludedSites = []string{
	"linkedin", "indeed", "glassdoor", "monster", "ziprecruiter",
	"careerbuilder", "facebook", "twitter", "instagram",
}

var (
	labelledWebsite = regexp.MustCompile(`(?i)(?:company website|website|visit us|apply at):\s*(https?://[^\s)]+)`)
	bareWebsite     = regexp.MustCompile(`(?i)(https?://(?:www\.)?[a-z0-9\-]+\.[a-z]{2,})(?:\s|$|/careers|/jobs)`)
)

// minWebsiteLength rejects truncated addresses such as "http://a.b".
const minWebsiteLength = 11

// CompanyWebsite detects the company's own website. In order it uses a
// labelled address in the content ("Company Website: https://..."), a
// bare home, careers or jobs address in the content or the page links,
// and finally the registrable domain of the posting itself unless that
// is a job board. It returns an empty string when nothing qualifies.
func CompanyWebsite(content string, links []string, postingURL string) string {
	for _, m := range labelledWebsite.FindAllStringSubmatch(content, -1) {
		if site := strings.TrimRight(m[1], "/.,;"); usableWebsite(site) {
			return site
		}
	}
	for _, m := range bareWebsite.FindAllStringSubmatch(content, -1) {
		if usableWebsite(m[1]) {
			return strings.TrimRight(m[1], "/")
		}
	}
	for _, link := range links {
		if site := siteRoot(link); site != "" && usableWebsite(site) {
			return site
		}
	}
	return postingSite(postingURL)
}

func usableWebsite(site string) bool {
	if len(site) < minWebsiteLength || !strings.Contains(site, ".") {
		return false
	}
	lower := strings.ToLower(site)
	for _, s := range excludedSites {
		if strings.Contains(lower, s) {
			return false
		}
	}
	return true
}

// siteRoot returns scheme and host of a link to a home, careers or jobs
// page, and an empty string for any other link.
func siteRoot(link string) string {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	path := strings.ToLower(strings.TrimSuffix(u.Path, "/"))
	if path != "" && !strings.HasPrefix(path, "/careers") && !strings.HasPrefix(path, "/jobs") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// postingSite returns the home page of the domain hosting the posting.
// Job boards and addresses without a registrable domain yield "".
func postingSite(postingURL string) string {
	u, err := url.Parse(postingURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	label, _, _ := strings.Cut(domain, ".")
	for _, s := range excludedSites {
		if label == s {
			return ""
		}
	}
	return "https://" + domain
}
