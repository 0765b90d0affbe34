package reputation

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Hostname extracts the lowercase host from a URL. A missing scheme is
// tolerated, so "jobs.example.com/apply" yields "jobs.example.com".
// It returns an empty string when no host can be found.
func Hostname(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}

// IsSecure reports whether the URL uses the https scheme.
func IsSecure(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "https")
}

// TLD returns the ICANN public suffix of host with a leading dot,
// for example ".co.uk" for "jobs.example.co.uk".
// IP addresses and empty hosts have no TLD.
func TLD(host string) string {
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	return "." + icannSuffix(host)
}

// RegistrableLabel returns the label directly left of the ICANN public
// suffix: "example" for "careers.example.co.uk". Private suffixes such as
// github.io are not treated as suffixes, so "acme.github.io" yields "github".
func RegistrableLabel(host string) string {
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}

	suffix := icannSuffix(host)
	if host == suffix {
		return ""
	}
	rest := strings.TrimSuffix(host, "."+suffix)
	return rest[strings.LastIndexByte(rest, '.')+1:]
}

// icannSuffix walks past private suffixes until it reaches one managed by ICANN.
func icannSuffix(host string) string {
	suffix, icann := publicsuffix.PublicSuffix(host)
	for !icann {
		i := strings.IndexByte(suffix, '.')
		if i < 0 {
			break
		}
		suffix, icann = publicsuffix.PublicSuffix(suffix[i+1:])
	}
	return suffix
}
