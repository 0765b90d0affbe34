package reputation

import (
	"slices"
	"testing"
)

func TestEvaluatorEvaluate(t *testing.T) {
	t.Parallel()

	e := NewEvaluator()

	tests := []struct {
		name          string
		url           string
		wantDeduction int
		wantReasons   []string
	}{
		{
			name:          "empty url yields nothing",
			url:           "",
			wantDeduction: 0,
		},
		{
			name:          "secure corporate site is clean",
			url:           "https://careers.example.com/jobs/42",
			wantDeduction: 0,
		},
		{
			name:          "plain http adds 20",
			url:           "http://careers.example.com",
			wantDeduction: 20,
			wantReasons:   []string{ReasonInsecureScheme},
		},
		{
			name:          "suspicious tld adds 10",
			url:           "https://quick-jobs.xyz/apply",
			wantDeduction: 10,
			wantReasons:   []string{"Suspicious top-level domain: .xyz"},
		},
		{
			name:          "free host subdomain adds 25",
			url:           "https://acme-hiring.blogspot.com",
			wantDeduction: 25,
			wantReasons:   []string{ReasonFreeHosting},
		},
		{
			name:          "free host apex adds 25",
			url:           "https://github.io",
			wantDeduction: 25,
			wantReasons:   []string{ReasonFreeHosting},
		},
		{
			name:          "all checks add up",
			url:           "http://jobs.top",
			wantDeduction: 30,
			wantReasons:   []string{ReasonInsecureScheme, "Suspicious top-level domain: .top"},
		},
		{
			name:          "lookalike host is not a free host",
			url:           "https://notgithub.io.example.com",
			wantDeduction: 0,
		},
		{
			name:          "missing scheme is insecure",
			url:           "acme.info/careers",
			wantDeduction: 30,
			wantReasons:   []string{ReasonInsecureScheme, "Suspicious top-level domain: .info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.Evaluate(tt.url)
			if got.Deduction != tt.wantDeduction {
				t.Errorf("Deduction = %d, want %d", got.Deduction, tt.wantDeduction)
			}
			if !slices.Equal(got.Reasons, tt.wantReasons) {
				t.Errorf("Reasons = %v, want %v", got.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestEvaluatorOptions(t *testing.T) {
	t.Parallel()

	e := NewEvaluator(
		WithSuspiciousTLDs([]string{"COM"}),
		WithFreeHosts([]string{".example.org"}),
	)

	got := e.Evaluate("https://www.example.org")
	if got.Deduction != FreeHostingPoints {
		t.Errorf("Deduction = %d, want %d", got.Deduction, FreeHostingPoints)
	}

	got = e.Evaluate("https://example.com")
	if got.Deduction != SuspiciousTLDPoints {
		t.Errorf("Deduction = %d, want %d", got.Deduction, SuspiciousTLDPoints)
	}
}

func TestRegistrableLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want string
	}{
		{"www.google.com", "google"},
		{"careers.example.co.uk", "example"},
		{"acme.github.io", "github"},
		{"example.com", "example"},
		{"com", ""},
		{"192.168.0.1", "192.168.0.1"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			if got := RegistrableLabel(tt.host); got != tt.want {
				t.Errorf("RegistrableLabel(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestHostnameAndTLD(t *testing.T) {
	t.Parallel()

	if got := Hostname("HTTPS://Jobs.Example.COM:8443/apply"); got != "jobs.example.com" {
		t.Errorf("Hostname() = %q", got)
	}
	if got := Hostname("   "); got != "" {
		t.Errorf("Hostname(blank) = %q, want empty", got)
	}
	if got := TLD("shop.example.co.uk"); got != ".co.uk" {
		t.Errorf("TLD() = %q, want .co.uk", got)
	}
	if got := TLD("10.0.0.1"); got != "" {
		t.Errorf("TLD(ip) = %q, want empty", got)
	}
	if IsSecure("http://example.com") || !IsSecure("HTTPS://example.com") {
		t.Error("IsSecure() returned unexpected result")
	}
}
