package rules

import "testing"

func TestEvaluatorEvaluate(t *testing.T) {
	t.Parallel()

	e := NewEvaluator()

	t.Run("empty text yields no findings", func(t *testing.T) {
		t.Parallel()

		got := e.Evaluate("")
		if got.Count() != 0 {
			t.Errorf("expected no findings, got %+v", got)
		}
	})

	t.Run("classic scam posting", func(t *testing.T) {
		t.Parallel()

		text := `Company: Acme Solutions (Remote)
Earn Rs. 25,000 weekly for just 2 hours a day!
Simple tasks, update logs and daily reports.
Pay a refundable registration fee before joining.
Contact on Telegram. Apply: https://acme-jobs.xyz/apply`

		got := e.Evaluate(text)

		if !got.DomainMismatch {
			t.Error("expected DomainMismatch")
		}
		if !got.MessagingApps {
			t.Error("expected MessagingApps")
		}
		if !got.HiddenFees {
			t.Error("expected HiddenFees")
		}
		if !got.LowHoursHighPay {
			t.Error("expected LowHoursHighPay")
		}
		if !got.VagueDescription {
			t.Error("expected VagueDescription")
		}
		if !got.MissingManagerName {
			t.Error("expected MissingManagerName")
		}
	})

	t.Run("legitimate posting", func(t *testing.T) {
		t.Parallel()

		text := `Company: Example
Senior Backend Engineer. You will report to the Engineering Manager.
Recruiter: Jane Doe. Apply at https://careers.example.com/jobs/123`

		got := e.Evaluate(text)
		if got.Count() != 0 {
			t.Errorf("expected no findings, got %+v", got)
		}
	})
}

func TestHasDomainMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "no company line",
			text: "Apply at https://random.com",
			want: false,
		},
		{
			name: "no url",
			text: "Company: Acme",
			want: false,
		},
		{
			name: "matching domain",
			text: "Company: Acme\nApply at https://jobs.acme.com/apply",
			want: false,
		},
		{
			name: "company name with spaces",
			text: "Company: Blue Sky\nApply at https://www.bluesky.io.",
			want: false,
		},
		{
			name: "one mismatching link is enough",
			text: "Company: Acme\nhttps://acme.com and https://forms.gle/abc",
			want: true,
		},
		{
			name: "company only in subdomain",
			text: "Company: Acme\nhttps://acme.freejobs.net",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasDomainMismatch(tt.text); got != tt.want {
				t.Errorf("hasDomainMismatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessagingApps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"Message us on WhatsApp", true},
		{"DM me for details", true},
		{"Contact on +91 99999", true},
		{"Join our Signal group", true},
		{"Strong signaling background", false},
		{"Email hr@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := mentionsMessagingApps(tt.text); got != tt.want {
				t.Errorf("mentionsMessagingApps(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasLowHoursHighPay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"rupees with hours", "Work 2 hours daily and earn Rs. 30,000", true},
		{"inr with hrs", "3 hrs per day, INR 5000 per week", true},
		{"dollar sign", "Only 1 hour a day for $1,200", true},
		{"suffix marker", "just 2 hours, 45000 INR monthly", true},
		{"small amount", "2 hours a day for Rs. 500", false},
		{"full time", "8 hours a day, Rs. 30,000", false},
		{"twelve hours", "12 hours shift, Rs. 30,000", false},
		{"no currency", "2 hours a day for 30000", false},
		{"hours without pay", "2 hours of onboarding", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasLowHoursHighPay(tt.text); got != tt.want {
				t.Errorf("hasLowHoursHighPay(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVagueAndManager(t *testing.T) {
	t.Parallel()

	e := NewEvaluator()

	one := e.Evaluate("You will handle simple tasks. Hiring Manager: Raj")
	if one.VagueDescription {
		t.Error("one vague term must not flag the description")
	}
	if one.MissingManagerName {
		t.Error("a named hiring manager must not be flagged as missing")
	}

	two := e.Evaluate("Simple tasks and basic responsibilities.")
	if !two.VagueDescription {
		t.Error("two vague terms must flag the description")
	}
	if !two.MissingManagerName {
		t.Error("expected MissingManagerName without any contact person")
	}
}

func TestWithExtraHiddenFeePhrases(t *testing.T) {
	t.Parallel()

	text := "A small training kit payment is required"
	if NewEvaluator().Evaluate(text).HiddenFees {
		t.Fatal("default phrases must not match")
	}
	e := NewEvaluator(WithExtraHiddenFeePhrases([]string{"  Training Kit Payment "}))
	if !e.Evaluate(text).HiddenFees {
		t.Error("extra phrase must match")
	}
}

func TestExtractCompany(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"Company: Acme Corp (Remote)\nRole: Tester", "Acme Corp"},
		{"company - no colon", "- no colon"},
		{"COMPANY:Globex", "Globex"},
		{"Role: Tester", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := ExtractCompany(tt.text); got != tt.want {
				t.Errorf("ExtractCompany(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rupee sign", "Earn ₹25,000", "Earn Rs. 25,000"},
		{"full width digits", "２ hours", "2 hours"},
		{"control characters", "Pay\x00 first\u200b", "Pay first"},
		{"keeps newlines", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
