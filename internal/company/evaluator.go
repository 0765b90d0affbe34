package company

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/trustguard/internal/fetch"
	"github.com/nao1215/trustguard/internal/model"
)

// DefaultTimeout bounds a complete company evaluation.
const DefaultTimeout = 45 * time.Second

// Evaluator verifies a company from its website URL.
type Evaluator interface {
	Evaluate(ctx context.Context, rawURL string) (model.CompanyFinding, error)
}

// Judge gives an opinion on a website's legitimacy from its text.
type Judge interface {
	JudgeLegitimacy(ctx context.Context, siteURL, content string) (model.LegitimacyJudgment, error)
}

// PageFetcher downloads a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Page, error)
}

// WebsiteEvaluator scores a company from its home page.
type WebsiteEvaluator struct {
	fetcher PageFetcher
	judge   Judge
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a WebsiteEvaluator.
type Option func(*WebsiteEvaluator)

// WithJudge enables legitimacy judgments.
func WithJudge(j Judge) Option {
	return func(e *WebsiteEvaluator) {
		e.judge = j
	}
}

// WithTimeout sets the evaluation timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *WebsiteEvaluator) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *WebsiteEvaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewWebsiteEvaluator creates a WebsiteEvaluator.
func NewWebsiteEvaluator(fetcher PageFetcher, opts ...Option) *WebsiteEvaluator {
	e := &WebsiteEvaluator{
		fetcher: fetcher,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate implements Evaluator. It fails only when the page cannot be
// fetched; a failing Judge falls back to a neutral judgment.
func (e *WebsiteEvaluator) Evaluate(ctx context.Context, rawURL string) (model.CompanyFinding, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return model.CompanyFinding{}, err
	}

	ind := DetectIndicators(page)

	judgment := model.NeutralJudgment()
	if e.judge != nil {
		j, err := e.judge.JudgeLegitimacy(ctx, page.FinalURL, judgeContent(page))
		if err != nil {
			e.logger.Warn("company legitimacy judgment failed, using neutral score",
				"url", page.FinalURL, "error", err)
		} else {
			judgment = j
		}
	}

	finding := model.CompanyFinding{
		Name:        Name(page),
		URL:         page.URL,
		TrustScore:  Score(ind, judgment),
		Indicators:  ind.Map(),
		RiskFactors: RiskFactors(ind, judgment),
	}
	e.logger.Debug("company evaluated",
		"url", finding.URL, "company", finding.Name, "trust_score", finding.TrustScore)
	return finding, nil
}

// judgeContent is the page text handed to the Judge, led by the meta
// description when the page has one.
func judgeContent(page *fetch.Page) string {
	if page.ParseResult == nil {
		return ""
	}
	if d := strings.TrimSpace(page.Description()); d != "" {
		return d + "\n" + page.Text
	}
	return page.Text
}

// titleSeparators split "Company - Tagline" style titles.
var titleSeparators = []string{" - ", " | ", " – ", " — ", " : "}

// Name derives the company name from og:site_name or the first segment
// of the page title. The host is the fallback.
func Name(page *fetch.Page) string {
	if page.ParseResult != nil {
		if site := strings.TrimSpace(page.MetaTags["og:site_name"]); site != "" {
			return site
		}
		title := page.Title
		for _, sep := range titleSeparators {
			title, _, _ = strings.Cut(title, sep)
		}
		if name := strings.TrimSpace(title); name != "" {
			return name
		}
	}

	raw := page.FinalURL
	if raw == "" {
		raw = page.URL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
