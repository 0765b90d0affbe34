package posting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/trustguard/internal/fetch"
	"github.com/nao1215/trustguard/internal/rules"
)

// PageFetcher downloads a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Page, error)
}

// Posting is the content scraped from a job posting page.
type Posting struct {
	// URL is the address of the page after redirects.
	URL string

	// Text is the posting description without page boilerplate.
	Text string

	// CompanyName is the detected employer, empty when unknown.
	CompanyName string

	// CompanyURL is the detected company website, empty when unknown.
	CompanyURL string
}

// AnalysisText returns the text to score. A detected company name is
// added as a "Company:" line when the description does not name one, so
// the rules can compare it with the contact addresses.
func (p *Posting) AnalysisText() string {
	if p.CompanyName == "" || rules.ExtractCompany(p.Text) != "" {
		return p.Text
	}
	return "Company: " + p.CompanyName + "\n" + p.Text
}

// Scraper extracts postings from web pages.
type Scraper struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ScraperOption {
	return func(s *Scraper) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScraper creates a Scraper.
func NewScraper(fetcher PageFetcher, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches the posting at rawURL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Posting, error) {
	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape posting: %w", err)
	}
	if len(page.Lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, page.FinalURL)
	}

	content := strings.Join(page.Lines, "\n")
	p := &Posting{
		URL:         page.FinalURL,
		Text:        Description(page.Lines),
		CompanyName: CompanyName(page.Title, content),
		CompanyURL:  CompanyWebsite(content, page.ExternalLinks, page.FinalURL),
	}

	s.logger.Debug("posting scraped",
		"url", p.URL,
		"chars", len(p.Text),
		"company", p.CompanyName,
		"company_url", p.CompanyURL,
	)
	return p, nil
}
