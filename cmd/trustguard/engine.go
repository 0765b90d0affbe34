package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/trustguard/internal/cache"
	"github.com/nao1215/trustguard/internal/company"
	"github.com/nao1215/trustguard/internal/config"
	"github.com/nao1215/trustguard/internal/database"
	"github.com/nao1215/trustguard/internal/fetch"
	"github.com/nao1215/trustguard/internal/model"
	"github.com/nao1215/trustguard/internal/pipeline"
	"github.com/nao1215/trustguard/internal/posting"
	"github.com/nao1215/trustguard/internal/reputation"
	"github.com/nao1215/trustguard/internal/rules"
	"github.com/nao1215/trustguard/internal/scoring"
	"github.com/nao1215/trustguard/internal/semantic"
)

// engine holds the evaluators shared by every analysis of one run.
// The evaluators are stateless, so a single set serves all pipelines.
type engine struct {
	components pipeline.Components
	logger     *slog.Logger
	db         *database.HistoryDB
	closers    []func() error

	// scraper is nil in offline runs.
	scraper *posting.Scraper
}

// newEngine builds the evaluators described by cfg.
func newEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*engine, error) {
	e := &engine{logger: logger}

	weights, err := scoring.DefaultWeights().WithOverrides(cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	var ruleOpts []rules.Option
	if len(cfg.ExtraFeePhrases) > 0 {
		ruleOpts = append(ruleOpts, rules.WithExtraHiddenFeePhrases(cfg.ExtraFeePhrases))
	}
	var repOpts []reputation.Option
	if len(cfg.SuspiciousTLDs) > 0 {
		repOpts = append(repOpts, reputation.WithSuspiciousTLDs(cfg.SuspiciousTLDs))
	}
	if len(cfg.FreeHosts) > 0 {
		repOpts = append(repOpts, reputation.WithFreeHosts(cfg.FreeHosts))
	}

	e.components = pipeline.Components{
		Rules:    rules.NewEvaluator(ruleOpts...),
		Domain:   reputation.NewEvaluator(repOpts...),
		Combiner: scoring.NewCombiner(weights),
	}

	if cfg.SaveToDB {
		db, err := e.openDB(cfg)
		if err != nil {
			return nil, err
		}
		e.components.Store = db
	}

	// Offline runs keep a Guard without adapter: the keyword override
	// still applies and everything else fails open.
	var adapter semantic.Adapter
	endpoint := ""
	if !cfg.Offline {
		client := semantic.NewChatClient(cfg.LLMEndpoint,
			semantic.WithModel(cfg.LLMModel),
			semantic.WithAPIKey(cfg.LLMAPIKey),
		)
		adapter = client
		endpoint = client.Endpoint()

		fetcher, err := newFetcher(cfg)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.scraper = posting.NewScraper(fetcher, posting.WithLogger(logger))
		e.components.Company = e.newCompanyEvaluator(ctx, cfg, fetcher, client)
	}
	e.components.Semantic = semantic.NewGuard(adapter,
		semantic.WithTimeout(cfg.LLMTimeout),
		semantic.WithLogger(logger),
	)

	logger.Debug("engine ready",
		"offline", cfg.Offline,
		"llm_endpoint", endpoint,
		"llm_model", cfg.LLMModel,
		"save", cfg.SaveToDB,
		"steps", e.pipeline().StepNames(),
	)
	return e, nil
}

// newFetcher creates the web client shared by the posting scraper and
// the company evaluator.
func newFetcher(cfg *config.Config) (*fetch.Fetcher, error) {
	httpClient, err := fetch.NewHTTPClient(
		fetch.WithProxy(cfg.ProxyAddress),
		fetch.WithTimeout(cfg.CompanyTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	return fetch.NewFetcher(httpClient,
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	), nil
}

// newCompanyEvaluator wires the website evaluator with a cache. Redis is
// used when configured and reachable, the history database otherwise.
func (e *engine) newCompanyEvaluator(ctx context.Context, cfg *config.Config, fetcher company.PageFetcher, judge company.Judge) company.Evaluator {
	website := company.NewWebsiteEvaluator(fetcher,
		company.WithJudge(judge),
		company.WithTimeout(cfg.CompanyTimeout),
		company.WithLogger(e.logger),
	)

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			rc := cache.NewCompanyCache(client, cfg.CacheTTL)
			e.closers = append(e.closers, rc.Close)
			return company.NewCachedEvaluator(website, rc, e.logger)
		}
		e.logger.Warn("redis unavailable, using history database for company cache", "error", err)
	}

	db, err := e.openDB(cfg)
	if err != nil {
		// Verification still works without a cache.
		e.logger.Warn("company cache disabled", "error", err)
		return website
	}
	return company.NewCachedEvaluator(website, db.CompanyCache(cfg.CacheTTL), e.logger)
}

// scrape fills in the posting text of req from its URL, and the company
// website when none was given.
func (e *engine) scrape(ctx context.Context, req *model.Request) error {
	if e.scraper == nil {
		return config.ErrNoInput
	}
	p, err := e.scraper.Scrape(ctx, req.URL)
	if err != nil {
		return err
	}
	if req.Text, err = checkPosting(p.AnalysisText()); err != nil {
		return err
	}
	if req.CompanyURL == "" {
		req.CompanyURL = p.CompanyURL
	}
	e.logger.Info("posting scraped", "url", p.URL, "company", p.CompanyName, "company_url", req.CompanyURL)
	return nil
}

// openDB opens the history database once per run.
func (e *engine) openDB(cfg *config.Config) (*database.HistoryDB, error) {
	if e.db != nil {
		return e.db, nil
	}
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	e.db = db
	e.closers = append(e.closers, db.Close)
	e.logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// pipeline returns a new pipeline over the shared evaluators.
func (e *engine) pipeline() *pipeline.Pipeline {
	return pipeline.DefaultPipeline(e.components,
		pipeline.WithLogger(e.logger),
		pipeline.WithContinueOnError(true),
	)
}

// Close releases the database and cache connections in reverse order.
func (e *engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
