package company

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/nao1215/trustguard/internal/fetch"
	"github.com/nao1215/trustguard/internal/model"
)

// Cache stores company findings by key.
type Cache interface {
	Get(ctx context.Context, key string) (model.CompanyFinding, bool, error)
	Set(ctx context.Context, key string, finding model.CompanyFinding) error
}

// CachedEvaluator serves repeated verifications of the same host from a
// Cache. Failed evaluations are not cached and cache errors never fail
// an evaluation.
type CachedEvaluator struct {
	next   Evaluator
	cache  Cache
	logger *slog.Logger
}

// NewCachedEvaluator wraps next with cache.
func NewCachedEvaluator(next Evaluator, cache Cache, logger *slog.Logger) *CachedEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedEvaluator{next: next, cache: cache, logger: logger}
}

// Evaluate implements Evaluator.
func (c *CachedEvaluator) Evaluate(ctx context.Context, rawURL string) (model.CompanyFinding, error) {
	key := CacheKey(rawURL)
	if key == "" {
		return c.next.Evaluate(ctx, rawURL)
	}

	cached, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("company cache lookup failed", "key", key, "error", err)
	case ok:
		c.logger.Debug("company cache hit", "key", key)
		return cached, nil
	}

	finding, err := c.next.Evaluate(ctx, rawURL)
	if err != nil {
		return finding, err
	}
	if err := c.cache.Set(ctx, key, finding); err != nil {
		c.logger.Warn("company cache store failed", "key", key, "error", err)
	}
	return finding, nil
}

// CacheKey returns the scheme and host a company URL is cached under,
// such as "https://acme.com". A leading "www." is dropped. The scheme is
// kept because http and https sites of one host score differently.
// It returns an empty string for unusable URLs.
func CacheKey(rawURL string) string {
	normalized, err := fetch.NormalizeURL(rawURL)
	if err != nil {
		return ""
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
