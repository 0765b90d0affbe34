package semantic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/trustguard/internal/model"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 30 * time.Second

// failSecureScore is the model score forced by the keyword override.
const failSecureScore = 100

// Adapter asks a language model to judge posting text.
// userContext carries optional background such as the applicant's profile.
type Adapter interface {
	Evaluate(ctx context.Context, text, userContext string) (model.SemanticFinding, error)
}

// Guard wraps an Adapter with the fail-secure override and the
// fail-open error handling. A Guard is safe for concurrent use.
type Guard struct {
	adapter Adapter
	timeout time.Duration
	logger  *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithTimeout sets the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) GuardOption {
	return func(g *Guard) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger sets the logger used to report adapter failures.
func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGuard creates a Guard. A nil adapter is allowed: every call that
// reaches the model then fails open with ErrNoAdapter.
func NewGuard(adapter Adapter, opts ...GuardOption) *Guard {
	g := &Guard{
		adapter: adapter,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate returns the semantic finding for text.
//
// Empty text yields a zero finding without calling the model. Text that
// mentions "fake" or "scam" yields the fail-secure finding without
// calling the model. Any adapter failure yields a zero score with Error set.
func (g *Guard) Evaluate(ctx context.Context, text, userContext string) (finding model.SemanticFinding) {
	if strings.TrimSpace(text) == "" {
		return model.SemanticFinding{}
	}
	if HasScamKeyword(text) {
		return FailSecureFinding()
	}
	if g.adapter == nil {
		return failOpen(ErrNoAdapter)
	}

	defer func() {
		if r := recover(); r != nil {
			finding = failOpen(fmt.Errorf("model adapter panicked: %v", r))
			g.logger.Error("semantic analysis failed", "error", finding.Error)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	result, err := g.adapter.Evaluate(ctx, text, userContext)
	if err != nil {
		g.logger.Warn("semantic analysis failed, continuing with rules only",
			"error", err, "elapsed", time.Since(start))
		return failOpen(err)
	}

	result.LLMScore = min(max(result.LLMScore, 0), 100)
	g.logger.Debug("semantic analysis completed",
		"llm_score", result.LLMScore, "elapsed", time.Since(start))
	return result
}

// HasScamKeyword reports whether text literally calls itself fake or a scam.
func HasScamKeyword(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "fake") || strings.Contains(lower, "scam")
}

// FailSecureFinding is the finding forced by HasScamKeyword.
func FailSecureFinding() model.SemanticFinding {
	return model.SemanticFinding{
		HiddenFees: true,
		LLMScore:   failSecureScore,
	}
}

func failOpen(err error) model.SemanticFinding {
	return model.SemanticFinding{LLMScore: 0, Error: err.Error()}
}
