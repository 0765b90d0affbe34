package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nao1215/trustguard/internal/company"
	"github.com/nao1215/trustguard/internal/model"
	"github.com/nao1215/trustguard/internal/reason"
	"github.com/nao1215/trustguard/internal/rules"
	"github.com/nao1215/trustguard/internal/scoring"
	"golang.org/x/sync/errgroup"
)

// RuleEvaluator runs the local pattern checks on posting text.
type RuleEvaluator interface {
	Evaluate(text string) model.RuleFindings
}

// DomainEvaluator scores the posting URL.
type DomainEvaluator interface {
	Evaluate(rawURL string) model.DomainFinding
}

// SemanticEvaluator asks a language model about posting text. It never
// fails; problems are reported through SemanticFinding.Error.
type SemanticEvaluator interface {
	Evaluate(ctx context.Context, text, userContext string) model.SemanticFinding
}

// Store persists finished analyses.
type Store interface {
	SaveAnalysis(ctx context.Context, analysis *model.Analysis) error
}

// NormalizeStep cleans up the request text and fingerprints the posting.
type NormalizeStep struct{}

// NewNormalizeStep creates a NormalizeStep.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do executes the normalize step.
func (s *NormalizeStep) Do(_ context.Context, analysis *model.Analysis) error {
	req := &analysis.Request
	req.Text = rules.Normalize(req.Text)
	req.Context = strings.TrimSpace(req.Context)
	req.URL = strings.TrimSpace(req.URL)
	req.CompanyURL = strings.TrimSpace(req.CompanyURL)
	analysis.PostingHash = model.PostingFingerprint(req.Text)
	return nil
}

// RulesStep runs the rule heuristics.
type RulesStep struct {
	evaluator RuleEvaluator
}

// NewRulesStep creates a RulesStep.
func NewRulesStep(evaluator RuleEvaluator) *RulesStep {
	return &RulesStep{evaluator: evaluator}
}

// Name returns the step name.
func (s *RulesStep) Name() string {
	return "rules"
}

// Do executes the rules step.
func (s *RulesStep) Do(_ context.Context, analysis *model.Analysis) error {
	analysis.Rules = s.evaluator.Evaluate(analysis.Request.Text)
	return nil
}

// DomainStep checks the reputation of the posting URL.
type DomainStep struct {
	evaluator DomainEvaluator
}

// NewDomainStep creates a DomainStep.
func NewDomainStep(evaluator DomainEvaluator) *DomainStep {
	return &DomainStep{evaluator: evaluator}
}

// Name returns the step name.
func (s *DomainStep) Name() string {
	return "domain"
}

// Do executes the domain step.
func (s *DomainStep) Do(_ context.Context, analysis *model.Analysis) error {
	analysis.Domain = s.evaluator.Evaluate(analysis.Request.URL)
	return nil
}

// ExternalStep makes the semantic and company calls concurrently.
// Neither call can fail the analysis: a semantic failure is carried in
// the finding and a company failure in Analysis.CompanyError.
type ExternalStep struct {
	semantic SemanticEvaluator

	// company is nil when company verification is disabled.
	company company.Evaluator

	logger *slog.Logger
}

// ExternalStepOption configures an ExternalStep.
type ExternalStepOption func(*ExternalStep)

// WithCompanyEvaluator enables company verification.
func WithCompanyEvaluator(e company.Evaluator) ExternalStepOption {
	return func(s *ExternalStep) {
		s.company = e
	}
}

// WithExternalLogger sets the logger for the external step.
func WithExternalLogger(logger *slog.Logger) ExternalStepOption {
	return func(s *ExternalStep) {
		s.logger = logger
	}
}

// NewExternalStep creates an ExternalStep.
func NewExternalStep(semantic SemanticEvaluator, opts ...ExternalStepOption) *ExternalStep {
	s := &ExternalStep{
		semantic: semantic,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ExternalStep) Name() string {
	return "external"
}

// Do executes the external step.
func (s *ExternalStep) Do(ctx context.Context, analysis *model.Analysis) error {
	var (
		semantic     model.SemanticFinding
		finding      model.CompanyFinding
		companyErr   error
		checkCompany = s.company != nil && analysis.Request.CompanyURL != ""
	)

	// Each goroutine writes only its own variables and always returns nil,
	// so one call cannot cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		semantic = s.semantic.Evaluate(ctx, analysis.Request.Text, analysis.Request.Context)
		return nil
	})
	if checkCompany {
		g.Go(func() error {
			finding, companyErr = s.company.Evaluate(ctx, analysis.Request.CompanyURL)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors

	analysis.Semantic = semantic
	if !checkCompany {
		return nil
	}
	if companyErr != nil {
		s.logger.Warn("company verification failed",
			"analysis_id", analysis.ID,
			"company_url", analysis.Request.CompanyURL,
			"error", companyErr,
		)
		analysis.CompanyError = companyErr.Error()
		return nil
	}
	analysis.Company = &finding
	return nil
}

// ScoreStep combines the findings into scores and the recommended action.
type ScoreStep struct {
	combiner *scoring.Combiner
}

// NewScoreStep creates a ScoreStep. A nil combiner uses the default weights.
func NewScoreStep(combiner *scoring.Combiner) *ScoreStep {
	if combiner == nil {
		combiner = scoring.NewCombiner(nil)
	}
	return &ScoreStep{combiner: combiner}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do executes the score step.
func (s *ScoreStep) Do(_ context.Context, analysis *model.Analysis) error {
	analysis.Score = s.combiner.Combine(analysis.Rules, analysis.Semantic, analysis.Domain.Deduction)
	analysis.Combined = nil
	if analysis.Company != nil {
		combined := s.combiner.Blend(analysis.Score, analysis.Company.TrustScore)
		analysis.Combined = &combined
	}
	analysis.RecommendedAction = scoring.RecommendedAction(analysis.Score, analysis.Combined)
	return nil
}

// ReasonStep builds the reason list.
type ReasonStep struct{}

// NewReasonStep creates a ReasonStep.
func NewReasonStep() *ReasonStep {
	return &ReasonStep{}
}

// Name returns the step name.
func (s *ReasonStep) Name() string {
	return "reasons"
}

// Do executes the reason step.
func (s *ReasonStep) Do(_ context.Context, analysis *model.Analysis) error {
	analysis.Reasons = reason.Aggregate(reason.Input{
		Rules:        analysis.Rules,
		Domain:       analysis.Domain,
		Semantic:     analysis.Semantic,
		Company:      analysis.Company,
		CompanyError: analysis.CompanyError,
	})
	return nil
}

// SaveStep stores the finished analysis.
type SaveStep struct {
	store Store
}

// NewSaveStep creates a SaveStep.
func NewSaveStep(store Store) *SaveStep {
	return &SaveStep{store: store}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the save step.
func (s *SaveStep) Do(ctx context.Context, analysis *model.Analysis) error {
	return s.store.SaveAnalysis(ctx, analysis)
}

// Components are the evaluators shared by every analysis. All of them
// are stateless per call and safe for concurrent use.
type Components struct {
	Rules    RuleEvaluator
	Domain   DomainEvaluator
	Semantic SemanticEvaluator

	// Company may be nil to disable company verification.
	Company company.Evaluator

	// Combiner may be nil to use the default weights.
	Combiner *scoring.Combiner

	// Store may be nil to skip persistence.
	Store Store
}

// DefaultPipeline creates the standard analysis pipeline:
// normalize, rules, domain, external, score, reasons and optionally save.
func DefaultPipeline(c Components, opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewNormalizeStep(),
		NewRulesStep(c.Rules),
		NewDomainStep(c.Domain),
		NewExternalStep(c.Semantic,
			WithCompanyEvaluator(c.Company),
			WithExternalLogger(p.logger),
		),
		NewScoreStep(c.Combiner),
		NewReasonStep(),
	)
	if c.Store != nil {
		p.AddStep(NewSaveStep(c.Store))
	}
	return p
}
