package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/trustguard/internal/model"
)

// Step is one stage of an analysis. Steps run in sequence and each one
// reads what earlier steps stored on the analysis.
type Step interface {
	// Do executes the step. Failures that still leave a usable result
	// (a model outage, an unreachable company site) are recorded on the
	// analysis and nil is returned.
	Do(ctx context.Context, analysis *model.Analysis) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs an ordered list of steps against an analysis.
// A Pipeline holds no per-analysis state and may be shared between
// goroutines once all steps have been added.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps executing later steps after one fails.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. The error is still recorded on the analysis.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence. Cancellation is checked before
// each step; steps are expected to honor ctx themselves while running.
//
// It returns the first step error unless continueOnError is set, in
// which case the last error is only recorded on the analysis.
func (p *Pipeline) Execute(ctx context.Context, analysis *model.Analysis) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"analysis_id", analysis.ID,
				"reason", ctx.Err(),
			)
			analysis.Error = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"analysis_id", analysis.ID,
		)

		if err := step.Do(ctx, analysis); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"analysis_id", analysis.ID,
				"error", err,
			)
			analysis.Error = err.Error()
			if !p.continueOnError {
				return err
			}
		}

		analysis.Steps = append(analysis.Steps, step.Name())
	}
	return nil
}

// Analyze creates a fresh analysis for req and executes the pipeline on it.
// The analysis is returned even when an error occurs.
func (p *Pipeline) Analyze(ctx context.Context, req model.Request) (*model.Analysis, error) {
	analysis := model.NewAnalysis(req)
	err := p.Execute(ctx, analysis)
	return analysis, err
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
