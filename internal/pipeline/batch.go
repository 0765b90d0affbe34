package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/trustguard/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of postings analyzed at once.
const DefaultConcurrency = 4

// BatchProcessor analyzes many postings concurrently with a bounded
// number of goroutines.
type BatchProcessor struct {
	// pipelineFactory returns the pipeline used for one posting. It may
	// return the same shared Pipeline every time.
	pipelineFactory func() *Pipeline

	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatchWithCallback analyzes every request and calls callback as
// each analysis finishes. The callback runs on the worker goroutine and
// must be safe for concurrent use. A failed analysis is still passed to
// callback with its Error field set; the returned error is non-nil only
// when ctx was cancelled.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	requests []model.Request,
	callback func(analysis *model.Analysis, index int),
) error {
	bp.logger.Info("starting batch analysis",
		"total", len(requests),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	err := bp.run(ctx, requests, callback)

	bp.logger.Info("batch analysis complete",
		"total", len(requests),
		"elapsed", time.Since(startTime),
	)
	return err
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	requests []model.Request,
	done func(analysis *model.Analysis, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, req := range requests {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			analysis, err := bp.pipelineFactory().Analyze(ctx, req)
			if err != nil {
				bp.logger.Warn("analysis failed",
					"index", i+1,
					"analysis_id", analysis.ID,
					"error", err,
				)
			} else {
				bp.logger.Debug("analysis completed",
					"index", i+1,
					"total", len(requests),
					"analysis_id", analysis.ID,
				)
			}
			done(analysis, i)
			// A failed analysis must not cancel its siblings.
			return nil
		})
	}
	return g.Wait()
}
