package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/trustguard/internal/model"
)

func requests(texts ...string) []model.Request {
	reqs := make([]model.Request, len(texts))
	for i, text := range texts {
		reqs[i] = model.Request{Text: text}
	}
	return reqs
}

// collect runs the batch and gathers the analyses in input order.
func collect(ctx context.Context, bp *BatchProcessor, reqs []model.Request) ([]*model.Analysis, error) {
	// Each callback writes a distinct index.
	results := make([]*model.Analysis, len(reqs))
	err := bp.ProcessBatchWithCallback(ctx, reqs, func(a *model.Analysis, index int) {
		results[index] = a
	})
	return results, err
}

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(5))

		if bp.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0))

		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})
}

func TestBatchProcessorProcessBatchResults(t *testing.T) {
	t.Parallel()

	t.Run("processes all postings", func(t *testing.T) {
		t.Parallel()

		var processedCount atomic.Int32

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "counter",
				doFunc: func(_ context.Context, _ *model.Analysis) error {
					processedCount.Add(1)
					return nil
				},
			})
			return p
		})

		results, err := collect(context.Background(), bp, requests("a", "b", "c"))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
		if processedCount.Load() != 3 {
			t.Errorf("expected 3 processed, got %d", processedCount.Load())
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var maxConcurrent atomic.Int32
		var currentConcurrent atomic.Int32
		var mu sync.Mutex

		bp := NewBatchProcessor(
			func() *Pipeline {
				p := New()
				p.AddStep(&mockStep{
					name: "concurrent-counter",
					doFunc: func(_ context.Context, _ *model.Analysis) error {
						current := currentConcurrent.Add(1)
						mu.Lock()
						if current > maxConcurrent.Load() {
							maxConcurrent.Store(current)
						}
						mu.Unlock()

						time.Sleep(50 * time.Millisecond)

						currentConcurrent.Add(-1)
						return nil
					},
				})
				return p
			},
			WithConcurrency(2),
		)

		reqs := make([]model.Request, 8)
		if _, err := collect(context.Background(), bp, reqs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if maxConcurrent.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", maxConcurrent.Load())
		}
	})

	t.Run("maintains result order", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "noop"})
			return p
		})

		reqs := requests("first", "second", "third")
		results, err := collect(context.Background(), bp, reqs)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, result := range results {
			if result.Request.Text != reqs[i].Text {
				t.Errorf("result[%d]: got %q, expected %q", i, result.Request.Text, reqs[i].Text)
			}
		}
	})

	t.Run("continues after individual failure", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "sometimes-fails",
				doFunc: func(_ context.Context, a *model.Analysis) error {
					if a.Request.Text == "fail" {
						return errors.New("simulated failure")
					}
					return nil
				},
			})
			return p
		})

		results, err := collect(context.Background(), bp, requests("ok", "fail", "ok"))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[1].Error == "" {
			t.Error("expected error in second result")
		}
		if results[0].Error != "" || results[2].Error != "" {
			t.Error("expected other results to succeed")
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var startedCount atomic.Int32

		bp := NewBatchProcessor(
			func() *Pipeline {
				p := New()
				p.AddStep(&mockStep{
					name: "slow-step",
					doFunc: func(ctx context.Context, _ *model.Analysis) error {
						startedCount.Add(1)
						select {
						case <-ctx.Done():
							return ctx.Err()
						case <-time.After(time.Second):
							return nil
						}
					},
				})
				return p
			},
			WithConcurrency(2),
		)

		reqs := make([]model.Request, 10)

		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		_, err := collect(ctx, bp, reqs)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		//nolint:gosec // len(reqs) is small, no overflow risk
		if startedCount.Load() >= int32(len(reqs)) {
			t.Error("expected some postings to not start due to cancellation")
		}
	})
}

func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	received := make(map[int]string)

	bp := NewBatchProcessor(func() *Pipeline {
		p := New()
		p.AddStep(&mockStep{name: "noop"})
		return p
	})

	reqs := requests("first", "second", "third")
	err := bp.ProcessBatchWithCallback(context.Background(), reqs,
		func(a *model.Analysis, index int) {
			mu.Lock()
			received[index] = a.Request.Text
			mu.Unlock()
		},
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(received) != 3 {
		t.Fatalf("expected 3 callbacks, got %d", len(received))
	}
	for i, req := range reqs {
		if received[i] != req.Text {
			t.Errorf("callback %d: got %q, want %q", i, received[i], req.Text)
		}
	}
}
