package company

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/trustguard/internal/model"
)

// memoryCache is a test helper that implements Cache.
type memoryCache struct {
	mu     sync.Mutex
	data   map[string]model.CompanyFinding
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]model.CompanyFinding)}
}

func (m *memoryCache) Get(_ context.Context, key string) (model.CompanyFinding, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return model.CompanyFinding{}, false, m.getErr
	}
	f, ok := m.data[key]
	return f, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, f model.CompanyFinding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = f
	return nil
}

// countingEvaluator is a test helper that implements Evaluator.
type countingEvaluator struct {
	calls   int
	finding model.CompanyFinding
	err     error
}

func (c *countingEvaluator) Evaluate(_ context.Context, _ string) (model.CompanyFinding, error) {
	c.calls++
	return c.finding, c.err
}

// schemeEvaluator reports SSL from the scheme of the URL it is given.
type schemeEvaluator struct {
	calls int
}

func (s *schemeEvaluator) Evaluate(_ context.Context, rawURL string) (model.CompanyFinding, error) {
	s.calls++
	secure := strings.HasPrefix(rawURL, "https://")
	return model.CompanyFinding{
		URL:        rawURL,
		Indicators: map[string]bool{IndicatorSSL: secure},
	}, nil
}

func TestCachedEvaluator(t *testing.T) {
	t.Parallel()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		t.Parallel()

		next := &countingEvaluator{finding: model.CompanyFinding{Name: "Acme", TrustScore: 80}}
		c := NewCachedEvaluator(next, newMemoryCache(), nil)

		for _, u := range []string{"https://www.acme.example/about", "acme.example"} {
			got, err := c.Evaluate(context.Background(), u)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got.TrustScore != 80 {
				t.Errorf("TrustScore = %d, want 80", got.TrustScore)
			}
		}
		if next.calls != 1 {
			t.Errorf("expected 1 underlying call, got %d", next.calls)
		}
	})

	t.Run("http and https are cached separately", func(t *testing.T) {
		t.Parallel()

		next := &schemeEvaluator{}
		c := NewCachedEvaluator(next, newMemoryCache(), nil)

		insecure, err := c.Evaluate(context.Background(), "http://acme.example")
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		secure, err := c.Evaluate(context.Background(), "https://acme.example")
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}

		if insecure.Indicators[IndicatorSSL] {
			t.Error("http lookup reported SSL")
		}
		if !secure.Indicators[IndicatorSSL] || secure.URL != "https://acme.example" {
			t.Errorf("https lookup returned %+v", secure)
		}
		if next.calls != 2 {
			t.Errorf("expected 2 underlying calls, got %d", next.calls)
		}
	})

	t.Run("failures are not cached", func(t *testing.T) {
		t.Parallel()

		cache := newMemoryCache()
		next := &countingEvaluator{err: errors.New("down")}
		c := NewCachedEvaluator(next, cache, nil)

		for range 2 {
			if _, err := c.Evaluate(context.Background(), "acme.example"); err == nil {
				t.Error("expected error")
			}
		}
		if next.calls != 2 || len(cache.data) != 0 {
			t.Errorf("calls=%d cached=%d", next.calls, len(cache.data))
		}
	})

	t.Run("cache errors are tolerated", func(t *testing.T) {
		t.Parallel()

		cache := newMemoryCache()
		cache.getErr = errors.New("redis down")
		cache.setErr = errors.New("redis down")
		next := &countingEvaluator{finding: model.CompanyFinding{TrustScore: 60}}

		got, err := NewCachedEvaluator(next, cache, nil).Evaluate(context.Background(), "acme.example")
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if got.TrustScore != 60 {
			t.Errorf("TrustScore = %d, want 60", got.TrustScore)
		}
	})
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://WWW.Acme.Example/careers?x=1", "https://acme.example"},
		{"acme.example", "https://acme.example"},
		{"HTTP://acme.example", "http://acme.example"},
		{"http://acme.example:8080", "http://acme.example:8080"},
		{"", ""},
		{"ftp://acme.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := CacheKey(tt.in); got != tt.want {
				t.Errorf("CacheKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
