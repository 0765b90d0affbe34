package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/trustguard/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newAnalysis(url, text string, trust int, at time.Time) *model.Analysis {
	a := model.NewAnalysis(model.Request{URL: url, Text: text})
	a.DateAnalyzed = at
	a.PostingHash = model.PostingFingerprint(text)
	a.Score = model.ScoreResult{RiskScore: 100 - trust, TrustScore: trust}
	a.Reasons = []string{"Vague job description"}
	return a
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("Path() = %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns ErrDatabaseNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("expected ErrDatabaseNotFound, got %v", err)
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		_ = db.Close()
	})
}

func TestSaveAndGetAnalysis(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	a := newAnalysis("https://acme.com/jobs/1", "Backend engineer", 72, time.Now())
	a.Combined = &model.CombinedResult{CombinedTrustScore: 75, Label: model.VerifiedLowRisk}

	if err := db.SaveAnalysis(ctx, a); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := db.GetAnalysis(ctx, a.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.ID != a.ID || got.Score.TrustScore != 72 {
		t.Errorf("unexpected analysis: %+v", got)
	}
	if got.Combined == nil || got.Combined.Label != model.VerifiedLowRisk {
		t.Errorf("combined result not restored: %+v", got.Combined)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "Vague job description" {
		t.Errorf("reasons not restored: %v", got.Reasons)
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := db.GetAnalysis(ctx, "does-not-exist")
		if !errors.Is(err, ErrAnalysisNotFound) {
			t.Errorf("expected ErrAnalysisNotFound, got %v", err)
		}
	})

	t.Run("save again replaces", func(t *testing.T) {
		a.Score.TrustScore = 10
		if err := db.SaveAnalysis(ctx, a); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		list, err := db.ListAnalyses(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(list) != 1 || list[0].TrustScore != 10 {
			t.Errorf("expected one replaced row, got %+v", list)
		}
	})
}

func TestListAndHistory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := newAnalysis("https://acme.com/jobs/1", "posting one", 80, base)
	second := newAnalysis("https://acme.com/jobs/1", "posting one edited", 40, base.Add(time.Hour))
	other := newAnalysis("", "pasted text", 20, base.Add(2*time.Hour))
	other.Combined = &model.CombinedResult{CombinedTrustScore: 25}

	for _, a := range []*model.Analysis{first, second, other} {
		if err := db.SaveAnalysis(ctx, a); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
	}

	t.Run("list newest first", func(t *testing.T) {
		list, err := db.ListAnalyses(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 analyses, got %d", len(list))
		}
		if list[0].ID != other.ID || list[2].ID != first.ID {
			t.Errorf("unexpected order: %v, %v, %v", list[0].ID, list[1].ID, list[2].ID)
		}
		if list[0].CombinedTrustScore == nil || *list[0].CombinedTrustScore != 25 {
			t.Errorf("combined score not listed: %+v", list[0])
		}
		if list[1].CombinedTrustScore != nil {
			t.Errorf("expected nil combined score, got %d", *list[1].CombinedTrustScore)
		}
		if !list[2].Timestamp.Equal(base) {
			t.Errorf("timestamp = %v, want %v", list[2].Timestamp, base)
		}
	})

	t.Run("list with limit", func(t *testing.T) {
		list, err := db.ListAnalyses(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("expected 2 analyses, got %d", len(list))
		}
	})

	t.Run("history by url", func(t *testing.T) {
		list, err := db.GetHistory(ctx, "https://acme.com/jobs/1")
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("expected 2 analyses, got %d", len(list))
		}
	})

	t.Run("history by fingerprint", func(t *testing.T) {
		list, err := db.GetHistory(ctx, other.PostingHash)
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(list) != 1 || list[0].ID != other.ID {
			t.Errorf("unexpected history: %+v", list)
		}
	})

	t.Run("previous by url", func(t *testing.T) {
		prev, err := db.GetPrevious(ctx, second)
		if err != nil {
			t.Fatalf("failed to get previous: %v", err)
		}
		if prev.ID != first.ID {
			t.Errorf("previous = %s, want %s", prev.ID, first.ID)
		}
	})

	t.Run("no previous analysis", func(t *testing.T) {
		_, err := db.GetPrevious(ctx, first)
		if !errors.Is(err, ErrAnalysisNotFound) {
			t.Errorf("expected ErrAnalysisNotFound, got %v", err)
		}
	})
}

func TestCompanyCache(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := db.CompanyCache(time.Hour)
	cache.now = func() time.Time { return now }

	finding := model.CompanyFinding{
		Name:        "Acme",
		TrustScore:  71,
		Indicators:  map[string]bool{"has_ssl": true},
		RiskFactors: []string{"No privacy policy found"},
	}

	if _, ok, err := cache.Get(ctx, "acme.com"); err != nil || ok {
		t.Fatalf("expected miss on empty cache, got ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, "acme.com", finding); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	got, ok, err := cache.Get(ctx, "acme.com")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.TrustScore != 71 || !got.Indicators["has_ssl"] {
		t.Errorf("unexpected finding: %+v", got)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := cache.Get(ctx, "acme.com"); ok {
		t.Error("expected expired entry to miss")
	}
}
