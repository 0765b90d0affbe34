package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/trustguard/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "trustguard.db"

// HistoryDB stores finished analyses and cached company findings in SQLite.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// With CreateIfNotExists unset, a missing database yields ErrDatabaseNotFound.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	h := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := h.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		posting_hash TEXT NOT NULL,
		url TEXT,
		company_url TEXT,
		timestamp TEXT NOT NULL,
		trust_score INTEGER NOT NULL,
		risk_score INTEGER NOT NULL,
		label TEXT NOT NULL,
		combined_trust_score INTEGER,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_url ON analyses(url);
	CREATE INDEX IF NOT EXISTS idx_analyses_hash ON analyses(posting_hash);
	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);

	CREATE TABLE IF NOT EXISTS company_cache (
		cache_key TEXT PRIMARY KEY,
		finding_json TEXT NOT NULL,
		stored_at TEXT NOT NULL
	);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// AnalysisSummary is the listing view of a stored analysis.
type AnalysisSummary struct {
	ID                 string    `json:"id"`
	PostingHash        string    `json:"posting_hash"`
	URL                string    `json:"url,omitempty"`
	CompanyURL         string    `json:"company_url,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
	TrustScore         int       `json:"trust_score"`
	RiskScore          int       `json:"risk_score"`
	Label              string    `json:"label"`
	CombinedTrustScore *int      `json:"combined_trust_score,omitempty"`
}

// SaveAnalysis stores an analysis. Saving the same ID again replaces it.
func (h *HistoryDB) SaveAnalysis(ctx context.Context, a *model.Analysis) error {
	reportJSON, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}

	var combined sql.NullInt64
	if a.Combined != nil {
		combined = sql.NullInt64{Int64: int64(a.Combined.CombinedTrustScore), Valid: true}
	}

	query := `
	INSERT OR REPLACE INTO analyses
		(id, posting_hash, url, company_url, timestamp, trust_score, risk_score, label, combined_trust_score, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = h.db.ExecContext(ctx, query,
		a.ID,
		a.PostingHash,
		a.Request.URL,
		a.Request.CompanyURL,
		formatTimestamp(a.DateAnalyzed),
		a.Score.TrustScore,
		a.Score.RiskScore,
		a.Label(),
		combined,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis loads an analysis by ID.
func (h *HistoryDB) GetAnalysis(ctx context.Context, id string) (*model.Analysis, error) {
	var reportJSON string
	err := h.db.QueryRowContext(ctx, `SELECT report_json FROM analyses WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return decodeAnalysis(reportJSON)
}

// GetPrevious returns the most recent analysis older than a that shares
// its URL, or its posting fingerprint when a has no URL.
func (h *HistoryDB) GetPrevious(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	column, value := "posting_hash", a.PostingHash
	if a.Request.URL != "" {
		column, value = "url", a.Request.URL
	}

	// column is one of two constants above.
	query := `
	SELECT report_json FROM analyses
	WHERE ` + column + ` = ? AND id <> ? AND timestamp < ?
	ORDER BY timestamp DESC
	LIMIT 1
	`
	var reportJSON string
	err := h.db.QueryRowContext(ctx, query,
		value, a.ID, formatTimestamp(a.DateAnalyzed),
	).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no earlier analysis of %s", ErrAnalysisNotFound, value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get previous analysis: %w", err)
	}
	return decodeAnalysis(reportJSON)
}

// ListAnalyses returns the newest analyses first. A non-positive limit
// returns everything.
func (h *HistoryDB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisSummary, error) {
	query := summaryColumns + ` ORDER BY timestamp DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return h.querySummaries(ctx, query, args...)
}

// GetHistory returns the analyses of one posting URL or fingerprint,
// newest first.
func (h *HistoryDB) GetHistory(ctx context.Context, key string) ([]AnalysisSummary, error) {
	query := summaryColumns + ` WHERE url = ? OR posting_hash = ? ORDER BY timestamp DESC`
	return h.querySummaries(ctx, query, key, key)
}

const summaryColumns = `
	SELECT id, posting_hash, url, company_url, timestamp, trust_score, risk_score, label, combined_trust_score
	FROM analyses`

func (h *HistoryDB) querySummaries(ctx context.Context, query string, args ...any) ([]AnalysisSummary, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	results := make([]AnalysisSummary, 0)
	for rows.Next() {
		var (
			s          AnalysisSummary
			url        sql.NullString
			companyURL sql.NullString
			timestamp  string
			combined   sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.PostingHash, &url, &companyURL, &timestamp,
			&s.TrustScore, &s.RiskScore, &s.Label, &combined); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		s.URL = url.String
		s.CompanyURL = companyURL.String
		s.Timestamp = parseTimestamp(timestamp)
		if combined.Valid {
			v := int(combined.Int64)
			s.CombinedTrustScore = &v
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

func decodeAnalysis(reportJSON string) (*model.Analysis, error) {
	var a model.Analysis
	if err := json.Unmarshal([]byte(reportJSON), &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &a, nil
}

// timestampLayout is fixed width so stored timestamps sort as strings.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses s with each known format and returns the zero
// time when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
