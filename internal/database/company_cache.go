package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/trustguard/internal/model"
)

// DefaultCompanyCacheTTL is how long a stored company finding stays valid.
const DefaultCompanyCacheTTL = 24 * time.Hour

// CompanyCache keeps company findings in the history database. It is
// used when no Redis server is configured.
type CompanyCache struct {
	h   *HistoryDB
	ttl time.Duration
	now func() time.Time
}

// CompanyCache returns a company finding cache backed by h. A
// non-positive ttl selects DefaultCompanyCacheTTL.
func (h *HistoryDB) CompanyCache(ttl time.Duration) *CompanyCache {
	if ttl <= 0 {
		ttl = DefaultCompanyCacheTTL
	}
	return &CompanyCache{h: h, ttl: ttl, now: time.Now}
}

// Get returns the finding stored under key. Expired entries are misses.
func (c *CompanyCache) Get(ctx context.Context, key string) (model.CompanyFinding, bool, error) {
	var (
		findingJSON string
		storedAt    string
	)
	err := c.h.db.QueryRowContext(ctx,
		`SELECT finding_json, stored_at FROM company_cache WHERE cache_key = ?`, key,
	).Scan(&findingJSON, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CompanyFinding{}, false, nil
	}
	if err != nil {
		return model.CompanyFinding{}, false, fmt.Errorf("failed to read company cache: %w", err)
	}

	if c.now().Sub(parseTimestamp(storedAt)) > c.ttl {
		return model.CompanyFinding{}, false, nil
	}

	var finding model.CompanyFinding
	if err := json.Unmarshal([]byte(findingJSON), &finding); err != nil {
		return model.CompanyFinding{}, false, fmt.Errorf("failed to parse cached company finding: %w", err)
	}
	return finding, true, nil
}

// Set stores finding under key, replacing any earlier entry.
func (c *CompanyCache) Set(ctx context.Context, key string, finding model.CompanyFinding) error {
	findingJSON, err := json.Marshal(finding)
	if err != nil {
		return fmt.Errorf("failed to serialize company finding: %w", err)
	}
	_, err = c.h.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO company_cache (cache_key, finding_json, stored_at) VALUES (?, ?, ?)`,
		key, string(findingJSON), formatTimestamp(c.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to write company cache: %w", err)
	}
	return nil
}
