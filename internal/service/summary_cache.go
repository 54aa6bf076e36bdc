package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sportclub/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const summaryCacheTTL = 60 * time.Second

// summaryCache is a short-lived redis cache for the daily summary read.
// Writers to the ledger (movements, cash payments) invalidate the day's key.
// A nil client disables caching entirely (unit test mode).
type summaryCache struct {
	rdb *redis.Client
}

func newSummaryCache(rdb *redis.Client) *summaryCache {
	return &summaryCache{rdb: rdb}
}

func summaryKey(orgID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("summary:%s:%s", orgID, date.Format("2006-01-02"))
}

func (c *summaryCache) Get(ctx context.Context, orgID uuid.UUID, date time.Time) *dto.DailySummaryResponse {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, summaryKey(orgID, date)).Bytes()
	if err != nil {
		return nil
	}
	var summary dto.DailySummaryResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

func (c *summaryCache) Set(ctx context.Context, orgID uuid.UUID, date time.Time, summary *dto.DailySummaryResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	// Best-effort: a failed cache write only costs a recomputation
	_ = c.rdb.Set(ctx, summaryKey(orgID, date), raw, summaryCacheTTL).Err()
}

func (c *summaryCache) Invalidate(ctx context.Context, orgID uuid.UUID, date time.Time) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, summaryKey(orgID, date)).Err()
}
