package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/ignite/touchpoint-analytics/internal/pkg/logger"
)

// Cache stores aggregate results by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (domain.CampaignAnalytics, bool, error)
	Set(ctx context.Context, key string, v domain.CampaignAnalytics) error
}

// Memo memoizes Aggregate. A nil cache disables memoization. Cache errors
// are logged and the result is recomputed; they are never returned.
type Memo struct {
	cache  Cache
	log    *logger.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo wraps Aggregate with cache.
func NewMemo(cache Cache) *Memo {
	return &Memo{cache: cache, log: logger.With("analytics.memo")}
}

// Aggregate returns the cached aggregate for version, computing and storing
// it on a miss. An empty version falls back to a fingerprint of the input.
func (m *Memo) Aggregate(ctx context.Context, version string, recipients []domain.RecipientAnalytics) domain.CampaignAnalytics {
	if m == nil || m.cache == nil {
		return Aggregate(recipients)
	}

	key, err := memoKey(version, recipients)
	if err != nil {
		m.log.Warn("fingerprint failed, skipping cache", "error", err)
		return Aggregate(recipients)
	}

	if v, ok, err := m.cache.Get(ctx, key); err != nil {
		m.log.Warn("cache get failed", "key", key, "error", err)
	} else if ok {
		m.hits.Add(1)
		return v
	}

	m.misses.Add(1)
	v := Aggregate(recipients)
	if err := m.cache.Set(ctx, key, v); err != nil {
		m.log.Warn("cache set failed", "key", key, "error", err)
	}
	return v
}

// Stats reports cache hits and misses since creation.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}

func memoKey(version string, recipients []domain.RecipientAnalytics) (string, error) {
	if version != "" {
		return "v:" + version, nil
	}
	fp, err := Fingerprint(recipients)
	if err != nil {
		return "", err
	}
	return "fp:" + fp, nil
}

// Fingerprint hashes the recipient feed with xxhash over its JSON form.
// Equal feeds (same recipients and events in the same order) hash equally.
func Fingerprint(recipients []domain.RecipientAnalytics) (string, error) {
	h := xxhash.New()
	if err := json.NewEncoder(h).Encode(recipients); err != nil {
		return "", fmt.Errorf("encode feed: %w", err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
