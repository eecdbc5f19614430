package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/touchpoint-analytics/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFeed() []domain.RecipientAnalytics {
	return []domain.RecipientAnalytics{
		recipient("a", 90, event("1", domain.EventInviteSent, day("2024-04-17")), event("2", domain.EventGiftDelivered, day("2024-04-19"))),
		recipient("b", 45, event("3", domain.EventInviteSent, day("2024-04-17"))),
	}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (domain.CampaignAnalytics, bool, error) {
	return domain.CampaignAnalytics{}, false, errors.New("boom")
}

func (failingCache) Set(context.Context, string, domain.CampaignAnalytics) error {
	return errors.New("boom")
}

func TestMemoHitsOnSameVersion(t *testing.T) {
	ctx := context.Background()
	m := NewMemo(NewMemoryCache(time.Minute, 10))
	feed := sampleFeed()

	first := m.Aggregate(ctx, "v1", feed)
	second := m.Aggregate(ctx, "v1", nil) // cached by version, input ignored
	assert.Equal(t, first, second)

	hits, misses := m.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	third := m.Aggregate(ctx, "v2", nil)
	assert.Zero(t, third.RecipientCount)
}

func TestMemoFingerprintWithoutVersion(t *testing.T) {
	ctx := context.Background()
	m := NewMemo(NewMemoryCache(0, 0))
	m.Aggregate(ctx, "", sampleFeed())
	m.Aggregate(ctx, "", sampleFeed())
	hits, misses := m.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	changed := sampleFeed()
	changed[1].Summary.EngagementScore = 10
	m.Aggregate(ctx, "", changed)
	_, misses = m.Stats()
	assert.Equal(t, int64(2), misses)
}

func TestMemoMatchesAggregate(t *testing.T) {
	m := NewMemo(NewMemoryCache(time.Minute, 10))
	assert.Equal(t, Aggregate(sampleFeed()), m.Aggregate(context.Background(), "v", sampleFeed()))
}

func TestMemoCacheFailureFallsThrough(t *testing.T) {
	m := NewMemo(failingCache{})
	got := m.Aggregate(context.Background(), "v1", sampleFeed())
	assert.Equal(t, Aggregate(sampleFeed()), got)
}

func TestMemoNilCache(t *testing.T) {
	var m *Memo
	assert.Equal(t, 2, m.Aggregate(context.Background(), "x", sampleFeed()).RecipientCount)
	assert.Equal(t, 2, NewMemo(nil).Aggregate(context.Background(), "x", sampleFeed()).RecipientCount)
}

func TestFingerprintStable(t *testing.T) {
	a, err := Fingerprint(sampleFeed())
	require.NoError(t, err)
	b, err := Fingerprint(sampleFeed())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 10)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", Aggregate(sampleFeed())))
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "oldest", domain.CampaignAnalytics{RecipientCount: 1})
	now = now.Add(time.Second)
	c.Set(ctx, "middle", domain.CampaignAnalytics{RecipientCount: 2})
	now = now.Add(time.Second)
	c.Set(ctx, "newest", domain.CampaignAnalytics{RecipientCount: 3})

	assert.Equal(t, 2, c.Len())
	_, ok, _ := c.Get(ctx, "oldest")
	assert.False(t, ok)
	v, ok, _ := c.Get(ctx, "newest")
	assert.True(t, ok)
	assert.Equal(t, 3, v.RecipientCount)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0, 0)
	c.Set(ctx, "k", Aggregate(sampleFeed()))

	v, _, _ := c.Get(ctx, "k")
	v.StageBreakdown["Gift Delivered"] = 1000
	v.DailyActivity[0].Count = 1000

	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, 1, again.StageBreakdown["Gift Delivered"])
	assert.Equal(t, 2, again.DailyActivity[0].Count)
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	c := NewRedisCache(client, 5*time.Minute)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	want := Aggregate(sampleFeed())
	require.NoError(t, c.Set(ctx, "v1", want))
	assert.True(t, mr.Exists(RedisKeyPrefix+"v1"))
	assert.Equal(t, 5*time.Minute, mr.TTL(RedisKeyPrefix+"v1"))

	got, ok, err := c.Get(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(6 * time.Minute)
	_, ok, err = c.Get(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheCorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Set(RedisKeyPrefix+"bad", "{not json")
	_, ok, err := NewRedisCache(client, 0).Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestMemoWithRedis(t *testing.T) {
	_, client := setupTestRedis(t)
	m := NewMemo(NewRedisCache(client, time.Minute))
	ctx := context.Background()

	m.Aggregate(ctx, "feed-7", sampleFeed())
	got := m.Aggregate(ctx, "feed-7", nil)
	assert.Equal(t, 2, got.RecipientCount)
	hits, _ := m.Stats()
	assert.Equal(t, int64(1), hits)
}

func TestMemoRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	m := NewMemo(NewRedisCache(client, time.Minute))
	assert.Equal(t, 2, m.Aggregate(context.Background(), "v", sampleFeed()).RecipientCount)
}
