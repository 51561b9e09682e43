package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-pricing/core/engine"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
	"quote-pricing/internal/config"
	"quote-pricing/internal/errors"
)

type countingQuoter struct {
	inner engine.Quoter
	calls atomic.Int32
}

func (c *countingQuoter) Quote(ctx context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, error) {
	c.calls.Add(1)
	return c.inner.Quote(ctx, in, table, cal)
}

func bundleInput() types.QuoteInput {
	return types.QuoteInput{
		RevenueRange:              types.Revenue25Kto75K,
		TransactionBand:           types.Transactions100to300,
		Industry:                  "Professional Services",
		ServiceMonthlyBookkeeping: true,
		ServiceTaasMonthly:        true,
	}
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Minute), mr
}

func TestQuoterCachesResults(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(time.Minute),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			inner := &countingQuoter{inner: engine.New()}
			q := NewQuoter(inner, store, "quote:")
			ctx := context.Background()
			table := pricing.Default()
			cal := types.CalendarContext{Month: 6}

			first, hit, err := q.QuoteCached(ctx, bundleInput(), table, cal)
			require.NoError(t, err)
			assert.False(t, hit)

			second, hit, err := q.QuoteCached(ctx, bundleInput(), table, cal)
			require.NoError(t, err)
			assert.True(t, hit)

			assert.Equal(t, int32(1), inner.calls.Load())
			assert.Equal(t, first.Combined, second.Combined)
			assert.Equal(t, types.Totals{MonthlyFee: 625, SetupFee: 825}, second.Combined)
			assert.Equal(t, first.TableVersion, second.TableVersion)
			require.Len(t, second.Discounts, 1)
			assert.Equal(t, int64(275), second.Discounts[0].Amount())
		})
	}
}

func TestQuoterKeyDependsOnMonthAndTable(t *testing.T) {
	q := NewQuoter(engine.New(), NewMemoryStore(0), "quote:")
	table := pricing.Default()

	june, err := q.Key(bundleInput(), table, types.CalendarContext{Month: 6})
	require.NoError(t, err)
	july, err := q.Key(bundleInput(), table, types.CalendarContext{Month: 7})
	require.NoError(t, err)
	assert.NotEqual(t, june, july)
	assert.Contains(t, june, "quote:")

	doc := pricing.DefaultDocument()
	doc.Version = "2025.2"
	doc.QBO.MonthlyFee = 65
	other, err := pricing.FromDocument(doc)
	require.NoError(t, err)
	otherKey, err := q.Key(bundleInput(), other, types.CalendarContext{Month: 6})
	require.NoError(t, err)
	assert.NotEqual(t, june, otherKey)

	again, err := q.Key(bundleInput(), pricing.Default(), types.CalendarContext{Month: 6})
	require.NoError(t, err)
	assert.Equal(t, june, again)
}

func TestQuoterDoesNotCacheErrors(t *testing.T) {
	inner := &countingQuoter{inner: engine.New()}
	store := NewMemoryStore(time.Minute)
	q := NewQuoter(inner, store, "")

	in := bundleInput()
	in.Industry = "Underwater Basket Weaving"

	for i := 0; i < 2; i++ {
		_, err := q.Quote(context.Background(), in, pricing.Default(), types.CalendarContext{Month: 6})
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	}
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Zero(t, store.Len())
}

func TestQuoterSurvivesStoreFailure(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	inner := &countingQuoter{inner: engine.New()}
	q := NewQuoter(inner, store, "quote:")

	result, hit, err := q.QuoteCached(context.Background(), bundleInput(), pricing.Default(), types.CalendarContext{Month: 6})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(625), result.Combined.MonthlyFee)
}

func TestQuoterWithoutStore(t *testing.T) {
	inner := &countingQuoter{inner: engine.New()}
	q := NewQuoter(inner, nil, "")

	for i := 0; i < 2; i++ {
		_, hit, err := q.QuoteCached(context.Background(), bundleInput(), pricing.Default(), types.CalendarContext{Month: 6})
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "k", types.Totals{MonthlyFee: 1}))

	var got types.Totals
	hit, err := store.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(1), got.MonthlyFee)

	now = now.Add(time.Minute)
	hit, err = store.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, store.Len())
}

func TestMemoryStoreKeepsEntryWrittenDuringExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	// The first clock read after expiry lands between the read and write
	// locks of GetJSON; a concurrent writer refreshes the key there.
	refresh := false
	store.now = func() time.Time {
		if refresh {
			refresh = false
			require.NoError(t, store.SetJSON(ctx, "k", types.Totals{MonthlyFee: 2}))
		}
		return now
	}

	require.NoError(t, store.SetJSON(ctx, "k", types.Totals{MonthlyFee: 1}))

	now = now.Add(time.Minute)
	refresh = true

	var got types.Totals
	hit, err := store.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit, "the entry read was expired")
	assert.Equal(t, 1, store.Len(), "the refreshed entry must survive")

	hit, err = store.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(2), got.MonthlyFee)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "k", types.Totals{SetupFee: 9}))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	var got types.Totals
	hit, err := store.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewStore(ctx, config.CacheConfig{Backend: config.CacheNone})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = NewStore(ctx, config.CacheConfig{Backend: config.CacheMemory, TTLSeconds: 5})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	store, err = NewStore(ctx, config.CacheConfig{Backend: config.CacheRedis, RedisURL: "redis://" + mr.Addr(), TTLSeconds: 5})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	require.NoError(t, store.Close())

	_, err = NewStore(ctx, config.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}
