package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quote-pricing/core/determinism"
	"quote-pricing/core/engine"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
	"quote-pricing/internal/config"
	"quote-pricing/internal/logging"
)

// Quoter wraps a Quoter with a result cache.
// Store failures are logged and never change the result.
type Quoter struct {
	inner  engine.Quoter
	store  Store
	prefix string
	log    *zap.Logger
}

var _ engine.Quoter = (*Quoter)(nil)

// NewQuoter creates a caching wrapper. A nil store disables caching.
func NewQuoter(inner engine.Quoter, store Store, prefix string) *Quoter {
	return &Quoter{
		inner:  inner,
		store:  store,
		prefix: prefix,
		log:    logging.Named("cache"),
	}
}

// Key returns the cache key for a quote
func (q *Quoter) Key(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (string, error) {
	fp, err := determinism.InputHash(in, table.Hash(), cal.Month)
	if err != nil {
		return "", err
	}
	return q.prefix + fp, nil
}

// Quote implements engine.Quoter
func (q *Quoter) Quote(ctx context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, error) {
	result, _, err := q.QuoteCached(ctx, in, table, cal)
	return result, err
}

// QuoteCached is Quote that also reports whether the result came from the cache.
// Errors are never cached.
func (q *Quoter) QuoteCached(ctx context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, bool, error) {
	if q.store == nil || table == nil {
		result, err := q.inner.Quote(ctx, in, table, cal)
		return result, false, err
	}

	key, err := q.Key(in, table, cal)
	if err != nil {
		q.log.Warn("cannot derive cache key", zap.Error(err))
		result, err := q.inner.Quote(ctx, in, table, cal)
		return result, false, err
	}

	var cached types.QuoteResult
	hit, err := q.store.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		q.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	case hit:
		q.log.Debug("cache hit", zap.String("key", key))
		return cached, true, nil
	}

	result, err := q.inner.Quote(ctx, in, table, cal)
	if err != nil {
		return result, false, err
	}

	if err := q.store.SetJSON(ctx, key, result); err != nil {
		q.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return result, false, nil
}

// NewStore builds the store selected by configuration; backend none returns nil
func NewStore(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheNone, "":
		return nil, nil
	case config.CacheMemory:
		return NewMemoryStore(cfg.TTL()), nil
	case config.CacheRedis:
		store, err := DialRedis(ctx, cfg.RedisURL, cfg.TTL())
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
