package calculation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ConversionCache memoizes currency conversions. Conversions are pure, so a
// lost or duplicated entry only costs a recomputation.
type ConversionCache interface {
	Get(key string) (decimal.Decimal, bool)
	Set(key string, value decimal.Decimal)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(string) (decimal.Decimal, bool) { return decimal.Zero, false }
func (NopCache) Set(string, decimal.Decimal)        {}

// MemoryCache is a process-local cache, safe for concurrent use.
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(key string) (decimal.Decimal, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return decimal.Zero, false
	}
	return v.(decimal.Decimal), true
}

func (c *MemoryCache) Set(key string, value decimal.Decimal) {
	c.entries.Store(key, value)
}

// Len returns the number of cached conversions.
func (c *MemoryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

const redisKeyPrefix = "valuation:fx:"

// RedisCache shares conversions between processes. Redis failures degrade to
// cache misses.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
	logger Logger
}

// NewRedisCache connects lazily to the Redis server at addr. A zero ttl keeps
// entries until evicted.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		MaxRetries:  1,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
		ttl:    ttl,
		logger: NopLogger{},
	}
}

// SetLogger sets the logger used to report Redis failures.
func (r *RedisCache) SetLogger(l Logger) {
	r.logger = orNop(l)
}

func (r *RedisCache) Get(key string) (decimal.Decimal, bool) {
	val, err := r.client.Get(r.ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warnf("conversion cache read %s: %v", key, err)
		}
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		r.logger.Warnf("conversion cache entry %s is not a decimal: %v", key, err)
		return decimal.Zero, false
	}
	return d, true
}

func (r *RedisCache) Set(key string, value decimal.Decimal) {
	if err := r.client.Set(r.ctx, redisKeyPrefix+key, value.String(), r.ttl).Err(); err != nil {
		r.logger.Warnf("conversion cache write %s: %v", key, err)
	}
}

// Close releases the Redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
