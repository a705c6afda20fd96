package service

import (
	"hash/fnv"
	"math/bits"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/service/cache"
)

const defaultCacheShards = 16

// ShardedCache routes each fingerprint to one of a power-of-two number of ttlCache
// shards, so lookups for different inputs rarely contend on the same lock.
type ShardedCache struct {
	shards []*ttlCache
	mask   uint32
}

// NewShardedCache splits capacity evenly over n shards. n is rounded up to a power
// of two; non-positive values select 16. Every shard holds at least one entry.
func NewShardedCache(capacity int, ttl time.Duration, n int) *ShardedCache {
	if n <= 0 {
		n = defaultCacheShards
	}
	n = 1 << bits.Len(uint(n-1))

	sc := &ShardedCache{shards: make([]*ttlCache, n), mask: uint32(n - 1)}
	for i := range sc.shards {
		sc.shards[i] = newTTLCache(max(capacity/n, 1), ttl)
	}
	return sc
}

func (sc *ShardedCache) owner(key string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.mask]
}

func (sc *ShardedCache) Get(key string) (model.Selection, bool) { return sc.owner(key).Get(key) }

func (sc *ShardedCache) Set(key string, sel model.Selection) { sc.owner(key).Set(key, sel) }

func (sc *ShardedCache) Invalidate(key string) { sc.owner(key).Invalidate(key) }

func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics sums the counters of every shard.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
