package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/bond-optimizer/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShardedCache(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		numShards  int
		wantShards int
		wantPer    int
	}{
		{name: "default shards when zero", capacity: 160, numShards: 0, wantShards: 16, wantPer: 10},
		{name: "default shards when negative", capacity: 160, numShards: -1, wantShards: 16, wantPer: 10},
		{name: "rounds up to power of two", capacity: 100, numShards: 3, wantShards: 4, wantPer: 25},
		{name: "exact power of two", capacity: 100, numShards: 8, wantShards: 8, wantPer: 12},
		{name: "tiny capacity keeps one slot per shard", capacity: 2, numShards: 4, wantShards: 4, wantPer: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewShardedCache(tt.capacity, time.Minute, tt.numShards)
			defer sc.Stop()

			assert.Len(t, sc.shards, tt.wantShards)
			assert.Equal(t, uint32(tt.wantShards-1), sc.mask)
			assert.Equal(t, tt.wantPer*tt.wantShards, sc.Metrics().Capacity)
		})
	}
}

func TestShardedCache_GetSetInvalidate(t *testing.T) {
	sc := NewShardedCache(64, time.Minute, 4)
	defer sc.Stop()

	sc.Set("alpha", selectionWithProfit(3))
	sc.Set("beta", selectionWithProfit(4))

	got, ok := sc.Get("alpha")
	require.True(t, ok)
	assert.InDelta(t, 3.0, got.Profit, 1e-9)

	sc.Invalidate("alpha")
	_, ok = sc.Get("alpha")
	assert.False(t, ok)

	_, ok = sc.Get("beta")
	assert.True(t, ok)

	sc.Clear()
	_, ok = sc.Get("beta")
	assert.False(t, ok)
}

func TestShardedCache_SameKeySameShard(t *testing.T) {
	sc := NewShardedCache(64, time.Minute, 8)
	defer sc.Stop()

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("fingerprint-%d", i)
		assert.Same(t, sc.owner(key), sc.owner(key))
	}
}

func TestShardedCache_Metrics(t *testing.T) {
	sc := NewShardedCache(64, time.Minute, 4)
	defer sc.Stop()

	for i := 0; i < 10; i++ {
		sc.Set(fmt.Sprintf("k%d", i), selectionWithProfit(float64(i)))
	}
	sc.Get("k1")
	sc.Get("nope")

	m := sc.Metrics()
	assert.Equal(t, 10, m.Size)
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 64, m.Capacity)
}

func TestShardedCache_Concurrency(t *testing.T) {
	sc := NewShardedCache(1024, time.Minute, 16)
	defer sc.Stop()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				key := fmt.Sprintf("%d/%d", worker, i)
				sc.Set(key, selectionWithProfit(float64(i)))
				sc.Get(key)
			}
		}(w)
	}
	wg.Wait()

	assert.Positive(t, sc.Metrics().Size)
}

func TestShardedCache_ImplementsInterface(t *testing.T) {
	var _ cache.CacheWithMetrics = (*ShardedCache)(nil)
}
