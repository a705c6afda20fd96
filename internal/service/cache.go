// Package service contains the business logic of the bond optimizer.
package service

import (
	"container/list"
	"sync"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/metrics"
	"github.com/guttosm/bond-optimizer/internal/service/cache"
)

const sweepInterval = time.Minute

type cached struct {
	key     string
	sel     model.Selection
	expires time.Time
}

// ttlCache keeps the most recently used selections up to capacity. Entries also
// expire ttl after their last write; expired entries are dropped on lookup and by
// a periodic sweep.
type ttlCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	order  *list.List // front is most recent
	byKey  map[string]*list.Element
	counts cache.Metrics

	done     chan struct{}
	stopOnce sync.Once
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		order:    list.New(),
		byKey:    make(map[string]*list.Element, capacity),
		done:     make(chan struct{}),
	}
	metrics.AddCacheCapacity(capacity)
	go c.sweepLoop()
	return c
}

func (c *ttlCache) Get(key string) (model.Selection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	switch {
	case !ok:
		c.counts.Misses++
		metrics.RecordCacheOperation("get", "miss")
		return model.Selection{}, false
	case !c.now().Before(el.Value.(*cached).expires):
		c.drop(el)
		c.counts.Misses++
		metrics.RecordCacheOperation("get", "expired")
		return model.Selection{}, false
	}

	c.order.MoveToFront(el)
	c.counts.Hits++
	metrics.RecordCacheOperation("get", "hit")
	return cloneSelection(el.Value.(*cached).sel), true
}

func (c *ttlCache) Set(key string, sel model.Selection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cached{key: key, sel: cloneSelection(sel), expires: c.now().Add(c.ttl)}
	if el, ok := c.byKey[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
	} else {
		c.byKey[key] = c.order.PushFront(entry)
		metrics.AddCacheEntries(1)
	}
	metrics.RecordCacheOperation("set", "success")

	for c.order.Len() > c.capacity {
		c.drop(c.order.Back())
		c.counts.Evictions++
		metrics.RecordCacheOperation("evict", "capacity")
	}
}

func (c *ttlCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.byKey[key]; ok {
		c.drop(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every entry and zeroes the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	metrics.AddCacheEntries(-c.order.Len())
	c.order.Init()
	clear(c.byKey)
	c.counts = cache.Metrics{}
	metrics.RecordCacheOperation("clear", "success")
}

// Stop ends the sweep and releases every entry.
func (c *ttlCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		metrics.AddCacheEntries(-c.order.Len())
		metrics.AddCacheCapacity(-c.capacity)
		c.order.Init()
		clear(c.byKey)
		c.mu.Unlock()
	})
}

func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.counts
	m.Size = c.order.Len()
	m.Capacity = c.capacity
	return m
}

func (c *ttlCache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep walks from the least recently used end and drops expired entries.
func (c *ttlCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*cached).expires) {
			c.drop(el)
		}
		el = prev
	}
}

func (c *ttlCache) drop(el *list.Element) {
	delete(c.byKey, el.Value.(*cached).key)
	c.order.Remove(el)
	metrics.AddCacheEntries(-1)
}

// cloneSelection copies the asset slice so callers cannot mutate cached state.
func cloneSelection(s model.Selection) model.Selection {
	if s.Assets != nil {
		s.Assets = append(make([]model.Asset, 0, len(s.Assets)), s.Assets...)
	}
	return s
}
