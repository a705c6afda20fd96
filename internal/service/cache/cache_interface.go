// Package cache declares the result cache contract used by the optimizer service.
package cache

import "github.com/guttosm/bond-optimizer/internal/domain/model"

// Cache stores solver selections under input fingerprints.
type Cache interface {
	Get(key string) (model.Selection, bool)
	Set(key string, value model.Selection)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
