package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/i18n"
)

const (
	limiterShards = 16
	// sweepEvery is how many admissions a shard serves between expired-window sweeps.
	sweepEvery = 256
)

// window counts the requests of one caller since start.
type window struct {
	start time.Time
	used  int
}

type limiterShard struct {
	mu      sync.Mutex
	windows map[string]*window
	calls   int
}

// RateLimiter admits at most limit requests per caller in each fixed window. Callers are
// spread over shards by FNV-1a hash; expired windows are swept lazily, so the limiter
// owns no goroutine.
type RateLimiter struct {
	limit  int
	period time.Duration
	shards [limiterShards]limiterShard
	now    func() time.Time
}

// NewRateLimiter creates a limiter admitting limit requests per period.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{limit: limit, period: period, now: time.Now}
	for i := range rl.shards {
		rl.shards[i].windows = make(map[string]*window)
	}
	return rl
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string { return c.ClientIP() })
}

// UserRateLimit limits requests per authenticated subject, or per IP for anonymous callers.
func (rl *RateLimiter) UserRateLimit() gin.HandlerFunc {
	return rl.middleware(callerKey)
}

func callerKey(c *gin.Context) string {
	if subject := GetSubject(c); subject != "" {
		return "subject:" + subject
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) middleware(key func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		remaining, retryAfter, ok := rl.allow(key(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ok {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		writeError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimit, i18n.ErrKeyRateLimitExceeded)
	}
}

// allow records one request for key. It returns the requests left in the current window
// and, when the request is rejected, how long until the window resets.
func (rl *RateLimiter) allow(key string) (remaining int, retryAfter time.Duration, ok bool) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	shard := &rl.shards[h.Sum32()%limiterShards]
	now := rl.now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	shard.calls++
	if shard.calls%sweepEvery == 0 {
		shard.sweep(now, rl.period)
	}

	w, found := shard.windows[key]
	if !found || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		shard.windows[key] = w
	}

	if w.used >= rl.limit {
		return 0, w.start.Add(rl.period).Sub(now), false
	}
	w.used++
	return rl.limit - w.used, 0, true
}

func (s *limiterShard) sweep(now time.Time, period time.Duration) {
	for key, w := range s.windows {
		if now.Sub(w.start) >= period {
			delete(s.windows, key)
		}
	}
}

// Tracked returns the number of callers with an open window.
func (rl *RateLimiter) Tracked() int {
	total := 0
	for i := range rl.shards {
		s := &rl.shards[i]
		s.mu.Lock()
		total += len(s.windows)
		s.mu.Unlock()
	}
	return total
}
