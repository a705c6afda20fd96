package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/logger"
	"github.com/guttosm/bond-optimizer/internal/service"
	"golang.org/x/sync/errgroup"
)

// AsyncLoggerConfig sizes the queue and the batching of the async logger.
// Zero fields take the DefaultAsyncLoggerConfig value.
type AsyncLoggerConfig struct {
	BufferSize    int
	Workers       int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
}

// DefaultAsyncLoggerConfig returns the production settings.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		Workers:       2,
		BatchSize:     50,
		FlushInterval: 500 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
	}
}

func (c AsyncLoggerConfig) withDefaults() AsyncLoggerConfig {
	d := DefaultAsyncLoggerConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = d.BufferSize
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = d.FlushInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}

// AsyncLoggerStats counts entries by outcome.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// AsyncLogger moves log persistence off the request path. Workers drain a bounded
// queue and write entries in batches of up to BatchSize, or whatever has gathered
// after FlushInterval. A full queue drops the entry instead of blocking the request.
type AsyncLogger struct {
	svc   service.LoggingService
	cfg   AsyncLoggerConfig
	queue chan *model.LogEntry

	mu      sync.RWMutex // guards stopped against concurrent Log calls
	stopped bool
	closing chan struct{}
	workers errgroup.Group

	enqueued, dropped, written, failed atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil when svc is nil.
func NewAsyncLogger(svc service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if svc == nil {
		return nil
	}
	cfg = cfg.withDefaults()
	al := &AsyncLogger{
		svc:     svc,
		cfg:     cfg,
		queue:   make(chan *model.LogEntry, cfg.BufferSize),
		closing: make(chan struct{}),
	}
	for range cfg.Workers {
		al.workers.Go(al.run)
	}
	return al
}

// Log queues entry and reports whether it was accepted.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	al.mu.RLock()
	defer al.mu.RUnlock()

	if !al.stopped {
		select {
		case al.queue <- entry:
			al.enqueued.Add(1)
			return true
		default:
		}
	}
	al.dropped.Add(1)
	return false
}

// Stop refuses new entries, flushes the queue and waits for the workers.
// Later calls return immediately.
func (al *AsyncLogger) Stop() {
	al.mu.Lock()
	if al.stopped {
		al.mu.Unlock()
		return
	}
	al.stopped = true
	close(al.closing)
	al.mu.Unlock()

	_ = al.workers.Wait()
}

func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}

func (al *AsyncLogger) run() error {
	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	var batch []*model.LogEntry
	add := func(e *model.LogEntry) {
		batch = append(batch, e)
		if len(batch) >= al.cfg.BatchSize {
			al.flush(batch)
			batch = nil
		}
	}

	for {
		select {
		case e := <-al.queue:
			add(e)
		case <-ticker.C:
			al.flush(batch)
			batch = nil
		case <-al.closing:
			for {
				select {
				case e := <-al.queue:
					add(e)
				default:
					al.flush(batch)
					return nil
				}
			}
		}
	}
}

func (al *AsyncLogger) flush(batch []*model.LogEntry) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := int64(len(batch))
	if err := al.svc.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(n)
		l := logger.Logger()
		l.Warn().Err(err).Int64("entries", n).Msg("Dropped log batch")
		return
	}
	al.written.Add(n)
}

var globalAsyncLogger atomic.Pointer[AsyncLogger]

// InitAsyncLogger installs the process-wide async logger, stopping any previous one.
func InitAsyncLogger(svc service.LoggingService, cfg AsyncLoggerConfig) {
	if old := globalAsyncLogger.Swap(NewAsyncLogger(svc, cfg)); old != nil {
		old.Stop()
	}
}

// GetAsyncLogger returns the process-wide async logger, or nil.
func GetAsyncLogger() *AsyncLogger {
	return globalAsyncLogger.Load()
}

// StopAsyncLogger flushes and removes the process-wide async logger.
func StopAsyncLogger() {
	if old := globalAsyncLogger.Swap(nil); old != nil {
		old.Stop()
	}
}
