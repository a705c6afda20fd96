package repository

import (
	"context"
	"errors"

	"github.com/guttosm/bond-optimizer/internal/circuitbreaker"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// BreakerLogs routes a LogStore through a circuit breaker. While the circuit is open,
// writes are dropped without error and reads return circuitbreaker.ErrCircuitOpen.
type BreakerLogs struct {
	store LogStore
	cb    *circuitbreaker.CircuitBreaker
}

// NewBreakerLogs guards store with cb.
func NewBreakerLogs(store LogStore, cb *circuitbreaker.CircuitBreaker) *BreakerLogs {
	return &BreakerLogs{store: store, cb: cb}
}

func (b *BreakerLogs) Create(ctx context.Context, entry *model.LogEntry) error {
	return b.write(ctx, func() error { return b.store.Create(ctx, entry) })
}

func (b *BreakerLogs) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return b.write(ctx, func() error { return b.store.CreateMany(ctx, entries) })
}

func (b *BreakerLogs) Query(ctx context.Context, q model.LogQueryOptions) ([]model.LogEntry, error) {
	return read(ctx, b.cb, func() ([]model.LogEntry, error) { return b.store.Query(ctx, q) })
}

func (b *BreakerLogs) Count(ctx context.Context, q model.LogQueryOptions) (int64, error) {
	return read(ctx, b.cb, func() (int64, error) { return b.store.Count(ctx, q) })
}

// Breaker is exposed for readiness reporting.
func (b *BreakerLogs) Breaker() *circuitbreaker.CircuitBreaker {
	return b.cb
}

func (b *BreakerLogs) write(ctx context.Context, fn func() error) error {
	if err := b.cb.Execute(ctx, fn); !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return err
	}
	return nil
}

func read[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}
