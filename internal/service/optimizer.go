package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/logger"
	"github.com/guttosm/bond-optimizer/internal/metrics"
	"github.com/guttosm/bond-optimizer/internal/service/cache"
	"github.com/guttosm/bond-optimizer/internal/solver"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxFunds caps the budget.
	DefaultMaxFunds = 100000
	// DefaultBruteForceLimit is the largest asset count served by the exhaustive solvers.
	DefaultBruteForceLimit = 22
	// DefaultMaxTableCells bounds (assets+1)*(funds+1), about 400 MB of float64 cells.
	DefaultMaxTableCells = 50_000_000
)

var (
	// ErrFundsTooLarge is returned when funds exceed the configured maximum.
	ErrFundsTooLarge = errors.New("funds exceed the configured maximum")
	// ErrTableTooLarge is returned when the dynamic programming table would exceed the cell limit.
	ErrTableTooLarge = errors.New("dynamic programming table exceeds the configured size")
)

// Optimizer selects assets within a budget.
type Optimizer interface {
	Optimize(ctx context.Context, assets []model.Asset, funds int, algorithm string) (model.Selection, error)
	Compare(ctx context.Context, assets []model.Asset, funds int) (model.Comparison, error)
	// InvalidateCache drops every cached selection.
	InvalidateCache()
}

// Option configures an OptimizerService.
type Option func(*OptimizerService)

// OptimizerService runs the solvers behind a result cache.
type OptimizerService struct {
	defaultAlgorithm string
	maxFunds         int
	bruteForceLimit  int
	maxTableCells    int64
	cache            cache.Cache
	group            singleflight.Group
}

// NewOptimizerService creates an OptimizerService with the given options.
func NewOptimizerService(opts ...Option) *OptimizerService {
	s := &OptimizerService{
		defaultAlgorithm: model.AlgorithmDynamic,
		maxFunds:         DefaultMaxFunds,
		bruteForceLimit:  DefaultBruteForceLimit,
		maxTableCells:    DefaultMaxTableCells,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithDefaultAlgorithm sets the algorithm used when a request names none.
func WithDefaultAlgorithm(algorithm string) Option {
	return func(s *OptimizerService) {
		if algorithm != "" {
			s.defaultAlgorithm = algorithm
		}
	}
}

// WithMaxFunds sets the largest accepted budget.
func WithMaxFunds(maxFunds int) Option {
	return func(s *OptimizerService) {
		if maxFunds > 0 {
			s.maxFunds = maxFunds
		}
	}
}

// WithBruteForceLimit bounds the asset count accepted by the exhaustive solvers.
// Values above solver.MaxBruteForceAssets are clamped to it.
func WithBruteForceLimit(limit int) Option {
	return func(s *OptimizerService) {
		if limit > 0 {
			s.bruteForceLimit = min(limit, solver.MaxBruteForceAssets)
		}
	}
}

// WithMaxTableCells bounds the dynamic programming table at (assets+1)*(funds+1) cells.
func WithMaxTableCells(cells int64) Option {
	return func(s *OptimizerService) {
		if cells > 0 {
			s.maxTableCells = cells
		}
	}
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *OptimizerService) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithShardedCache enables result caching spread over shards LRU shards.
func WithShardedCache(capacity int, ttl time.Duration, shards int) Option {
	return func(s *OptimizerService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface injects a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *OptimizerService) {
		s.cache = c
	}
}

// DefaultAlgorithm returns the algorithm used for requests that name none.
func (s *OptimizerService) DefaultAlgorithm() string {
	return s.defaultAlgorithm
}

// Optimize solves with the named algorithm, or the default one when algorithm is empty.
// Concurrent identical requests share a single solve. Returns ctx.Err() if ctx ends
// before the selection is ready.
func (s *OptimizerService) Optimize(ctx context.Context, assets []model.Asset, funds int, algorithm string) (model.Selection, error) {
	if err := ctx.Err(); err != nil {
		return model.Selection{}, err
	}
	if algorithm == "" {
		algorithm = s.defaultAlgorithm
	}
	slv, err := solver.New(algorithm)
	if err != nil {
		return model.Selection{}, err
	}
	if err := s.checkFunds(funds); err != nil {
		return model.Selection{}, err
	}
	if err := s.checkSize(algorithm, len(assets), funds); err != nil {
		return model.Selection{}, err
	}

	key := Fingerprint(algorithm, funds, assets)
	if s.cache != nil {
		if sel, ok := s.cache.Get(key); ok {
			logger.FromContext(ctx).Debug().Str("algorithm", algorithm).Str("fingerprint", key[:12]).Msg("Selection served from cache")
			return sel, nil
		}
	}

	// The solve outlives a caller that gives up so its result still reaches the cache.
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.solve(context.WithoutCancel(ctx), slv, key, assets, funds)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return model.Selection{}, ctx.Err()
	}
	if res.Err != nil {
		return model.Selection{}, res.Err
	}

	sel, _ := res.Val.(model.Selection)
	if res.Shared {
		sel = cloneSelection(sel)
	}
	return sel, nil
}

type solveOutcome struct {
	selection model.Selection
	err       error
}

func (s *OptimizerService) solve(ctx context.Context, slv solver.Solver, key string, assets []model.Asset, funds int) (model.Selection, error) {
	out, elapsed := solver.Measure(func() solveOutcome {
		sel, err := slv.Solve(assets, funds)
		return solveOutcome{selection: sel, err: err}
	})

	l := logger.FromContext(ctx).With().
		Str("algorithm", slv.Name()).
		Int("funds", funds).
		Int("assets", len(assets)).
		Dur("duration", elapsed).
		Logger()

	if out.err != nil {
		metrics.RecordOptimization(slv.Name(), elapsed, "error")
		l.Warn().Err(out.err).Msg("Optimization failed")
		return model.Selection{}, out.err
	}

	sel := out.selection
	metrics.RecordOptimization(slv.Name(), elapsed, "success")
	l.Info().
		Float64("profit", sel.Profit).
		Int("cost", sel.Cost).
		Int("selected", len(sel.Assets)).
		Msg("Optimization completed")

	if s.cache != nil {
		s.cache.Set(key, sel)
	}
	return sel, nil
}

// Compare runs every solver on the same input, one after another. Exhaustive solvers
// are skipped above the brute-force limit and failures are reported per timing.
func (s *OptimizerService) Compare(ctx context.Context, assets []model.Asset, funds int) (model.Comparison, error) {
	if funds < 0 {
		return model.Comparison{}, fmt.Errorf("%w: %d", solver.ErrNegativeFunds, funds)
	}
	if err := s.checkFunds(funds); err != nil {
		return model.Comparison{}, err
	}

	cmp := model.Comparison{
		Funds:   funds,
		Assets:  len(assets),
		Timings: make([]model.Timing, 0, len(solver.Algorithms())),
	}
	for _, slv := range solver.All() {
		if err := ctx.Err(); err != nil {
			return model.Comparison{}, err
		}
		if err := s.checkSize(slv.Name(), len(assets), funds); err != nil {
			cmp.Timings = append(cmp.Timings, model.Timing{Algorithm: slv.Name(), Error: err.Error()})
			continue
		}

		t := solver.Run(slv, assets, funds)
		status := "success"
		if t.Selection == nil {
			status = "error"
		}
		metrics.RecordOptimization(t.Algorithm, t.Duration, status)
		cmp.Timings = append(cmp.Timings, t)
	}
	cmp.Agree = solver.Agree(cmp.Timings)

	l := logger.FromContext(ctx)
	event := l.Info()
	if !cmp.Agree {
		metrics.RecordSolverDisagreement()
		event = l.Warn()
	}
	event.
		Int("funds", funds).
		Int("assets", len(assets)).
		Bool("agree", cmp.Agree).
		Msg("Solver comparison completed")

	return cmp, nil
}

// InvalidateCache clears the result cache.
func (s *OptimizerService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop releases the cache's background resources.
func (s *OptimizerService) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// CacheMetrics returns the cache counters, or false when caching is off or the cache
// does not report metrics.
func (s *OptimizerService) CacheMetrics() (cache.Metrics, bool) {
	cm, ok := s.cache.(cache.CacheWithMetrics)
	if !ok {
		return cache.Metrics{}, false
	}
	return cm.Metrics(), true
}

func (s *OptimizerService) checkFunds(funds int) error {
	if funds > s.maxFunds {
		return fmt.Errorf("%w: %d > %d", ErrFundsTooLarge, funds, s.maxFunds)
	}
	return nil
}

// checkSize bounds the work of one solve: table cells for dynamic programming,
// asset count for the exhaustive solvers.
func (s *OptimizerService) checkSize(algorithm string, n, funds int) error {
	if algorithm == model.AlgorithmDynamic {
		if cells := int64(n+1) * int64(funds+1); cells > s.maxTableCells {
			return fmt.Errorf("%w: %d cells > %d", ErrTableTooLarge, cells, s.maxTableCells)
		}
		return nil
	}
	if n <= s.bruteForceLimit {
		return nil
	}
	return fmt.Errorf("%w: %d > %d", solver.ErrTooManyAssets, n, s.bruteForceLimit)
}

// Fingerprint returns a SHA-256 digest of everything that determines a selection:
// the algorithm, the funds and every asset field in input order.
func Fingerprint(algorithm string, funds int, assets []model.Asset) string {
	h := sha256.New()
	var buf [8]byte

	writeString := func(v string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(v)))
		h.Write(buf[:])
		h.Write([]byte(v))
	}
	writeUint := func(v uint64) {
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	writeString(algorithm)
	writeUint(uint64(int64(funds)))
	writeUint(uint64(len(assets)))
	for _, a := range assets {
		writeString(a.Name)
		writeUint(uint64(int64(a.Price)))
		writeUint(math.Float64bits(a.PriceDifference))
		writeUint(math.Float64bits(a.Yield))
		writeUint(math.Float64bits(a.Profit))
	}

	return hex.EncodeToString(h.Sum(nil))
}
