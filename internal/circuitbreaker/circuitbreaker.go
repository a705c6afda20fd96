// Package circuitbreaker stops calling a failing dependency for a cool-down period.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/bond-optimizer/internal/metrics"
	"github.com/rs/zerolog/log"
)

var (
	// ErrCircuitOpen is returned without calling the protected function while the circuit is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrTooManyProbes is returned in half-open state once SuccessThreshold trial calls are in flight.
	ErrTooManyProbes = errors.New("circuit breaker is probing")
)

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{StateClosed: "closed", StateOpen: "open", StateHalfOpen: "half-open"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before a trial call is allowed.
	Timeout time.Duration
	// Name labels logs and metrics.
	Name string
}

// DefaultConfig returns the configuration used for the log sink.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "mongodb-logs",
	}
}

// tally is reset on every state change.
type tally struct {
	failures  int
	successes int
	probes    int
}

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu          sync.Mutex
	state       State
	generation  uint64
	counts      tally
	openUntil   time.Time
	lastFailure time.Time
}

// New creates a closed circuit breaker.
func New(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 1
	}
	if cfg.SuccessThreshold < 1 {
		cfg.SuccessThreshold = 1
	}
	metrics.RecordCircuitState(cfg.Name, int(StateClosed))
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// Execute calls fn unless the circuit is open. Errors caused by the caller's context
// being cancelled or timing out are returned but not counted as failures.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	generation, err := cb.before()
	if err != nil {
		return err
	}

	err = fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if generation != cb.generation {
		// the state changed while fn ran
		return err
	}
	if cb.state == StateHalfOpen {
		cb.counts.probes--
	}
	switch {
	case err == nil:
		cb.succeeded()
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
	default:
		cb.failed()
	}
	return err
}

// before admits a call and returns the generation it belongs to.
func (cb *CircuitBreaker) before() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Before(cb.openUntil) {
			return 0, ErrCircuitOpen
		}
		cb.moveTo(StateHalfOpen)
	}
	if cb.state == StateHalfOpen {
		if cb.counts.probes >= cb.cfg.SuccessThreshold {
			return 0, ErrTooManyProbes
		}
		cb.counts.probes++
	}
	return cb.generation, nil
}

func (cb *CircuitBreaker) failed() {
	cb.lastFailure = cb.now()
	switch cb.state {
	case StateHalfOpen:
		cb.moveTo(StateOpen)
	case StateClosed:
		cb.counts.failures++
		if cb.counts.failures >= cb.cfg.FailureThreshold {
			cb.moveTo(StateOpen)
		}
	}
}

func (cb *CircuitBreaker) succeeded() {
	switch cb.state {
	case StateHalfOpen:
		cb.counts.successes++
		if cb.counts.successes >= cb.cfg.SuccessThreshold {
			cb.moveTo(StateClosed)
		}
	case StateClosed:
		cb.counts.failures = 0
	}
}

// moveTo must be called with mu held.
func (cb *CircuitBreaker) moveTo(to State) {
	from, failures := cb.state, cb.counts.failures
	cb.state = to
	cb.generation++
	cb.counts = tally{}
	if to == StateOpen {
		cb.openUntil = cb.now().Add(cb.cfg.Timeout)
	}
	metrics.RecordCircuitState(cb.cfg.Name, int(to))

	event := log.Info()
	if to == StateOpen {
		event = log.Warn().Int("failure_count", failures)
	}
	event.
		Str("circuit_breaker", cb.cfg.Name).
		Stringer("from", from).
		Stringer("to", to).
		Msg("Circuit breaker state changed")
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a snapshot for health endpoints.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"healthy"`
}

// GetStats returns a snapshot of the breaker.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.counts.failures,
		SuccessCount: cb.counts.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
