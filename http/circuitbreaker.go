package http

import (
	"sync"
	"time"
)

// CircuitState represents the state of the circuit breaker.
type CircuitState int

const (
	// CircuitClosed is the normal state where requests are allowed.
	CircuitClosed CircuitState = iota
	// CircuitOpen is the state where requests fail fast.
	CircuitOpen
	// CircuitHalfOpen is the testing state where one request is allowed.
	CircuitHalfOpen
)

// String returns the string representation of a circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Circuit breaker defaults.
const (
	// DefaultFailureThreshold is the number of consecutive failures to open the circuit.
	DefaultFailureThreshold = 5
	// DefaultRecoveryTimeout is how long the circuit stays open before testing.
	DefaultRecoveryTimeout = 30 * time.Second
)

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures to open the circuit.
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before transitioning
	// to half-open.
	RecoveryTimeout time.Duration
	// IsTransientError determines if an error counts against the circuit.
	// Permanent errors (e.g. a 404) don't affect the failure count.
	// If nil, all errors count.
	IsTransientError func(error) bool
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: DefaultFailureThreshold,
		RecoveryTimeout:  DefaultRecoveryTimeout,
	}
}

// CircuitBreaker implements the circuit breaker pattern for a single upstream.
// The client only ever talks to one host, so failures are tracked globally
// rather than per domain.
type CircuitBreaker struct {
	mu sync.Mutex

	config            CircuitBreakerConfig
	state             CircuitState
	consecutiveErrors int
	lastStateChange   time.Time
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = DefaultRecoveryTimeout
	}

	return &CircuitBreaker{
		config:          cfg,
		state:           CircuitClosed,
		lastStateChange: time.Now(),
	}
}

// Allow reports whether a request should proceed.
// It returns ErrCircuitOpen when the circuit is open and the recovery
// timeout has not yet elapsed.
func (cb *CircuitBreaker) Allow() error {
	if cb == nil {
		return nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return nil

	case CircuitOpen:
		if time.Since(cb.lastStateChange) >= cb.config.RecoveryTimeout {
			cb.state = CircuitHalfOpen
			cb.lastStateChange = time.Now()
			return nil
		}
		return ErrCircuitOpen

	case CircuitHalfOpen:
		// One probe at a time; further requests wait for its result.
		return ErrCircuitOpen

	default:
		return nil
	}
}

// Record updates the circuit with the result of a request.
func (cb *CircuitBreaker) Record(err error) {
	if cb == nil {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.consecutiveErrors = 0
		if cb.state != CircuitClosed {
			cb.state = CircuitClosed
			cb.lastStateChange = time.Now()
		}
		return
	}

	if cb.config.IsTransientError != nil && !cb.config.IsTransientError(err) {
		return
	}

	cb.consecutiveErrors++
	if cb.state == CircuitHalfOpen || cb.consecutiveErrors >= cb.config.FailureThreshold {
		cb.state = CircuitOpen
		cb.lastStateChange = time.Now()
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
