package http

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		RecoveryTimeout:  time.Hour,
	})

	failure := errors.New("upstream failure")
	for i := 0; i < 3; i++ {
		if err := cb.Allow(); err != nil {
			t.Fatalf("circuit should be closed before threshold, attempt %d: %v", i, err)
		}
		cb.Record(failure)
	}

	if cb.State() != CircuitOpen {
		t.Fatalf("expected open circuit, got %v", cb.State())
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitResetsOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		RecoveryTimeout:  time.Hour,
	})

	failure := errors.New("upstream failure")
	cb.Record(failure)
	cb.Record(failure)
	cb.Record(nil) // success resets the count
	cb.Record(failure)
	cb.Record(failure)

	if cb.State() != CircuitClosed {
		t.Errorf("expected closed circuit after reset, got %v", cb.State())
	}
}

func TestCircuitHalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Millisecond,
	})

	cb.Record(errors.New("failure"))
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open circuit, got %v", cb.State())
	}

	time.Sleep(5 * time.Millisecond)

	// First request after the recovery timeout is the probe.
	if err := cb.Allow(); err != nil {
		t.Fatalf("probe request should be allowed: %v", err)
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("expected half-open circuit, got %v", cb.State())
	}

	// Concurrent requests are rejected while the probe is in flight.
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen during probe, got %v", err)
	}

	// Successful probe closes the circuit.
	cb.Record(nil)
	if cb.State() != CircuitClosed {
		t.Errorf("expected closed circuit after successful probe, got %v", cb.State())
	}
}

func TestCircuitIgnoresPermanentErrors(t *testing.T) {
	transient := errors.New("transient")
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Hour,
		IsTransientError: func(err error) bool { return errors.Is(err, transient) },
	})

	cb.Record(errors.New("permanent"))
	if cb.State() != CircuitClosed {
		t.Errorf("permanent errors should not open the circuit, got %v", cb.State())
	}

	cb.Record(transient)
	if cb.State() != CircuitOpen {
		t.Errorf("transient error past threshold should open the circuit, got %v", cb.State())
	}
}
