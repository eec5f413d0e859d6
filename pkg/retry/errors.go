// Package retry provides the typed failures surfaced by the engine
package retry

import (
	"fmt"
	"time"
)

// ExhaustedError reports that the engine gave up: the retry budget ran out,
// the elapsed deadline passed, or the retry condition vetoed another attempt.
// Attempts counts invocations actually performed, so a budget of zero retries
// still reports one attempt.
type ExhaustedError struct {
	Attempts int           // invocations performed
	Elapsed  time.Duration // total time across attempts and waits
	Err      error         // most recent operation failure
}

// Error implements the error interface
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry exhausted after %d attempts in %dms: %v", e.Attempts, e.Elapsed.Milliseconds(), e.Err)
}

// Unwrap returns the underlying error
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// CircuitOpenError reports that the circuit breaker rejected the invocation
// before any attempt was made. Remaining is the time left in the cooldown
// window at the moment of rejection.
type CircuitOpenError struct {
	Remaining time.Duration
}

// Error implements the error interface
func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit breaker open: next attempt allowed in %s", e.Remaining)
}

// TimeoutError reports that a single attempt exceeded the configured
// per-attempt timeout. The attempt's eventual result, if any, is discarded.
type TimeoutError struct {
	Attempt int           // zero-based attempt that timed out
	Limit   time.Duration // configured per-attempt timeout
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("attempt %d timed out after %s", e.Attempt, e.Limit)
}

// Timeout reports whether the error was caused by a timeout
func (e *TimeoutError) Timeout() bool {
	return true
}

// ObserverPanicError reports a panic recovered from the retry observer.
// It is distinct from operation failures: the attempts up to the panic ran
// normally and their outcome is not part of this error.
type ObserverPanicError struct {
	Value interface{} // recovered panic value
}

// Error implements the error interface
func (e *ObserverPanicError) Error() string {
	return fmt.Sprintf("retry observer panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error
func (e *ObserverPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
