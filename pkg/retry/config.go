// Package retry provides configuration via functional options
package retry

import (
	"time"

	"github.com/jzx17/goretry/pkg/types"
)

// RetryCondition decides whether a failed attempt may be retried. err is the
// failure and attempt is the zero-based attempt that produced it. Returning
// false stops the invocation with an ExhaustedError.
type RetryCondition func(err error, attempt int) bool

// OnRetryFunc observes an upcoming retry: the failure that caused it, the
// zero-based attempt that failed, and the wait before the next attempt.
// It runs after the retry decision and before the wait, never after a
// terminal failure.
type OnRetryFunc func(err error, attempt int, delay time.Duration)

// CircuitBreaker guards invocations against repeated downstream failure.
// Check is consulted once per invocation, before the first attempt; an open
// breaker reports the remaining cooldown. Every attempt outcome is fed back
// through RecordFailure or RecordSuccess. pkg/breaker provides the canonical
// implementation.
type CircuitBreaker interface {
	Check(now time.Time) (remaining time.Duration, open bool)
	RecordFailure(now time.Time)
	RecordSuccess()
}

const (
	// DefaultMaxRetries is the retry budget after the first attempt.
	DefaultMaxRetries = 3
	// DefaultBaseDelay is the initial delay of the fixed-delay variant.
	DefaultBaseDelay = 100 * time.Millisecond
	// DefaultBackoffFactor grows the fixed delay after each wait.
	DefaultBackoffFactor = 2.0
)

// config carries the per-invocation settings assembled from options
type config struct {
	maxRetries     int
	baseDelay      time.Duration
	delayFunc      DelayFunc
	backoffFactor  float64
	maxDelay       time.Duration
	jitter         JitterMode
	attemptTimeout time.Duration
	maxElapsed     time.Duration
	retryIf        RetryCondition
	onRetry        OnRetryFunc
	breaker        CircuitBreaker
	clock          types.Clock
}

// Option is a configuration option for a single invocation
type Option func(*config)

// newConfig applies opts over the defaults and clamps invalid values
func newConfig(opts ...Option) *config {
	cfg := &config{
		maxRetries:    DefaultMaxRetries,
		baseDelay:     DefaultBaseDelay,
		backoffFactor: DefaultBackoffFactor,
		jitter:        JitterNone,
		clock:         types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// out-of-range values degrade to safe ones instead of erroring
	if cfg.maxRetries < 0 {
		cfg.maxRetries = 0
	}
	if cfg.baseDelay < 0 {
		cfg.baseDelay = 0
	}
	if cfg.backoffFactor <= 0 {
		cfg.backoffFactor = DefaultBackoffFactor
	}
	if cfg.maxDelay < 0 {
		cfg.maxDelay = 0
	}
	if cfg.attemptTimeout < 0 {
		cfg.attemptTimeout = 0
	}
	if cfg.maxElapsed < 0 {
		cfg.maxElapsed = 0
	}
	if cfg.clock == nil {
		cfg.clock = types.NewRealClock()
	}

	return cfg
}

// WithMaxRetries sets the retry budget after the first attempt.
// Zero means a single attempt with no waits.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		c.maxRetries = n
	}
}

// WithBaseDelay sets the initial delay of the fixed-delay variant
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) {
		c.baseDelay = d
	}
}

// WithDelayFunc sets a custom delay function, consulted fresh before every
// wait. It replaces the fixed-delay variant entirely: the base delay and
// backoff factor are ignored while a DelayFunc is set.
func WithDelayFunc(fn DelayFunc) Option {
	return func(c *config) {
		c.delayFunc = fn
	}
}

// WithBackoffFactor sets the growth factor of the fixed-delay variant
func WithBackoffFactor(factor float64) Option {
	return func(c *config) {
		c.backoffFactor = factor
	}
}

// WithMaxDelay caps every computed wait, jitter included
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithJitter sets the jitter mode applied to computed delays
func WithJitter(mode JitterMode) Option {
	return func(c *config) {
		c.jitter = mode
	}
}

// WithAttemptTimeout bounds each individual attempt. A timed-out attempt
// fails with a TimeoutError; the in-flight call is not interrupted and its
// eventual result is discarded.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *config) {
		c.attemptTimeout = d
	}
}

// WithMaxElapsed bounds the total invocation time. The deadline is checked
// after each failed attempt; it never interrupts an attempt or a wait.
func WithMaxElapsed(d time.Duration) Option {
	return func(c *config) {
		c.maxElapsed = d
	}
}

// WithRetryIf sets the retry condition. Without one every failure is retried
// until the budget or deadline runs out.
func WithRetryIf(cond RetryCondition) Option {
	return func(c *config) {
		c.retryIf = cond
	}
}

// WithOnRetry sets the retry observer
func WithOnRetry(fn OnRetryFunc) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// WithCircuitBreaker sets the circuit breaker consulted by the invocation
func WithCircuitBreaker(cb CircuitBreaker) Option {
	return func(c *config) {
		c.breaker = cb
	}
}

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}
