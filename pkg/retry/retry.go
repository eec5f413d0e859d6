// Package retry provides the resilient invocation engine
package retry

import (
	"context"
	"time"

	"github.com/jzx17/goretry/pkg/types"
)

// Operation is the function type to retry. attempt is zero-based and
// increments by one on every invocation of op within a single Do call.
type Operation[T any] func(ctx context.Context, attempt int) (T, error)

// Do executes op until it succeeds, the retry budget is exhausted, the
// elapsed deadline passes, the retry condition vetoes another attempt, or
// ctx is cancelled. On success the operation's result is returned unchanged;
// terminal failures surface as ExhaustedError, CircuitOpenError,
// ObserverPanicError or the context's own error.
func Do[T any](ctx context.Context, op Operation[T], opts ...Option) (T, error) {
	return run(ctx, newConfig(opts...), op)
}

// DoAsync executes op with retry in a new goroutine and returns a channel
// that delivers the single outcome. The channel has capacity one and is
// closed after the send, so an abandoned result does not leak the goroutine.
func DoAsync[T any](ctx context.Context, op Operation[T], opts ...Option) <-chan types.Result[T] {
	cfg := newConfig(opts...)
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		start := cfg.clock.Now()
		value, err := run(ctx, cfg, op)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: cfg.clock.Since(start),
		}
	}()

	return resultChan
}

// run is the attempt loop shared by Do and DoAsync
func run[T any](ctx context.Context, cfg *config, op Operation[T]) (T, error) {
	var zero T

	// the breaker is consulted once per invocation, before the first
	// attempt; an open breaker means zero invocations of op
	if cfg.breaker != nil {
		if remaining, open := cfg.breaker.Check(cfg.clock.Now()); open {
			return zero, &CircuitOpenError{Remaining: remaining}
		}
	}

	// a token cancelled before the first attempt also means zero invocations
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	start := cfg.clock.Now()
	running := cfg.baseDelay

	for attempt := 0; ; attempt++ {
		result, err := invoke(ctx, cfg, op, attempt)
		if err == nil {
			if cfg.breaker != nil {
				cfg.breaker.RecordSuccess()
			}
			return result, nil
		}

		if cfg.breaker != nil {
			cfg.breaker.RecordFailure(cfg.clock.Now())
		}
		elapsed := cfg.clock.Since(start)

		// a veto from the retry condition, an exhausted budget and a passed
		// deadline all terminate identically; the condition is consulted on
		// every failure, the final one included
		retryable := cfg.retryIf == nil || cfg.retryIf(err, attempt)
		if !retryable || attempt == cfg.maxRetries ||
			(cfg.maxElapsed > 0 && elapsed >= cfg.maxElapsed) {
			return zero, &ExhaustedError{Attempts: attempt + 1, Elapsed: elapsed, Err: err}
		}

		var base time.Duration
		if cfg.delayFunc != nil {
			base = cfg.delayFunc(attempt)
		} else {
			base = running
		}
		wait := clampDelay(applyJitter(base, cfg.jitter), cfg.maxDelay)

		// the observer runs after the retry decision and before the wait,
		// zero-length waits included
		if cfg.onRetry != nil {
			if obsErr := notifyObserver(cfg.onRetry, err, attempt, wait); obsErr != nil {
				return zero, obsErr
			}
		}

		if err := sleep(ctx, cfg.clock, wait); err != nil {
			return zero, err
		}

		if cfg.delayFunc == nil {
			running = nextFixedDelay(running, cfg.backoffFactor, cfg.maxDelay)
		}
	}
}

// invoke runs a single attempt, raced against the per-attempt timeout when
// one is configured. The operation receives the caller's ctx untouched; a
// timed-out call keeps running in its goroutine and its eventual result is
// discarded through the buffered channel.
func invoke[T any](ctx context.Context, cfg *config, op Operation[T], attempt int) (T, error) {
	if cfg.attemptTimeout <= 0 {
		return op(ctx, attempt)
	}

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := op(ctx, attempt)
		done <- outcome{value: value, err: err}
	}()

	timer := cfg.clock.NewTimer(cfg.attemptTimeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C():
		var zero T
		return zero, &TimeoutError{Attempt: attempt, Limit: cfg.attemptTimeout}
	}
}

// notifyObserver runs the observer and contains a panic as an
// ObserverPanicError, keeping a misbehaving hook distinguishable from an
// operation failure.
func notifyObserver(fn OnRetryFunc, err error, attempt int, wait time.Duration) (obsErr error) {
	defer func() {
		if r := recover(); r != nil {
			obsErr = &ObserverPanicError{Value: r}
		}
	}()

	fn(err, attempt, wait)
	return nil
}

// sleep waits for d on the injected clock, returning early when ctx is
// cancelled. Zero and negative durations suspend nothing but still observe
// an already-asserted token, so a cancellation that lands while an attempt
// is in flight surfaces at the next wait boundary.
func sleep(ctx context.Context, clock types.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}
