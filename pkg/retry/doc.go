// Package retry provides a resilient invocation wrapper with configurable delay strategies and circuit breaker integration.
//
// Key Features:
//
// 1. Attempt orchestration:
//   - Configurable retry budget after the first attempt
//   - Per-attempt timeouts raced on the injected clock
//   - Whole-invocation elapsed deadline
//   - Context cancellation before the first attempt and during waits
//
// 2. Delay strategies:
//   - Fixed delay with multiplicative backoff growth and an optional cap
//   - Caller-supplied delay functions consulted fresh before every wait
//   - JitterFull and JitterEqual randomization applied before the cap
//
// 3. Failure steering:
//   - RetryCondition predicates, including RetryableOnly over the
//     types.RetryableError marker
//   - Observer callback invoked before every wait, with panics contained
//     as ObserverPanicError
//   - Typed terminal failures: ExhaustedError, CircuitOpenError, TimeoutError
//
// 4. Circuit breaker integration:
//   - CircuitBreaker interface consulted once per invocation
//   - pkg/breaker provides the consecutive-failure implementation with
//     shared state and cooldown-gated probes
//
// 5. Execution modes:
//   - Synchronous Do returning the operation's typed result
//   - Asynchronous DoAsync delivering a types.Result through a channel
//
// Basic usage example:
//
//	result, err := retry.Do(ctx, func(ctx context.Context, attempt int) (string, error) {
//		return fetchRemote(ctx)
//	},
//		retry.WithMaxRetries(5),
//		retry.WithBaseDelay(50*time.Millisecond),
//		retry.WithBackoffFactor(2),
//		retry.WithMaxDelay(2*time.Second),
//	)
//
// Custom delay function:
//
//	delays := []time.Duration{0, 100 * time.Millisecond, time.Second}
//	result, err := retry.Do(ctx, op,
//		retry.WithDelayFunc(func(attempt int) time.Duration {
//			if attempt < len(delays) {
//				return delays[attempt]
//			}
//			return delays[len(delays)-1]
//		}),
//	)
//
// Circuit breaker integration:
//
//	state := breaker.NewSynchronizedState()
//	guard := breaker.New(5, 30*time.Second, state)
//
//	result, err := retry.Do(ctx, op,
//		retry.WithCircuitBreaker(guard),
//	)
//	var open *retry.CircuitOpenError
//	if errors.As(err, &open) {
//		// rejected without an attempt; open.Remaining says how long to back off
//	}
//
// Retry conditions and observers:
//
//	result, err := retry.Do(ctx, op,
//		retry.WithRetryIf(retry.RetryableOnly()),
//		retry.WithOnRetry(retry.NewLogObserver(logger)),
//	)
//
// Asynchronous execution:
//
//	resultChan := retry.DoAsync(ctx, op, retry.WithMaxRetries(3))
//	res := <-resultChan
//	if res.Error != nil {
//		// res.Duration covers every attempt and wait
//	}
//
// Performance considerations:
//
// 1. A Do call allocates one small configuration; options are plain function values
// 2. Delay computation is arithmetic only, no allocation on the retry path
// 3. Jitter avoids thundering herd effects when many callers share a downstream
// 4. Waits run on the injected clock and are always cancellable
//
// Error handling:
//
// All failures surface to the caller; the engine never logs and never hides
// errors. ExhaustedError wraps the most recent operation failure and reports
// the attempt count and total elapsed time. Cancellation surfaces as the
// context's own error so callers can distinguish it from exhaustion.
//
// Thread safety:
//
// A single invocation runs attempts strictly sequentially. Separate
// invocations are independent; invocations sharing breaker state coordinate
// through it as documented in pkg/breaker.
package retry
