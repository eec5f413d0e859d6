// Package retry provides delay computation: backoff growth, jitter and clamping
package retry

import (
	"math"
	"math/rand"
	"time"
)

// JitterMode selects how a computed delay is randomized before the max-delay
// clamp is applied.
type JitterMode int

const (
	// JitterNone uses the computed delay unchanged.
	JitterNone JitterMode = iota
	// JitterFull replaces the delay with a uniform value in [0, delay).
	JitterFull
	// JitterEqual keeps half the delay and randomizes the rest:
	// uniform in [delay/2, delay).
	JitterEqual
)

// DelayFunc computes the base delay after a failed attempt. attempt is the
// zero-based attempt that just failed. The result feeds jitter and the
// max-delay clamp but is never multiplied by the backoff factor.
type DelayFunc func(attempt int) time.Duration

// applyJitter randomizes delay according to mode
func applyJitter(delay time.Duration, mode JitterMode) time.Duration {
	if delay <= 0 {
		return 0
	}

	switch mode {
	case JitterFull:
		return time.Duration(rand.Int63n(int64(delay)))
	case JitterEqual:
		half := delay / 2
		if half <= 0 {
			return delay
		}
		return half + time.Duration(rand.Int63n(int64(half)))
	default:
		return delay
	}
}

// clampDelay limits delay to maxDelay; maxDelay <= 0 means unbounded
func clampDelay(delay, maxDelay time.Duration) time.Duration {
	if maxDelay > 0 && delay > maxDelay {
		return maxDelay
	}
	return delay
}

// nextFixedDelay grows the running fixed delay by the backoff factor,
// capped at maxDelay when one is set
func nextFixedDelay(current time.Duration, factor float64, maxDelay time.Duration) time.Duration {
	next := time.Duration(float64(current) * factor)
	// prevent overflow
	if next < 0 {
		next = time.Duration(math.MaxInt64)
	}
	return clampDelay(next, maxDelay)
}
