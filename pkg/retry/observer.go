// Package retry provides observer adapters and common retry conditions
package retry

import (
	"errors"
	"time"

	"github.com/jzx17/goretry/pkg/types"
)

// Logger interface for logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NewLogObserver adapts a Logger into an OnRetryFunc that reports every
// upcoming retry at warning level.
func NewLogObserver(logger Logger) OnRetryFunc {
	return func(err error, attempt int, delay time.Duration) {
		if logger == nil {
			return
		}
		logger.Warnf("attempt %d failed, retrying in %s: %v", attempt, delay, err)
	}
}

// RetryableOnly returns a condition that retries failures marked retryable
// via types.RetryableError and unmarked timeouts. Everything else stops the
// invocation; an explicit permanent marker dominates a timeout.
func RetryableOnly() RetryCondition {
	return func(err error, attempt int) bool {
		var marked *types.RetryableError
		if errors.As(err, &marked) {
			return marked.Retryable
		}

		var timeout interface{ Timeout() bool }
		if errors.As(err, &timeout) {
			return timeout.Timeout()
		}

		return false
	}
}
