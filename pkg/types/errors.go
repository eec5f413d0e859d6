// Package types defines error types
package types

import (
	"errors"
)

// RetryableError marks an error as retryable or permanent. Operations can
// return one to steer a retry condition without the caller having to keep
// a list of error values in sync with the operation's failure modes.
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryable wraps err as a retryable failure
func NewRetryable(err error) *RetryableError {
	return &RetryableError{Err: err, Retryable: true}
}

// NewPermanent wraps err as a failure that should not be retried
func NewPermanent(err error) *RetryableError {
	return &RetryableError{Err: err, Retryable: false}
}

// IsRetryable checks if an error is marked retryable anywhere in its chain.
// Unmarked errors report false; callers that want to retry every failure
// should not consult this at all.
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return false
}
