// Package types defines shared value types
package types

import (
	"time"
)

// Result defines the result of asynchronous execution
type Result[T any] struct {
	// Value is the execution result
	Value T

	// Error is the execution error
	Error error

	// Duration is the execution time
	Duration time.Duration
}
