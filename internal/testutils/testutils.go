// Package testutils provides deterministic-time helpers for tests that
// choreograph the engine against a quartz mock clock.
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

// Context returns a context bounded by a generous timeout so a stuck
// choreography fails the test instead of hanging the run.
func Context(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Release releases one trapped NewTimer call without moving the clock, so
// the timer is created but never fires. It returns the requested duration.
func Release(ctx context.Context, t testing.TB, trap *quartz.Trap) time.Duration {
	t.Helper()

	call, err := trap.Wait(ctx)
	require.NoError(t, err, "expected a timer to be created")
	call.MustRelease(ctx)
	return call.Duration
}

// ReleaseWait releases one trapped NewTimer call and advances the mock
// clock through the requested duration, letting the timer fire. It returns
// the duration the caller under test asked for, so a sequence of waits can
// be asserted exactly.
func ReleaseWait(ctx context.Context, t testing.TB, mock *quartz.Mock, trap *quartz.Trap) time.Duration {
	t.Helper()

	d := Release(ctx, t, trap)
	if d > 0 {
		w := mock.Advance(d)
		require.NoError(t, w.Wait(ctx))
	}
	return d
}

// CollectWaits runs ReleaseWait n times and returns the requested durations
// in order.
func CollectWaits(ctx context.Context, t testing.TB, mock *quartz.Mock, trap *quartz.Trap, n int) []time.Duration {
	t.Helper()

	waits := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		waits = append(waits, ReleaseWait(ctx, t, mock, trap))
	}
	return waits
}
