package breaker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	state := NewState()

	assert.Equal(t, 0, state.Failures())

	_, open := state.OpenedAt()
	assert.False(t, open)
}

func TestBreaker_ClosedUntilThreshold(t *testing.T) {
	state := NewState()
	b := New(3, time.Minute, state)

	b.RecordFailure(testEpoch)
	b.RecordFailure(testEpoch.Add(time.Second))

	assert.Equal(t, 2, state.Failures())

	_, open := state.OpenedAt()
	assert.False(t, open, "breaker should stay closed below the threshold")

	remaining, blocked := b.Check(testEpoch.Add(2 * time.Second))
	assert.False(t, blocked)
	assert.Equal(t, time.Duration(0), remaining)
}

func TestBreaker_TripsAtThreshold(t *testing.T) {
	state := NewState()
	b := New(3, time.Minute, state)

	b.RecordFailure(testEpoch)
	b.RecordFailure(testEpoch)
	b.RecordFailure(testEpoch.Add(5 * time.Second))

	openedAt, open := state.OpenedAt()
	assert.True(t, open)
	assert.Equal(t, testEpoch.Add(5*time.Second), openedAt)
}

func TestBreaker_CheckWhileOpen(t *testing.T) {
	state := NewState()
	b := New(1, time.Minute, state)

	b.RecordFailure(testEpoch)

	remaining, open := b.Check(testEpoch.Add(20 * time.Second))
	assert.True(t, open)
	assert.Equal(t, 40*time.Second, remaining)
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	state := NewState()
	b := New(1, time.Minute, state)

	b.RecordFailure(testEpoch)

	remaining, open := b.Check(testEpoch.Add(time.Minute))
	assert.False(t, open, "elapsed cooldown should admit a probe")
	assert.Equal(t, time.Duration(0), remaining)

	// The probe admission must not mutate state: a second consultation at the
	// same instant sees the same answer, and the breaker is still open until a
	// success resets it.
	_, open = b.Check(testEpoch.Add(time.Minute))
	assert.False(t, open)

	_, stillOpen := state.OpenedAt()
	assert.True(t, stillOpen)
}

func TestBreaker_SuccessResets(t *testing.T) {
	state := NewState()
	b := New(2, time.Minute, state)

	b.RecordFailure(testEpoch)
	b.RecordFailure(testEpoch)
	b.RecordSuccess()

	assert.Equal(t, 0, state.Failures())

	_, open := state.OpenedAt()
	assert.False(t, open)

	_, blocked := b.Check(testEpoch.Add(time.Second))
	assert.False(t, blocked)
}

func TestBreaker_FailureWhileOpenRestampsWindow(t *testing.T) {
	state := NewState()
	b := New(2, time.Minute, state)

	b.RecordFailure(testEpoch)
	b.RecordFailure(testEpoch) // trips here

	first, _ := state.OpenedAt()
	assert.Equal(t, testEpoch, first)

	// A probe failing after the cooldown restamps the trip time, restarting
	// the cooldown window from the new failure.
	probeTime := testEpoch.Add(2 * time.Minute)
	b.RecordFailure(probeTime)

	restamped, open := state.OpenedAt()
	assert.True(t, open)
	assert.Equal(t, probeTime, restamped)

	remaining, blocked := b.Check(probeTime.Add(30 * time.Second))
	assert.True(t, blocked)
	assert.Equal(t, 30*time.Second, remaining)
}

func TestNew_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		cooldown  time.Duration
	}{
		{"zero threshold", 0, time.Second},
		{"negative threshold", -5, time.Second},
		{"negative cooldown", 1, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.threshold, tt.cooldown, nil)
			assert.NotNil(t, b.State())

			// A clamped threshold of 1 trips on the first failure.
			b.RecordFailure(testEpoch)
			_, open := b.State().OpenedAt()
			assert.True(t, open)
		})
	}
}

func TestNew_NilStateGetsFreshOne(t *testing.T) {
	b := New(3, time.Minute, nil)

	state := b.State()
	assert.NotNil(t, state)
	assert.Equal(t, 0, state.Failures())
}

func TestBreaker_SharedStateAcrossBreakers(t *testing.T) {
	state := NewState()
	first := New(2, time.Minute, state)
	second := New(2, time.Minute, state)

	first.RecordFailure(testEpoch)
	second.RecordFailure(testEpoch)

	// Both breakers observe the shared trip.
	_, open := first.Check(testEpoch.Add(time.Second))
	assert.True(t, open)
	_, open = second.Check(testEpoch.Add(time.Second))
	assert.True(t, open)
}

func TestSynchronizedState_ConcurrentRecording(t *testing.T) {
	state := NewSynchronizedState()
	b := New(1000, time.Minute, state)

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				b.RecordFailure(testEpoch)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, state.Failures())
}
