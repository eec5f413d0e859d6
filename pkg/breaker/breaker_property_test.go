package breaker

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBreakerTripsExactlyAtThreshold(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("threshold-1 failures stay closed, one more opens", prop.ForAll(
		func(threshold int) bool {
			b := New(threshold, time.Minute, nil)

			for i := 0; i < threshold-1; i++ {
				b.RecordFailure(testEpoch)
			}
			if _, open := b.State().OpenedAt(); open {
				return false
			}

			b.RecordFailure(testEpoch)
			_, open := b.State().OpenedAt()
			return open
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func TestBreakerRemainingCooldownIsExact(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("remaining equals cooldown minus elapsed while open", prop.ForAll(
		func(cooldownMs, elapsedMs int) bool {
			cooldown := time.Duration(cooldownMs) * time.Millisecond
			elapsed := time.Duration(elapsedMs%cooldownMs) * time.Millisecond

			b := New(1, cooldown, nil)
			b.RecordFailure(testEpoch)

			remaining, open := b.Check(testEpoch.Add(elapsed))
			return open && remaining == cooldown-elapsed
		},
		gen.IntRange(1, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("probe admitted once elapsed reaches cooldown", prop.ForAll(
		func(cooldownMs, extraMs int) bool {
			cooldown := time.Duration(cooldownMs) * time.Millisecond

			b := New(1, cooldown, nil)
			b.RecordFailure(testEpoch)

			remaining, open := b.Check(testEpoch.Add(cooldown + time.Duration(extraMs)*time.Millisecond))
			return !open && remaining == 0
		},
		gen.IntRange(1, 10000),
		gen.IntRange(0, 10000),
	))

	properties.TestingRun(t)
}

func TestBreakerSuccessAlwaysCloses(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a success resets any accumulated failure streak", prop.ForAll(
		func(threshold, failures int) bool {
			b := New(threshold, time.Minute, nil)

			for i := 0; i < failures; i++ {
				b.RecordFailure(testEpoch)
			}
			b.RecordSuccess()

			if b.State().Failures() != 0 {
				return false
			}
			_, open := b.State().OpenedAt()
			if open {
				return false
			}
			_, blocked := b.Check(testEpoch.Add(time.Second))
			return !blocked
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

func TestBreakerOpenWindowFollowsLatestFailure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("each failure at or past the threshold restamps the trip time", prop.ForAll(
		func(threshold, extra int) bool {
			b := New(threshold, time.Minute, nil)

			at := testEpoch
			for i := 0; i < threshold+extra; i++ {
				at = at.Add(time.Second)
				b.RecordFailure(at)
			}

			openedAt, open := b.State().OpenedAt()
			return open && openedAt.Equal(at)
		},
		gen.IntRange(1, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
